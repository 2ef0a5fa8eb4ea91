package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cocob23/jobexpo-backend/config"
	"github.com/cocob23/jobexpo-backend/database"
	"github.com/cocob23/jobexpo-backend/handlers"
	"github.com/cocob23/jobexpo-backend/routes"
)

func main() {
	cfg := config.Load()

	// si la DB no está arriba conviene fallar acá
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
