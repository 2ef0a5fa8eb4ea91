package routes

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cocob23/jobexpo-backend/checkin"
	"github.com/cocob23/jobexpo-backend/config"
	"github.com/cocob23/jobexpo-backend/database"
	"github.com/cocob23/jobexpo-backend/directory"
	"github.com/cocob23/jobexpo-backend/handlers"
	"github.com/cocob23/jobexpo-backend/middlewares"
)

// Register arma los componentes del flujo de llegadas y cablea todas las
// rutas HTTP.
func Register(e *echo.Echo, cfg *config.Config) {
	dir := directory.NewService(
		directory.NewGormSearcher(database.DB),
		cfg.SearchLimit,
		time.Duration(cfg.SearchDebounceMs)*time.Millisecond,
	)
	if err := dir.WarmSnapshot(); err != nil {
		// sin snapshot el buscador no tiene fallback local; no es fatal
		log.Printf("[directory] snapshot warm failed: %v", err)
	}
	recorder := checkin.NewRecorder(checkin.NewGormStore(database.DB))

	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	comp := handlers.NewCompanyHandler(dir)
	lle := handlers.NewLlegadaHandler(recorder, cfg.LateGraceMin)
	dash := handlers.NewDashboardHandler(cfg.LateGraceMin)
	acc := handlers.NewAccountHandler()
	prof := handlers.NewProfileHandler()

	// ===== Público =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/login", auth.Login)

	// ===== Autenticado (cualquier rol) =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	api := e.Group("", authMW)

	api.GET("/companies/search", comp.Search)

	api.POST("/llegadas/checkin", lle.CheckIn)
	api.POST("/llegadas/checkout", lle.CheckOut)
	api.GET("/llegadas", lle.List)

	api.GET("/profile", prof.Me)
	api.PUT("/profile/password", prof.ChangePassword)

	// ===== Admin / supervisor =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin", "supervisor"))

	admin.GET("/companies", comp.List)
	admin.POST("/companies", comp.Create)
	admin.PUT("/companies/:id", comp.Update)
	admin.DELETE("/companies/:id", comp.Delete)

	admin.GET("/dashboard/open", dash.Open)

	// cuentas solo para admin
	accounts := e.Group("/admin/accounts", authMW, middlewares.RequireRole("admin"))
	accounts.GET("", acc.List)
	accounts.POST("", acc.Create)
	accounts.POST("/:id/reset", acc.ResetPassword)
	accounts.PATCH("/:id", acc.Patch)
}
