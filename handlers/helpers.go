package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// string -> int con valor por defecto
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Valores que deja el middleware de JWT en el context:
// user_id (uint), role (string), name (string)

func currentUserID(c echo.Context) uint {
	switch v := c.Get("user_id").(type) {
	case uint:
		return v
	case int:
		return uint(v)
	default:
		return 0
	}
}

func currentRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// admin y supervisor ven las llegadas de todos; el resto solo las propias
func isManager(role string) bool {
	return role == "admin" || role == "supervisor"
}
