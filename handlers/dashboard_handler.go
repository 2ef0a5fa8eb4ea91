package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cocob23/jobexpo-backend/database"
	"github.com/cocob23/jobexpo-backend/models"
)

type DashboardHandler struct {
	graceMin int
}

func NewDashboardHandler(graceMin int) *DashboardHandler {
	return &DashboardHandler{graceMin: graceMin}
}

// GET /admin/dashboard/open
// Quiénes están en un cliente ahora mismo: llegadas sin salida, las más
// recientes primero.
func (h *DashboardHandler) Open(c echo.Context) error {
	var rows []models.Llegada
	if err := database.DB.
		Where("check_out_time IS NULL").
		Order("check_in_date DESC, check_in_time DESC").
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}

	owners, err := loadOwners(rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}

	out := make([]llegadaView, 0, len(rows))
	for _, r := range rows {
		out = append(out, buildView(r, owners[r.OwnerID], h.graceMin))
	}
	return c.JSON(http.StatusOK, out)
}
