package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/cocob23/jobexpo-backend/database"
	"github.com/cocob23/jobexpo-backend/directory"
	"github.com/cocob23/jobexpo-backend/models"
)

type CompanyHandler struct {
	dir *directory.Service
}

func NewCompanyHandler(dir *directory.Service) *CompanyHandler {
	return &CompanyHandler{dir: dir}
}

// GET /companies/search?q=acm
// Typeahead del check-in. Nunca devuelve error al usuario: si el store
// falla, el Service ya filtró el snapshot local.
func (h *CompanyHandler) Search(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dir.Search(c.QueryParam("q")))
}

type companyReq struct {
	Name  string `json:"name" validate:"required,min=1,max=120"`
	Alias string `json:"alias" validate:"max=120"`
}

// GET /admin/companies
func (h *CompanyHandler) List(c echo.Context) error {
	var rows []models.Company
	if err := database.DB.Order("name ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/companies
func (h *CompanyHandler) Create(c echo.Context) error {
	var req companyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Alias = strings.TrimSpace(req.Alias)
	if err := c.Validate(&req); err != nil {
		return err
	}

	rec := models.Company{Name: req.Name, Alias: req.Alias}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /admin/companies/:id
func (h *CompanyHandler) Update(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	var req companyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Alias = strings.TrimSpace(req.Alias)
	if err := c.Validate(&req); err != nil {
		return err
	}

	var rec models.Company
	if err := database.DB.First(&rec, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "COMPANY_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
	rec.Name = req.Name
	rec.Alias = req.Alias
	if err := database.DB.Save(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /admin/companies/:id
// Las llegadas guardan el nombre denormalizado, así que borrar una
// empresa no toca el histórico.
func (h *CompanyHandler) Delete(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	if err := database.DB.Delete(&models.Company{}, id).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
