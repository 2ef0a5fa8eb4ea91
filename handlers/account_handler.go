package handlers

import (
	"crypto/rand"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cocob23/jobexpo-backend/database"
	"github.com/cocob23/jobexpo-backend/models"
	"github.com/cocob23/jobexpo-backend/timeutil"
)

// Administración de cuentas de personal (técnicos, limpieza, comerciales,
// supervisores). Acá también vive la política de llegada por usuario.

type AccountHandler struct{}

func NewAccountHandler() *AccountHandler { return &AccountHandler{} }

type createAccountReq struct {
	Username        string `json:"username" validate:"required,min=3,max=60"`
	Password        string `json:"password" validate:"required,min=8"`
	Name            string `json:"name" validate:"required,max=120"`
	Role            string `json:"role" validate:"required,oneof=admin supervisor tecnico limpieza comercial"`
	ExpectedArrival string `json:"expected_arrival"` // "HH:MM", opcional
}

type patchAccountReq struct {
	Enabled         *bool   `json:"enabled,omitempty"`
	Role            *string `json:"role,omitempty"`
	Name            *string `json:"name,omitempty"`
	ExpectedArrival *string `json:"expected_arrival,omitempty"`
}

type accountDTO struct {
	ID              uint      `json:"id"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	ExpectedArrival string    `json:"expected_arrival"`
	Enabled         bool      `json:"enabled"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toAccountDTO(u models.User) accountDTO {
	return accountDTO{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.Name,
		Role:            u.Role,
		ExpectedArrival: u.ExpectedArrival,
		Enabled:         u.Enabled,
		UpdatedAt:       u.UpdatedAt,
	}
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func randomPassword(n int) string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	if n < 8 {
		n = 8
	}
	out := make([]byte, n)
	for i := range out {
		idx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}

// valida "HH:MM" (vacío = sin política)
func validArrival(s string) bool {
	if s == "" {
		return true
	}
	_, ok := timeutil.ParseClock(s)
	return ok
}

// GET /admin/accounts
func (h *AccountHandler) List(c echo.Context) error {
	var users []models.User
	if err := database.DB.Order("name ASC").Find(&users).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	out := make([]accountDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toAccountDTO(u))
	}
	return c.JSON(http.StatusOK, out)
}

// POST /admin/accounts
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
	req.ExpectedArrival = strings.TrimSpace(req.ExpectedArrival)
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !validArrival(req.ExpectedArrival) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "INVALID_EXPECTED_ARRIVAL"})
	}

	var cnt int64
	if err := database.DB.Model(&models.User{}).
		Where("username = ?", req.Username).Count(&cnt).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	if cnt > 0 {
		return c.JSON(http.StatusConflict, map[string]any{"error": "USERNAME_TAKEN"})
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_ERROR"})
	}
	u := models.User{
		Username:        req.Username,
		Password:        hashed,
		Name:            req.Name,
		Role:            req.Role,
		ExpectedArrival: req.ExpectedArrival,
		Enabled:         true,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_SAVE_ERROR"})
	}
	return c.JSON(http.StatusCreated, toAccountDTO(u))
}

// POST /admin/accounts/:id/reset
// resp: { one_time_password }
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}

	var u models.User
	if err := database.DB.First(&u, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "USER_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}

	otp := randomPassword(12)
	hashed, err := hashPassword(otp)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "HASH_ERROR"})
	}
	if err := database.DB.Model(&u).Update("password", hashed).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_SAVE_ERROR"})
	}
	return c.JSON(http.StatusOK, map[string]any{"one_time_password": otp})
}

// PATCH /admin/accounts/:id
func (h *AccountHandler) Patch(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	var req patchAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	patch := map[string]any{}
	if req.Enabled != nil {
		patch["enabled"] = *req.Enabled
	}
	if req.Role != nil {
		switch *req.Role {
		case "admin", "supervisor", "tecnico", "limpieza", "comercial":
			patch["role"] = *req.Role
		default:
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "INVALID_ROLE"})
		}
	}
	if req.Name != nil {
		patch["name"] = strings.TrimSpace(*req.Name)
	}
	if req.ExpectedArrival != nil {
		ea := strings.TrimSpace(*req.ExpectedArrival)
		if !validArrival(ea) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"error": "INVALID_EXPECTED_ARRIVAL"})
		}
		patch["expected_arrival"] = ea
	}
	if len(patch) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "EMPTY"})
	}

	var u models.User
	if err := database.DB.First(&u, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "USER_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	if err := database.DB.Model(&u).Updates(patch).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_SAVE_ERROR"})
	}
	if err := database.DB.First(&u, id).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	return c.JSON(http.StatusOK, toAccountDTO(u))
}
