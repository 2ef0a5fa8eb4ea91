package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cocob23/jobexpo-backend/checkin"
	"github.com/cocob23/jobexpo-backend/database"
	"github.com/cocob23/jobexpo-backend/models"
	"github.com/cocob23/jobexpo-backend/timeutil"
)

type LlegadaHandler struct {
	rec      *checkin.Recorder
	graceMin int
}

func NewLlegadaHandler(rec *checkin.Recorder, graceMin int) *LlegadaHandler {
	return &LlegadaHandler{rec: rec, graceMin: graceMin}
}

type checkInReq struct {
	CompanyID uint     `json:"company_id"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

type checkOutReq struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

func fixFrom(lat, lng *float64) *checkin.Fix {
	if lat == nil || lng == nil {
		return nil
	}
	return &checkin.Fix{Lat: *lat, Lng: *lng}
}

// recorderError traduce las fallas del recorder a respuestas HTTP. El
// mensaje acompaña al código porque la remediación difiere: pedir datos
// vs. revisar permisos vs. revisar conectividad.
func recorderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, checkin.ErrCompanyNotResolved):
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":   "COMPANY_NOT_RESOLVED",
			"message": "Seleccioná una empresa/cliente existente de la lista",
		})
	case errors.Is(err, checkin.ErrMissingLocation):
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "MISSING_LOCATION",
			"message": "No se pudo obtener la ubicación; activá el GPS y reintentá",
		})
	case errors.Is(err, checkin.ErrPendingCheckout):
		return c.JSON(http.StatusConflict, map[string]any{
			"error":   "PENDING_CHECKOUT_EXISTS",
			"message": "Ya tenés una llegada abierta; registrá la salida primero",
		})
	case errors.Is(err, checkin.ErrNoPendingCheckin):
		return c.JSON(http.StatusNotFound, map[string]any{
			"error":   "NO_PENDING_CHECKIN",
			"message": "No hay ninguna llegada pendiente de salida",
		})
	case errors.Is(err, checkin.ErrNotConfirmed):
		return c.JSON(http.StatusConflict, map[string]any{
			"error":   "CHECKOUT_NOT_CONFIRMED",
			"message": "No se pudo registrar la salida; revisá los permisos de actualización",
		})
	default:
		// error del backend, va textual
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}

// POST /llegadas/checkin
func (h *LlegadaHandler) CheckIn(c echo.Context) error {
	uid := currentUserID(c)
	if uid == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "UNAUTHORIZED"})
	}
	var req checkInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rec, err := h.rec.CheckIn(uid, req.CompanyID, fixFrom(req.Latitude, req.Longitude))
	if err != nil {
		return recorderError(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// POST /llegadas/checkout
func (h *LlegadaHandler) CheckOut(c echo.Context) error {
	uid := currentUserID(c)
	if uid == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "UNAUTHORIZED"})
	}
	var req checkOutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rec, err := h.rec.CheckOut(uid, fixFrom(req.Latitude, req.Longitude))
	if err != nil {
		return recorderError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// llegadaView es la fila que consumen las pantallas: el registro más los
// campos derivados, que nunca se persisten.
type llegadaView struct {
	models.Llegada
	OwnerName       string `json:"owner_name"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
	Late            bool   `json:"late"`
	CheckInCoords   string `json:"check_in_coords,omitempty"` // "lat, lng" a 5 decimales
	CheckOutCoords  string `json:"check_out_coords,omitempty"`
	CheckInMapsURL  string `json:"check_in_maps_url,omitempty"`
	CheckOutMapsURL string `json:"check_out_maps_url,omitempty"`
}

func buildView(r models.Llegada, owner models.User, graceMin int) llegadaView {
	v := llegadaView{Llegada: r, OwnerName: owner.Name}
	if m, ok := timeutil.DurationMinutes(r.CheckInDate, r.CheckInTime, r.CheckOutDate, r.CheckOutTime); ok {
		v.DurationMinutes = &m
	}
	v.Late = timeutil.IsLate(r.CheckInTime, owner.ExpectedArrival, graceMin)
	if r.CheckInLat != nil && r.CheckInLng != nil {
		v.CheckInCoords = timeutil.FormatFix(*r.CheckInLat, *r.CheckInLng)
		v.CheckInMapsURL = timeutil.MapsURL(*r.CheckInLat, *r.CheckInLng)
	}
	if r.CheckOutLat != nil && r.CheckOutLng != nil {
		v.CheckOutCoords = timeutil.FormatFix(*r.CheckOutLat, *r.CheckOutLng)
		v.CheckOutMapsURL = timeutil.MapsURL(*r.CheckOutLat, *r.CheckOutLng)
	}
	return v
}

// q matchea por substring (sin mayúsculas) contra el nombre del usuario
// y el lugar; lateOnly filtra por la marca de tardanza derivada.
func matchesFilter(v llegadaView, q string, lateOnly bool) bool {
	if lateOnly && !v.Late {
		return false
	}
	if q == "" {
		return true
	}
	lq := strings.ToLower(q)
	return strings.Contains(strings.ToLower(v.OwnerName), lq) ||
		strings.Contains(strings.ToLower(v.PlaceName), lq)
}

// GET /llegadas?q=&date=YYYY-MM-DD&late=true
// admin/supervisor ven todo; el resto, solo lo propio.
func (h *LlegadaHandler) List(c echo.Context) error {
	uid := currentUserID(c)
	if uid == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "UNAUTHORIZED"})
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	date := strings.TrimSpace(c.QueryParam("date"))
	lateOnly := c.QueryParam("late") == "true"

	tx := database.DB.Model(&models.Llegada{})
	if !isManager(currentRole(c)) {
		tx = tx.Where("owner_id = ?", uid)
	}
	if date != "" {
		tx = tx.Where("check_in_date = ?", date)
	}

	var rows []models.Llegada
	if err := tx.Order("check_in_date DESC, check_in_time DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}

	owners, err := loadOwners(rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}

	out := make([]llegadaView, 0, len(rows))
	for _, r := range rows {
		v := buildView(r, owners[r.OwnerID], h.graceMin)
		if !matchesFilter(v, q, lateOnly) {
			continue
		}
		out = append(out, v)
	}
	return c.JSON(http.StatusOK, out)
}

// loadOwners resuelve en una sola consulta los usuarios de las filas,
// para el nombre a mostrar y la hora esperada de llegada.
func loadOwners(rows []models.Llegada) (map[uint]models.User, error) {
	out := map[uint]models.User{}
	if len(rows) == 0 {
		return out, nil
	}
	seen := map[uint]bool{}
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		if !seen[r.OwnerID] {
			seen[r.OwnerID] = true
			ids = append(ids, r.OwnerID)
		}
	}
	var users []models.User
	if err := database.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}
