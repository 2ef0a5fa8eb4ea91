package checkin

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cocob23/jobexpo-backend/models"
	"github.com/cocob23/jobexpo-backend/timeutil"
)

// Fallas de precondición y de confirmación del flujo de llegadas. Los
// handlers las traducen a códigos HTTP; cualquier otro error es del store
// y se propaga tal cual.
var (
	ErrCompanyNotResolved = errors.New("company not resolved from directory")
	ErrMissingLocation    = errors.New("missing location fix")
	ErrPendingCheckout    = errors.New("an open check-in already exists")
	ErrNoPendingCheckin   = errors.New("no open check-in to close")
	ErrNotConfirmed       = errors.New("checkout could not be confirmed")
)

// Fix es una coordenada capturada por el dispositivo.
type Fix struct {
	Lat float64
	Lng float64
}

// Store es el contrato mínimo del recorder contra la persistencia.
// gormStore lo implementa sobre Postgres; los tests usan uno en memoria.
type Store interface {
	FindCompany(id uint) (models.Company, bool, error)
	HasOpen(ownerID uint) (bool, error)
	Insert(l *models.Llegada) error
	// LatestOpen devuelve el registro abierto más reciente del usuario
	// (fecha desc, hora desc), si existe.
	LatestOpen(ownerID uint) (models.Llegada, bool, error)
	// CloseOpen setea los campos de salida solo si el registro sigue
	// abierto y pertenece al usuario; devuelve cuántas filas tocó.
	CloseOpen(id uuid.UUID, ownerID uint, date, clock string, fix Fix) (int64, error)
	Get(id uuid.UUID) (models.Llegada, bool, error)
}

// Recorder implementa el alta y cierre de llegadas.
type Recorder struct {
	store Store
	now   func() time.Time
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// CheckIn crea un registro abierto para el usuario. Precondiciones: la
// empresa tiene que venir resuelta del directorio (texto libre no
// alcanza), la coordenada es obligatoria, y no puede haber otro registro
// abierto del mismo usuario.
func (r *Recorder) CheckIn(ownerID uint, companyID uint, fix *Fix) (models.Llegada, error) {
	if companyID == 0 {
		return models.Llegada{}, ErrCompanyNotResolved
	}
	company, found, err := r.store.FindCompany(companyID)
	if err != nil {
		return models.Llegada{}, err
	}
	if !found {
		return models.Llegada{}, ErrCompanyNotResolved
	}
	if fix == nil {
		return models.Llegada{}, ErrMissingLocation
	}

	open, err := r.store.HasOpen(ownerID)
	if err != nil {
		return models.Llegada{}, err
	}
	if open {
		return models.Llegada{}, ErrPendingCheckout
	}

	date, clock := timeutil.Stamp(r.now())
	lat, lng := fix.Lat, fix.Lng
	l := models.Llegada{
		OwnerID:     ownerID,
		PlaceName:   company.Name,
		CheckInDate: date,
		CheckInTime: clock,
		CheckInLat:  &lat,
		CheckInLng:  &lng,
	}
	if err := r.store.Insert(&l); err != nil {
		return models.Llegada{}, err
	}
	return l, nil
}

// CheckOut cierra el registro abierto más reciente del usuario. El update
// re-afirma owner + "sigue abierto" en el predicado para cubrir un cierre
// concurrente desde otro dispositivo, y después se relee el registro:
// una capa de permisos puede filtrar filas en silencio sin devolver
// error, y eso solo se detecta verificando que la salida quedó grabada.
func (r *Recorder) CheckOut(ownerID uint, fix *Fix) (models.Llegada, error) {
	open, found, err := r.store.LatestOpen(ownerID)
	if err != nil {
		return models.Llegada{}, err
	}
	if !found {
		return models.Llegada{}, ErrNoPendingCheckin
	}
	if fix == nil {
		return models.Llegada{}, ErrMissingLocation
	}

	date, clock := timeutil.Stamp(r.now())
	n, err := r.store.CloseOpen(open.ID, ownerID, date, clock, *fix)
	if err != nil {
		return models.Llegada{}, err
	}
	if n == 0 {
		return models.Llegada{}, ErrNotConfirmed
	}

	got, found, err := r.store.Get(open.ID)
	if err != nil {
		return models.Llegada{}, err
	}
	if !found || got.CheckOutTime == nil {
		return models.Llegada{}, ErrNotConfirmed
	}
	return got, nil
}
