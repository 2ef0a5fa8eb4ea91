package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registro de llegada/salida de un usuario en una empresa cliente.
// Fecha y hora se guardan como texto (YYYY-MM-DD / HH:MM:SS), igual que
// los muestran las pantallas. PlaceName es el nombre de la empresa
// denormalizado al momento del check-in: el histórico sigue legible
// aunque la empresa se renombre o se borre.
type Llegada struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	PlaceName string    `gorm:"size:120;not null" json:"place_name"`

	CheckInDate string   `gorm:"size:10;not null" json:"check_in_date"` // YYYY-MM-DD
	CheckInTime string   `gorm:"size:8;not null" json:"check_in_time"`  // HH:MM:SS
	CheckInLat  *float64 `json:"check_in_lat"`
	CheckInLng  *float64 `json:"check_in_lng"`

	// null mientras el registro está abierto
	CheckOutDate *string  `gorm:"size:10" json:"check_out_date"`
	CheckOutTime *string  `gorm:"size:8" json:"check_out_time"`
	CheckOutLat  *float64 `json:"check_out_lat"`
	CheckOutLng  *float64 `json:"check_out_lng"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Llegada) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Open indica si todavía no se registró la salida.
func (l *Llegada) Open() bool { return l.CheckOutTime == nil }
