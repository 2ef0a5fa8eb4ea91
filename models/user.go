package models

import "time"

// Roles válidos: admin | supervisor | tecnico | limpieza | comercial
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;size:60;not null"`
	Password string `json:"-" gorm:"not null"` // hash bcrypt
	Role     string `json:"role" gorm:"size:20;not null"`
	Name     string `json:"name" gorm:"size:120"`

	// Hora esperada de llegada "HH:MM"; vacío = sin política de puntualidad.
	ExpectedArrival string `json:"expected_arrival" gorm:"size:5"`

	Enabled bool `json:"enabled" gorm:"default:true;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
