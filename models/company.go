package models

import "time"

// Empresa cliente donde se presta servicio. El directorio se administra
// desde el panel de admin; el resto de la app solo lo lee.
type Company struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:120;not null" json:"name"`
	Alias string `gorm:"size:120" json:"alias"` // nombre corto / alternativo para la búsqueda

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
