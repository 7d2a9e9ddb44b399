package models

import (
	"time"

	"gorm.io/datatypes"
)

type Professional struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	Name string `gorm:"size:100;not null" json:"name"`

	// lista de nomes de serviços serializada como JSON em coluna texto
	Services datatypes.JSON `gorm:"type:text" json:"-"`

	MorningStart   string `gorm:"size:5" json:"morning_start"`
	MorningEnd     string `gorm:"size:5" json:"morning_end"`
	AfternoonStart string `gorm:"size:5" json:"afternoon_start"`
	AfternoonEnd   string `gorm:"size:5" json:"afternoon_end"`

	PhotoKey string `gorm:"size:255" json:"-"`
	Active   bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
