package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Appointment é um agendamento ativo. Só existe nesta tabela enquanto
// está "scheduled"; estados terminais vivem em AppointmentHistory.
type Appointment struct {
	ID string `gorm:"primaryKey;size:40" json:"id"`

	BarbershopID   uint `gorm:"index:idx_appointments_day" json:"barbershop_id"`
	ProfessionalID uint `gorm:"index:idx_appointments_day" json:"professional_id"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;index" json:"client_phone"`
	ClientTaxID string `gorm:"size:20" json:"client_tax_id"`

	Service    string          `gorm:"size:255" json:"service"`
	ServiceIDs datatypes.JSON  `gorm:"type:text" json:"service_ids"`
	Date       string          `gorm:"size:10;index:idx_appointments_day" json:"date"`
	StartTime  string          `gorm:"size:5" json:"start_time"`
	EndTime    string          `gorm:"size:5" json:"end_time"`
	Value      decimal.Decimal `gorm:"type:numeric(10,2)" json:"value"`

	Status          string `gorm:"size:20;default:'scheduled'" json:"status"`
	ClientConfirmed bool   `gorm:"default:false" json:"client_confirmed"`
	Notes           string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
