package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentHistory struct {
	ID            string `gorm:"primaryKey;size:40" json:"id"`
	AppointmentID string `gorm:"size:40;uniqueIndex" json:"appointment_id"`

	BarbershopID   uint `gorm:"index" json:"barbershop_id"`
	ProfessionalID uint `json:"professional_id"`

	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientPhone string `gorm:"size:20;index" json:"client_phone"`
	ClientTaxID string `gorm:"size:20;index" json:"client_tax_id"`

	Service   string          `gorm:"size:255" json:"service"`
	Date      string          `gorm:"size:10;index" json:"date"`
	StartTime string          `gorm:"size:5" json:"start_time"`
	EndTime   string          `gorm:"size:5" json:"end_time"`
	Value     decimal.Decimal `gorm:"type:numeric(10,2)" json:"value"`

	Status          string    `gorm:"size:20;index" json:"status"`
	ClientConfirmed bool      `json:"client_confirmed"`
	Notes           string    `gorm:"size:255" json:"notes"`
	Reason          string    `gorm:"size:255" json:"reason"`
	ClosedAt        time.Time `json:"closed_at"`

	CreatedAt time.Time `json:"created_at"`
}
