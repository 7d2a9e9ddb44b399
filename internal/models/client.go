package models

import "time"

// Cliente derivado: criado automaticamente quando atinge o limite de
// agendamentos confirmados. Identificado por telefone, ou CPF na falta dele.
type Client struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"index" json:"barbershop_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index" json:"phone"`
	TaxID string `gorm:"size:20;index" json:"tax_id"`

	SignupDate        string `gorm:"size:10" json:"signup_date"`
	Status            string `gorm:"size:10;default:'inativo'" json:"status"`
	TotalAppointments int    `json:"total_appointments"`
	FirstAppointment  string `gorm:"size:10" json:"first_appointment"`
	LastAppointment   string `gorm:"size:10" json:"last_appointment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
