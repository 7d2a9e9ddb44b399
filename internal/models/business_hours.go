package models

import "time"

// BusinessHours guarda o expediente de um dia da semana (0 = domingo).
type BusinessHours struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"uniqueIndex:idx_hours_shop_weekday" json:"barbershop_id"`

	Weekday int `gorm:"uniqueIndex:idx_hours_shop_weekday" json:"weekday"`

	MorningStart   string `gorm:"size:5" json:"morning_start"`
	MorningEnd     string `gorm:"size:5" json:"morning_end"`
	AfternoonStart string `gorm:"size:5" json:"afternoon_start"`
	AfternoonEnd   string `gorm:"size:5" json:"afternoon_end"`
	Active         bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
