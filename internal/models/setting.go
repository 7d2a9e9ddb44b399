package models

import "time"

type Setting struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	BarbershopID uint   `gorm:"uniqueIndex:idx_settings_shop_key" json:"barbershop_id"`
	Key          string `gorm:"size:64;uniqueIndex:idx_settings_shop_key" json:"key"`
	Value        string `gorm:"size:255" json:"value"`

	UpdatedAt time.Time `json:"updated_at"`
}
