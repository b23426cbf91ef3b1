package models

import "time"

// Uma linha por (empresa, dia da semana). Weekday segue time.Weekday:
// 0 = domingo ... 6 = sábado. OpenTime/CloseTime vazios = fechado no dia.
type WorkingHours struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index" json:"company_id"`

	Weekday int `json:"weekday"`

	OpenTime  string `gorm:"size:5" json:"open_time"`  // "HH:MM"
	CloseTime string `gorm:"size:5" json:"close_time"` // "HH:MM"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
