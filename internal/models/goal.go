package models

import (
	"time"

	"gorm.io/gorm"
)

// Meta de faturamento mensal por profissional. O progresso é a soma
// dos valores dos agendamentos COMPLETED do mês.
type Goal struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index" json:"company_id"`
	UserID    uint `gorm:"index" json:"user_id"`

	Month       int     `json:"month"` // 1..12
	Year        int     `json:"year"`
	TargetValue float64 `json:"target_value"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
