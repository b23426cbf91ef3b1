package models

import (
	"time"

	"gorm.io/gorm"
)

// Modo GENERAL aplica Percentage sobre o valor do agendamento;
// modo SERVICE usa a tabela de regras por serviço.
type CommissionConfig struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index:idx_commission_member,unique" json:"company_id"`
	UserID    uint `gorm:"index:idx_commission_member,unique" json:"user_id"`

	Mode       string  `gorm:"size:10;default:'GENERAL'" json:"mode"` // GENERAL | SERVICE
	Percentage float64 `json:"percentage"`

	Rules []CommissionRule `json:"rules"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type CommissionRule struct {
	ID                 uint `gorm:"primaryKey" json:"id"`
	CommissionConfigID uint `gorm:"index" json:"commission_config_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Percentage float64 `json:"percentage"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
