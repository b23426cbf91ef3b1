package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Vínculo usuário ↔ empresa. Um profissional só pode receber
// agendamentos da empresa se tiver vínculo (owner ou member).
type CompanyMember struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index:idx_company_member,unique" json:"company_id"`
	UserID    uint `gorm:"index:idx_company_member,unique" json:"user_id"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Role string `gorm:"size:20;default:'member'" json:"role"` // owner | member

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
