package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Referência pública usada pelo portal do cliente (UUID).
	PublicRef string `gorm:"size:36;uniqueIndex" json:"public_ref"`

	CompanyID uint    `json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	UserID uint `gorm:"index:idx_user_scheduled" json:"user_id"` // profissional
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Instante armazenado em UTC; o rótulo de parede é derivado
	// pelo timezone da empresa.
	ScheduledTime    time.Time  `gorm:"index:idx_user_scheduled" json:"scheduled_time"`
	EndScheduledTime *time.Time `json:"end_scheduled_time"`

	Status string  `gorm:"size:20;default:'PENDING'" json:"status"`
	Value  float64 `json:"value"`
	Notes  string  `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Services []ServiceAppointment `json:"services"`
	Products []ProductAppointment `json:"products"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Itens de serviço do agendamento. Linhas dependentes: são as únicas
// entidades substituídas com delete físico durante um update.
type ServiceAppointment struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Quantity int `gorm:"default:1" json:"quantity"`
}

type ProductAppointment struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`

	Quantity int `gorm:"default:1" json:"quantity"`
}
