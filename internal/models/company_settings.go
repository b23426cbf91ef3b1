package models

import "time"

// Configuração de agenda da empresa. A granularidade dos slots
// (appointment_interval_min) define a grade de horários.
type CompanySettings struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"uniqueIndex" json:"company_id"`

	AppointmentIntervalMin int `gorm:"default:30" json:"appointment_interval_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
