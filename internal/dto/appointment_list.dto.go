package dto

import "time"

type AppointmentListDTO struct {
	ID            uint       `json:"id"`
	PublicRef     string     `json:"public_ref"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	EndTime       *time.Time `json:"end_scheduled_time"`
	Status        string     `json:"status"`
	Value         float64    `json:"value"`
	ClientName    string     `json:"client_name"`
	ServiceNames  []string   `json:"service_names"`
}
