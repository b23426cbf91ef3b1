package appointment

import (
	"context"
	"time"

	"github.com/trimlyapp/trimly-api/internal/domain/schedule"
	"github.com/trimlyapp/trimly-api/internal/dto"
	"github.com/trimlyapp/trimly-api/internal/models"
	"github.com/trimlyapp/trimly-api/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo schedule.Repository
}

func NewListAppointmentsByDate(
	repo schedule.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	userID uint,
	companyID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(company.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		userID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		names := make([]string, 0, len(ap.Services))
		for _, sa := range ap.Services {
			names = append(names, sa.Service.Name)
		}

		out = append(out, dto.AppointmentListDTO{
			ID:            ap.ID,
			PublicRef:     ap.PublicRef,
			ScheduledTime: ap.ScheduledTime,
			EndTime:       ap.EndScheduledTime,
			Status:        ap.Status,
			Value:         ap.Value,
			ClientName:    ap.Client.Name,
			ServiceNames:  names,
		})
	}
	return out
}
