package appointment

import (
	"context"
	"time"

	"github.com/trimlyapp/trimly-api/internal/domain/schedule"
	"github.com/trimlyapp/trimly-api/internal/httperr"
	"github.com/trimlyapp/trimly-api/internal/models"
	"github.com/trimlyapp/trimly-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type AvailableSlotsInput struct {
	CompanyID      uint
	ProfessionalID uint
	Date           string // YYYY-MM-DD
}

// ======================================================
// USE CASE
// ======================================================

// GetAvailableSlots é o motor de disponibilidade: resolve a janela do
// dia, gera a grade, coleta os intervalos ocupados e filtra. Dia
// fechado e data passada retornam lista vazia, nunca erro.
type GetAvailableSlots struct {
	repo schedule.Repository
	now  func() time.Time
}

func NewGetAvailableSlots(repo schedule.Repository) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo: repo,
		now:  time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in AvailableSlotsInput,
) ([]string, error) {

	// --------------------------------------------------
	// 1️⃣ Pré-condições (erros de domínio)
	// --------------------------------------------------
	if _, err := uc.repo.GetProfessional(ctx, in.ProfessionalID); err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, httperr.ErrBusiness("company_not_found")
	}

	settings, err := uc.repo.GetCompanySettings(ctx, in.CompanyID)
	if err != nil {
		return nil, httperr.ErrBusiness("settings_not_configured")
	}

	hours, err := uc.repo.ListWorkingHours(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if len(hours) == 0 {
		return nil, httperr.ErrBusiness("working_hours_not_configured")
	}

	// --------------------------------------------------
	// 2️⃣ Data no timezone da empresa
	// --------------------------------------------------
	loc := timezone.Location(company.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	now := uc.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// Data no passado: resultado vazio válido.
	if date.Before(today) {
		return []string{}, nil
	}

	// --------------------------------------------------
	// 3️⃣ Janela do dia + grade
	// --------------------------------------------------
	openMin, closeMin, open := schedule.DayWindow(hours, int(date.Weekday()))
	if !open {
		return []string{}, nil
	}

	interval := schedule.NormalizeInterval(settings.AppointmentIntervalMin)
	grid := schedule.SlotGrid(openMin, closeMin, interval)

	// --------------------------------------------------
	// 4️⃣ Intervalos ocupados
	// --------------------------------------------------
	dayStart := date
	dayEnd := date.Add(24 * time.Hour)

	apps, err := uc.repo.ListDayAppointments(
		ctx,
		in.ProfessionalID,
		in.CompanyID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	blocked := schedule.BlockedLabels(toBookings(apps), interval, loc)

	// --------------------------------------------------
	// 5️⃣ Filtro final
	// --------------------------------------------------
	sameDay := date.Equal(today)
	return schedule.Available(grid, blocked, schedule.MinuteOfDay(now), sameDay), nil
}

func toBookings(apps []models.Appointment) []schedule.Booking {
	bookings := make([]schedule.Booking, 0, len(apps))
	for _, ap := range apps {
		serviceMin := 0
		for _, sa := range ap.Services {
			qty := sa.Quantity
			if qty <= 0 {
				qty = 1
			}
			serviceMin += sa.Service.DurationMin * qty
		}

		bookings = append(bookings, schedule.Booking{
			Start:          ap.ScheduledTime,
			End:            ap.EndScheduledTime,
			ServiceMinutes: serviceMin,
		})
	}
	return bookings
}
