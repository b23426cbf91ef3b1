package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trimlyapp/trimly-api/internal/audit"
	"github.com/trimlyapp/trimly-api/internal/domain/schedule"
	"github.com/trimlyapp/trimly-api/internal/httperr"
	"github.com/trimlyapp/trimly-api/internal/models"
	"github.com/trimlyapp/trimly-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ServiceItem struct {
	ServiceID uint
	Quantity  int
}

type ProductItem struct {
	ProductID uint
	Quantity  int
}

type CreateAppointmentInput struct {
	CompanyID      uint
	ProfessionalID uint

	// ClientID direto (fluxo admin) OU dados do cliente (portal,
	// get-or-create por telefone).
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	Services []ServiceItem
	Products []ProductItem

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateAppointment(
	repo schedule.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Empresa + configuração
	// --------------------------------------------------
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
	// 2️⃣ Profissional precisa ter vínculo com a empresa
	// --------------------------------------------------
	if _, err := uc.repo.GetProfessional(ctx, in.ProfessionalID); err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	member, err := uc.repo.IsCompanyMember(ctx, in.CompanyID, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, httperr.ErrBusiness("professional_not_in_company")
	}

	// --------------------------------------------------
	// 3️⃣ Data/hora no timezone da empresa
	// --------------------------------------------------
	loc := timezone.Location(company.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if start.Before(uc.now().In(loc)) {
		return nil, httperr.ErrBusiness("in_the_past")
	}

	interval := schedule.NormalizeInterval(settings.AppointmentIntervalMin)

	// Alinhamento à grade: minutos desde a meia-noite mod intervalo == 0.
	if schedule.MinuteOfDay(start)%interval != 0 {
		return nil, httperr.ErrBusiness("not_on_slot_grid")
	}

	// --------------------------------------------------
	// 4️⃣ Itens de serviço (mesma empresa) + duração + valor
	// --------------------------------------------------
	value := 0.0
	durationMin := 0

	serviceRows := make([]models.ServiceAppointment, 0, len(in.Services))
	if len(in.Services) > 0 {
		ids := make([]uint, 0, len(in.Services))
		for _, item := range in.Services {
			ids = append(ids, item.ServiceID)
		}

		services, err := uc.repo.ListServicesByIDs(ctx, in.CompanyID, ids)
		if err != nil {
			return nil, err
		}

		byID := make(map[uint]models.Service, len(services))
		for _, s := range services {
			byID[s.ID] = s
		}

		for _, item := range in.Services {
			svc, ok := byID[item.ServiceID]
			if !ok {
				return nil, httperr.ErrBusiness("service_not_found")
			}

			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}

			durationMin += svc.DurationMin * qty
			value += svc.Price * float64(qty)

			serviceRows = append(serviceRows, models.ServiceAppointment{
				ServiceID: svc.ID,
				Quantity:  qty,
			})
		}
	}

	// --------------------------------------------------
	// 5️⃣ Itens de produto (mesma empresa) + valor
	// --------------------------------------------------
	productRows := make([]models.ProductAppointment, 0, len(in.Products))
	if len(in.Products) > 0 {
		ids := make([]uint, 0, len(in.Products))
		for _, item := range in.Products {
			ids = append(ids, item.ProductID)
		}

		products, err := uc.repo.ListProductsByIDs(ctx, in.CompanyID, ids)
		if err != nil {
			return nil, err
		}

		byID := make(map[uint]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		for _, item := range in.Products {
			prod, ok := byID[item.ProductID]
			if !ok {
				return nil, httperr.ErrBusiness("product_not_found")
			}

			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}

			value += prod.Price * float64(qty)

			productRows = append(productRows, models.ProductAppointment{
				ProductID: prod.ID,
				Quantity:  qty,
			})
		}
	}

	// Agendamento sem serviço ocupa um slot da grade.
	blockMin := durationMin
	if blockMin == 0 {
		blockMin = interval
	}
	end := start.Add(time.Duration(blockMin) * time.Minute)

	// --------------------------------------------------
	// 6️⃣ Janela de expediente
	// --------------------------------------------------
	openMin, closeMin, open := schedule.DayWindow(hours, int(start.Weekday()))
	if !open {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	startMin := schedule.MinuteOfDay(start)
	if startMin < openMin || startMin+blockMin > closeMin {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 7️⃣ Cliente
	// --------------------------------------------------
	var client *models.Client
	if in.ClientID != 0 {
		client, err = uc.repo.GetClient(ctx, in.CompanyID, in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
	} else {
		client, err = uc.repo.GetOrCreateClient(
			ctx,
			in.CompanyID,
			in.ClientName,
			in.ClientPhone,
			in.ClientEmail,
		)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 8️⃣ Conflito + insert (mesma transação)
	// --------------------------------------------------
	ap := &models.Appointment{
		PublicRef: uuid.NewString(),
		CompanyID: in.CompanyID,
		UserID:    in.ProfessionalID,
		ClientID:  client.ID,

		ScheduledTime: start,
		Status:        string(schedule.InitialStatus()),
		Value:         value,
		Notes:         in.Notes,

		Services: serviceRows,
		Products: productRows,
	}

	// Fim explícito só quando derivado de serviços.
	if durationMin > 0 {
		ap.EndScheduledTime = &end
	}

	if err := uc.repo.CreateAppointmentChecked(ctx, ap, end, interval); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    &in.ProfessionalID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
