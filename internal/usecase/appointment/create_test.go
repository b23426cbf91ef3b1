package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/trimlyapp/trimly-api/internal/domain/schedule"
	"github.com/trimlyapp/trimly-api/internal/httperr"
	"github.com/trimlyapp/trimly-api/internal/models"
)

func createRepo() *fakeRepo {
	r := baseRepo()
	r.services = []models.Service{
		{ID: 1, CompanyID: 1, Name: "Corte", DurationMin: 30, Price: 50, Active: true},
		{ID: 2, CompanyID: 1, Name: "Barba", DurationMin: 30, Price: 30, Active: true},
	}
	r.products = []models.Product{
		{ID: 5, CompanyID: 1, Name: "Pomada", Price: 25, Stock: 10, Active: true},
	}
	r.clients = []models.Client{
		{ID: 3, CompanyID: 1, Name: "João", Phone: "11999990000"},
	}
	return r
}

func newCreateUC(t *testing.T, repo *fakeRepo, now string) *CreateAppointment {
	t.Helper()
	uc := NewCreateAppointment(repo, nil)
	uc.now = fixedNow(t, now)
	return uc
}

func baseInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		CompanyID:      1,
		ProfessionalID: 10,
		ClientID:       3,
		Date:           openDate,
		Time:           "09:00",
	}
}

func TestCreateAppointmentHappyPath(t *testing.T) {
	repo := createRepo()
	uc := newCreateUC(t, repo, "2026-09-01 08:00")

	in := baseInput()
	in.Services = []ServiceItem{
		{ServiceID: 1, Quantity: 1},
		{ServiceID: 2, Quantity: 1},
	}
	in.Products = []ProductItem{
		{ProductID: 5, Quantity: 2},
	}

	ap, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// valor = 50 + 30 + 25×2
	if ap.Value != 130 {
		t.Errorf("value = %v, want 130", ap.Value)
	}
	if ap.Status != string(schedule.StatusPending) {
		t.Errorf("status = %s, want PENDING", ap.Status)
	}
	if ap.PublicRef == "" {
		t.Error("public_ref not set")
	}
	if ap.ClientID != 3 {
		t.Errorf("client_id = %d, want 3", ap.ClientID)
	}

	loc, _ := time.LoadLocation(tzSaoPaulo)
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, loc)
	if !ap.ScheduledTime.Equal(start) {
		t.Errorf("scheduled_time = %v, want %v", ap.ScheduledTime, start)
	}

	// 60 minutos de serviço: fim explícito às 10:00.
	if ap.EndScheduledTime == nil {
		t.Fatal("end_scheduled_time not set")
	}
	if want := start.Add(60 * time.Minute); !ap.EndScheduledTime.Equal(want) {
		t.Errorf("end_scheduled_time = %v, want %v", ap.EndScheduledTime, want)
	}

	if repo.created != ap {
		t.Error("appointment not persisted through the repository")
	}
}

func TestCreateAppointmentWithoutServicesBlocksOneSlot(t *testing.T) {
	repo := createRepo()
	uc := newCreateUC(t, repo, "2026-09-01 08:00")

	ap, err := uc.Execute(context.Background(), baseInput())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// Sem serviços não há fim explícito, mas o bloqueio de conflito
	// cobre um slot inteiro da grade.
	if ap.EndScheduledTime != nil {
		t.Errorf("end_scheduled_time = %v, want nil", ap.EndScheduledTime)
	}
	if want := ap.ScheduledTime.Add(30 * time.Minute); !repo.blockEnd.Equal(want) {
		t.Errorf("conflict block end = %v, want %v", repo.blockEnd, want)
	}
}

func TestCreateAppointmentPortalClientByPhone(t *testing.T) {
	repo := createRepo()
	uc := newCreateUC(t, repo, "2026-09-01 08:00")

	in := baseInput()
	in.ClientID = 0
	in.ClientName = "Maria"
	in.ClientPhone = "11888880000"

	ap, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap.ClientID == 0 {
		t.Error("client not resolved by phone")
	}

	// Mesmo telefone de novo reaproveita o cliente criado.
	in2 := in
	in2.Time = "10:00"
	ap2, err := uc.Execute(context.Background(), in2)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap2.ClientID != ap.ClientID {
		t.Errorf("client duplicated: %d != %d", ap2.ClientID, ap.ClientID)
	}
}

func TestCreateAppointmentConflictMapped(t *testing.T) {
	repo := createRepo()
	repo.createErr = httperr.ErrBusiness("time_conflict")
	uc := newCreateUC(t, repo, "2026-09-01 08:00")

	_, err := uc.Execute(context.Background(), baseInput())
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Errorf("err = %v, want time_conflict", err)
	}
}

func TestCreateAppointmentRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*fakeRepo)
		input    func(*CreateAppointmentInput)
		now      string
		wantCode string
	}{
		{
			name:     "fora da grade",
			input:    func(in *CreateAppointmentInput) { in.Time = "09:10" },
			wantCode: "not_on_slot_grid",
		},
		{
			name:     "horario no passado",
			now:      "2026-09-15 08:00",
			input:    func(in *CreateAppointmentInput) {},
			wantCode: "in_the_past",
		},
		{
			name:     "data ou hora invalida",
			input:    func(in *CreateAppointmentInput) { in.Time = "9h00" },
			wantCode: "invalid_date_or_time",
		},
		{
			name:     "profissional sem vinculo",
			mutate:   func(r *fakeRepo) { r.member = false },
			input:    func(in *CreateAppointmentInput) {},
			wantCode: "professional_not_in_company",
		},
		{
			name:     "profissional inexistente",
			input:    func(in *CreateAppointmentInput) { in.ProfessionalID = 99 },
			wantCode: "professional_not_found",
		},
		{
			name:     "empresa inexistente",
			input:    func(in *CreateAppointmentInput) { in.CompanyID = 99 },
			wantCode: "company_not_found",
		},
		{
			name:     "sem configuracao",
			mutate:   func(r *fakeRepo) { r.settings = nil },
			input:    func(in *CreateAppointmentInput) {},
			wantCode: "settings_not_configured",
		},
		{
			name:     "sem expediente cadastrado",
			mutate:   func(r *fakeRepo) { r.hours = nil },
			input:    func(in *CreateAppointmentInput) {},
			wantCode: "working_hours_not_configured",
		},
		{
			name: "servico de outra empresa",
			input: func(in *CreateAppointmentInput) {
				in.Services = []ServiceItem{{ServiceID: 77, Quantity: 1}}
			},
			wantCode: "service_not_found",
		},
		{
			name: "produto de outra empresa",
			input: func(in *CreateAppointmentInput) {
				in.Products = []ProductItem{{ProductID: 77, Quantity: 1}}
			},
			wantCode: "product_not_found",
		},
		{
			name:     "dia fechado",
			input:    func(in *CreateAppointmentInput) { in.Date = "2026-09-11" },
			wantCode: "outside_working_hours",
		},
		{
			name: "servico estoura o fechamento",
			input: func(in *CreateAppointmentInput) {
				// 11:30 + 60min passa das 12:00.
				in.Time = "11:30"
				in.Services = []ServiceItem{{ServiceID: 1, Quantity: 2}}
			},
			wantCode: "outside_working_hours",
		},
		{
			name:     "cliente inexistente",
			input:    func(in *CreateAppointmentInput) { in.ClientID = 99 },
			wantCode: "client_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := createRepo()
			if tt.mutate != nil {
				tt.mutate(repo)
			}

			now := tt.now
			if now == "" {
				now = "2026-09-01 08:00"
			}
			uc := newCreateUC(t, repo, now)

			in := baseInput()
			tt.input(&in)

			_, err := uc.Execute(context.Background(), in)
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
			if repo.created != nil {
				t.Error("appointment persisted despite rejection")
			}
		})
	}
}
