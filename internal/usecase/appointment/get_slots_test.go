package appointment

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/trimlyapp/trimly-api/internal/domain/schedule"
	"github.com/trimlyapp/trimly-api/internal/httperr"
	"github.com/trimlyapp/trimly-api/internal/models"
)

// fakeRepo implementa schedule.Repository em memória para os testes de
// disponibilidade e criação. Métodos fora desses fluxos apenas panicam.
type fakeRepo struct {
	company  *models.Company
	settings *models.CompanySettings
	hours    []models.WorkingHours
	user     *models.User
	member   bool

	services []models.Service
	products []models.Product
	clients  []models.Client

	dayAppointments []models.Appointment

	createErr error
	created   *models.Appointment
	blockEnd  time.Time
}

var errNotFound = errors.New("not found")

func (f *fakeRepo) GetCompanyByID(_ context.Context, id uint) (*models.Company, error) {
	if f.company == nil || f.company.ID != id {
		return nil, errNotFound
	}
	return f.company, nil
}

func (f *fakeRepo) GetCompanySettings(_ context.Context, companyID uint) (*models.CompanySettings, error) {
	if f.settings == nil {
		return nil, errNotFound
	}
	return f.settings, nil
}

func (f *fakeRepo) ListWorkingHours(_ context.Context, companyID uint) ([]models.WorkingHours, error) {
	return f.hours, nil
}

func (f *fakeRepo) GetProfessional(_ context.Context, id uint) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, errNotFound
	}
	return f.user, nil
}

func (f *fakeRepo) IsCompanyMember(_ context.Context, companyID, userID uint) (bool, error) {
	return f.member, nil
}

func (f *fakeRepo) ListServicesByIDs(_ context.Context, companyID uint, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.CompanyID != companyID {
			continue
		}
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) ListProductsByIDs(_ context.Context, companyID uint, ids []uint) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if p.CompanyID != companyID {
			continue
		}
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) GetClient(_ context.Context, companyID, clientID uint) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].ID == clientID && f.clients[i].CompanyID == companyID {
			return &f.clients[i], nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, companyID uint, name, phone, email string) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].CompanyID == companyID && f.clients[i].Phone == phone {
			return &f.clients[i], nil
		}
	}

	client := models.Client{
		ID:        uint(len(f.clients) + 100),
		CompanyID: companyID,
		Name:      name,
		Phone:     phone,
		Email:     email,
	}
	f.clients = append(f.clients, client)
	return &client, nil
}

func (f *fakeRepo) CreateAppointmentChecked(_ context.Context, ap *models.Appointment, blockEnd time.Time, defaultIntervalMin int) error {
	if f.createErr != nil {
		return f.createErr
	}
	ap.ID = 1
	f.created = ap
	f.blockEnd = blockEnd
	return nil
}

func (f *fakeRepo) GetAppointmentForProfessional(_ context.Context, appointmentID, userID uint) (*models.Appointment, error) {
	panic("not used")
}

func (f *fakeRepo) GetAppointmentByRef(_ context.Context, companyID uint, ref string) (*models.Appointment, error) {
	panic("not used")
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	panic("not used")
}

func (f *fakeRepo) SoftDeleteAppointment(_ context.Context, ap *models.Appointment) error {
	panic("not used")
}

func (f *fakeRepo) ListDayAppointments(_ context.Context, userID, companyID uint, start, end time.Time) ([]models.Appointment, error) {
	return f.dayAppointments, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, userID uint, start, end time.Time) ([]models.Appointment, error) {
	panic("not used")
}

var _ schedule.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Helpers
// --------------------------------------------------

const tzSaoPaulo = "America/Sao_Paulo"

func baseRepo() *fakeRepo {
	return &fakeRepo{
		company:  &models.Company{ID: 1, Timezone: tzSaoPaulo},
		settings: &models.CompanySettings{CompanyID: 1, AppointmentIntervalMin: 30},
		hours: []models.WorkingHours{
			// quinta-feira, 09:00-12:00
			{CompanyID: 1, Weekday: 4, OpenTime: "09:00", CloseTime: "12:00"},
		},
		user:   &models.User{ID: 10},
		member: true,
	}
}

func fixedNow(t *testing.T, value string) func() time.Time {
	t.Helper()
	loc, err := time.LoadLocation(tzSaoPaulo)
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	if err != nil {
		t.Fatalf("parse now: %v", err)
	}
	return func() time.Time { return parsed }
}

func newUC(t *testing.T, repo *fakeRepo, now string) *GetAvailableSlots {
	t.Helper()
	uc := NewGetAvailableSlots(repo)
	uc.now = fixedNow(t, now)
	return uc
}

// 2026-09-10 é uma quinta-feira.
const openDate = "2026-09-10"

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestGetAvailableSlotsFullGrid(t *testing.T) {
	uc := newUC(t, baseRepo(), "2026-09-01 08:00")

	got, err := uc.Execute(context.Background(), AvailableSlotsInput{
		CompanyID:      1,
		ProfessionalID: 10,
		Date:           openDate,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("slots = %v, want %v", got, want)
	}
}

func TestGetAvailableSlotsBlocksBookings(t *testing.T) {
	repo := baseRepo()

	loc, _ := time.LoadLocation(tzSaoPaulo)
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, loc)

	// 45 minutos de serviço bloqueiam 10:00 e 10:30, nunca 11:00.
	repo.dayAppointments = []models.Appointment{
		{
			ScheduledTime: start,
			Services: []models.ServiceAppointment{
				{Service: models.Service{DurationMin: 45}, Quantity: 1},
			},
		},
	}

	uc := newUC(t, repo, "2026-09-01 08:00")

	got, err := uc.Execute(context.Background(), AvailableSlotsInput{
		CompanyID:      1,
		ProfessionalID: 10,
		Date:           openDate,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"09:00", "09:30", "11:00", "11:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("slots = %v, want %v", got, want)
	}
}

func TestGetAvailableSlotsSameDayCutsPast(t *testing.T) {
	uc := newUC(t, baseRepo(), "2026-09-10 10:05")

	got, err := uc.Execute(context.Background(), AvailableSlotsInput{
		CompanyID:      1,
		ProfessionalID: 10,
		Date:           openDate,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"10:30", "11:00", "11:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("slots = %v, want %v", got, want)
	}
}

func TestGetAvailableSlotsPastDateEmpty(t *testing.T) {
	uc := newUC(t, baseRepo(), "2026-09-15 08:00")

	got, err := uc.Execute(context.Background(), AvailableSlotsInput{
		CompanyID:      1,
		ProfessionalID: 10,
		Date:           openDate,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("past date should return empty, got %v", got)
	}
}

func TestGetAvailableSlotsClosedDayEmpty(t *testing.T) {
	uc := newUC(t, baseRepo(), "2026-09-01 08:00")

	// 2026-09-11 é sexta-feira: sem linha de expediente, dia fechado.
	got, err := uc.Execute(context.Background(), AvailableSlotsInput{
		CompanyID:      1,
		ProfessionalID: 10,
		Date:           "2026-09-11",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("closed day should return empty, got %v", got)
	}
}

func TestGetAvailableSlotsDomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*fakeRepo)
		input    AvailableSlotsInput
		wantCode string
	}{
		{
			name:     "profissional inexistente",
			mutate:   func(r *fakeRepo) {},
			input:    AvailableSlotsInput{CompanyID: 1, ProfessionalID: 99, Date: openDate},
			wantCode: "professional_not_found",
		},
		{
			name:     "empresa inexistente",
			mutate:   func(r *fakeRepo) {},
			input:    AvailableSlotsInput{CompanyID: 99, ProfessionalID: 10, Date: openDate},
			wantCode: "company_not_found",
		},
		{
			name:     "sem configuracao",
			mutate:   func(r *fakeRepo) { r.settings = nil },
			input:    AvailableSlotsInput{CompanyID: 1, ProfessionalID: 10, Date: openDate},
			wantCode: "settings_not_configured",
		},
		{
			name:     "sem expediente cadastrado",
			mutate:   func(r *fakeRepo) { r.hours = nil },
			input:    AvailableSlotsInput{CompanyID: 1, ProfessionalID: 10, Date: openDate},
			wantCode: "working_hours_not_configured",
		},
		{
			name:     "data invalida",
			mutate:   func(r *fakeRepo) {},
			input:    AvailableSlotsInput{CompanyID: 1, ProfessionalID: 10, Date: "10/09/2026"},
			wantCode: "invalid_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := baseRepo()
			tt.mutate(repo)
			uc := newUC(t, repo, "2026-09-01 08:00")

			_, err := uc.Execute(context.Background(), tt.input)
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}
