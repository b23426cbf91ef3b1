package commission

import (
	"math"
	"testing"

	"github.com/trimlyapp/trimly-api/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeGeneralMode(t *testing.T) {
	cfg := &models.CommissionConfig{
		Mode:       string(ModeGeneral),
		Percentage: 10,
	}

	apps := []models.Appointment{
		{Value: 100},
		{Value: 250},
	}

	if got := Compute(cfg, apps); !almostEqual(got, 35) {
		t.Errorf("Compute = %v, want 35", got)
	}
}

func TestComputeServiceMode(t *testing.T) {
	corte := models.Service{ID: 1, Price: 50}
	barba := models.Service{ID: 2, Price: 30}

	cfg := &models.CommissionConfig{
		Mode:       string(ModeService),
		Percentage: 10, // fallback para serviço sem regra
		Rules: []models.CommissionRule{
			{ServiceID: 1, Percentage: 40},
		},
	}

	apps := []models.Appointment{
		{
			Services: []models.ServiceAppointment{
				// regra específica: 50 * 2 * 40% = 40
				{ServiceID: 1, Service: corte, Quantity: 2},
				// sem regra, cai no percentual geral: 30 * 10% = 3
				{ServiceID: 2, Service: barba, Quantity: 1},
			},
		},
	}

	if got := Compute(cfg, apps); !almostEqual(got, 43) {
		t.Errorf("Compute = %v, want 43", got)
	}
}

func TestComputeServiceModeQuantityZero(t *testing.T) {
	svc := models.Service{ID: 7, Price: 100}

	cfg := &models.CommissionConfig{
		Mode:       string(ModeService),
		Percentage: 20,
	}

	apps := []models.Appointment{
		{
			Services: []models.ServiceAppointment{
				// quantidade zerada conta como 1
				{ServiceID: 7, Service: svc, Quantity: 0},
			},
		},
	}

	if got := Compute(cfg, apps); !almostEqual(got, 20) {
		t.Errorf("Compute = %v, want 20", got)
	}
}

func TestComputeNilConfig(t *testing.T) {
	if got := Compute(nil, []models.Appointment{{Value: 100}}); got != 0 {
		t.Errorf("Compute(nil) = %v, want 0", got)
	}
}

func TestComputeNoAppointments(t *testing.T) {
	cfg := &models.CommissionConfig{Mode: string(ModeGeneral), Percentage: 50}
	if got := Compute(cfg, nil); got != 0 {
		t.Errorf("Compute = %v, want 0", got)
	}
}
