package commission

import "github.com/trimlyapp/trimly-api/internal/models"

type Mode string

const (
	ModeGeneral Mode = "GENERAL"
	ModeService Mode = "SERVICE"
)

// Compute calcula a comissão do profissional sobre agendamentos
// COMPLETED. No modo SERVICE, serviço sem regra cai no percentual
// geral da configuração.
func Compute(cfg *models.CommissionConfig, appointments []models.Appointment) float64 {
	if cfg == nil {
		return 0
	}

	if Mode(cfg.Mode) == ModeService {
		rules := make(map[uint]float64, len(cfg.Rules))
		for _, r := range cfg.Rules {
			rules[r.ServiceID] = r.Percentage
		}

		total := 0.0
		for _, ap := range appointments {
			for _, sa := range ap.Services {
				pct, ok := rules[sa.ServiceID]
				if !ok {
					pct = cfg.Percentage
				}

				qty := sa.Quantity
				if qty <= 0 {
					qty = 1
				}
				total += sa.Service.Price * float64(qty) * pct / 100
			}
		}
		return total
	}

	total := 0.0
	for _, ap := range appointments {
		total += ap.Value * cfg.Percentage / 100
	}
	return total
}
