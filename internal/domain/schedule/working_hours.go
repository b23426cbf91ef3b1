package schedule

import "github.com/trimlyapp/trimly-api/internal/models"

// DayWindow resolve a janela de expediente da empresa para um dia da
// semana (0 = domingo ... 6 = sábado). Linha ausente ou campo vazio
// significa fechado: não é erro, é "sem slots".
func DayWindow(rows []models.WorkingHours, weekday int) (openMin, closeMin int, open bool) {
	for _, wh := range rows {
		if wh.Weekday != weekday {
			continue
		}
		if wh.OpenTime == "" || wh.CloseTime == "" {
			return 0, 0, false
		}

		o, err := ParseClock(wh.OpenTime)
		if err != nil {
			return 0, 0, false
		}
		c, err := ParseClock(wh.CloseTime)
		if err != nil {
			return 0, 0, false
		}
		return o, c, true
	}
	return 0, 0, false
}
