package schedule

import (
	"fmt"
	"time"
)

// ParseClock converte um rótulo "HH:MM" (24h) em minutos desde a meia-noite.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// MinuteOfDay extrai o minuto de parede de um instante já convertido
// para o timezone de referência da empresa.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
