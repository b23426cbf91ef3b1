package schedule

import "time"

const DefaultIntervalMin = 30

const minutesPerDay = 24 * 60

func NormalizeInterval(interval int) int {
	if interval <= 0 {
		return DefaultIntervalMin
	}
	return interval
}

// SlotGrid gera todos os rótulos candidatos entre abertura e fechamento.
// Intervalo meio-aberto: o slot que começa exatamente no fechamento fica
// de fora. Não há grade virando a meia-noite.
func SlotGrid(openMin, closeMin, interval int) []string {
	interval = NormalizeInterval(interval)

	grid := []string{}
	if openMin >= closeMin {
		return grid
	}

	for cur := openMin; cur < closeMin; cur += interval {
		grid = append(grid, FormatClock(cur))
	}
	return grid
}

// Booking é um agendamento não cancelado já persistido, reduzido ao que
// o cálculo de bloqueio precisa.
type Booking struct {
	Start time.Time
	End   *time.Time

	// Σ duração × quantidade dos serviços vinculados; 0 quando não há.
	ServiceMinutes int
}

// Prioridade da duração: fim explícito > serviços somados > intervalo
// padrão da empresa (agendamento sem serviço ocupa um slot).
func (b Booking) durationMin(interval int) int {
	if b.End != nil {
		if d := int(b.End.Sub(b.Start).Minutes()); d > 0 {
			return d
		}
	}
	if b.ServiceMinutes > 0 {
		return b.ServiceMinutes
	}
	return NormalizeInterval(interval)
}

// BlockedLabels materializa cada agendamento como a sequência de rótulos
// de grade que ele ocupa, caminhando de `interval` em `interval` a partir
// do minuto inicial enquanto ainda sobrepõe a duração.
func BlockedLabels(bookings []Booking, interval int, loc *time.Location) map[string]struct{} {
	interval = NormalizeInterval(interval)

	blocked := make(map[string]struct{})
	for _, b := range bookings {
		start := b.Start.In(loc)
		startMin := MinuteOfDay(start)
		endMin := startMin + b.durationMin(interval)

		for m := startMin; m < endMin && m < minutesPerDay; m += interval {
			blocked[FormatClock(m)] = struct{}{}
		}
	}
	return blocked
}

// Available filtra a grade: remove bloqueados e, quando a data é hoje,
// remove todo rótulo <= minuto de parede atual (só slots estritamente
// futuros). A ordem de geração da grade é preservada.
func Available(grid []string, blocked map[string]struct{}, nowMin int, sameDay bool) []string {
	out := make([]string, 0, len(grid))
	for _, label := range grid {
		if _, ok := blocked[label]; ok {
			continue
		}
		if sameDay {
			m, err := ParseClock(label)
			if err != nil || m <= nowMin {
				continue
			}
		}
		out = append(out, label)
	}
	return out
}
