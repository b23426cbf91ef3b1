package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/trimlyapp/trimly-api/internal/models"
)

func TestSlotGrid(t *testing.T) {
	tests := []struct {
		name     string
		openMin  int
		closeMin int
		interval int
		want     []string
	}{
		{
			name:     "manha com intervalo de 30",
			openMin:  9 * 60,
			closeMin: 12 * 60,
			interval: 30,
			want:     []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:     "fechamento nao entra na grade",
			openMin:  18 * 60,
			closeMin: 19 * 60,
			interval: 30,
			want:     []string{"18:00", "18:30"},
		},
		{
			name:     "intervalo de 60",
			openMin:  8 * 60,
			closeMin: 11 * 60,
			interval: 60,
			want:     []string{"08:00", "09:00", "10:00"},
		},
		{
			name:     "intervalo que nao divide a janela",
			openMin:  9 * 60,
			closeMin: 10*60 + 10,
			interval: 45,
			want:     []string{"09:00", "09:45"},
		},
		{
			name:     "abertura igual ao fechamento",
			openMin:  9 * 60,
			closeMin: 9 * 60,
			interval: 30,
			want:     []string{},
		},
		{
			name:     "abertura depois do fechamento",
			openMin:  12 * 60,
			closeMin: 9 * 60,
			interval: 30,
			want:     []string{},
		},
		{
			name:     "intervalo invalido cai no padrao",
			openMin:  9 * 60,
			closeMin: 10 * 60,
			interval: 0,
			want:     []string{"09:00", "09:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotGrid(tt.openMin, tt.closeMin, tt.interval)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SlotGrid(%d, %d, %d) = %v, want %v",
					tt.openMin, tt.closeMin, tt.interval, got, tt.want)
			}
		})
	}
}

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}

func TestBlockedLabels(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")

	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 10, h, m, 0, 0, loc)
	}

	tests := []struct {
		name     string
		bookings []Booking
		interval int
		want     []string
	}{
		{
			name: "servico de 45min bloqueia dois slots de 30",
			bookings: []Booking{
				{Start: at(10, 0), ServiceMinutes: 45},
			},
			interval: 30,
			want:     []string{"10:00", "10:30"},
		},
		{
			name: "fim explicito tem prioridade sobre servicos",
			bookings: []Booking{
				{
					Start:          at(10, 0),
					End:            ptrTime(at(11, 30)),
					ServiceMinutes: 30,
				},
			},
			interval: 30,
			want:     []string{"10:00", "10:30", "11:00"},
		},
		{
			name: "sem servico ocupa um slot",
			bookings: []Booking{
				{Start: at(14, 0)},
			},
			interval: 30,
			want:     []string{"14:00"},
		},
		{
			name: "varios agendamentos acumulam",
			bookings: []Booking{
				{Start: at(9, 0), ServiceMinutes: 30},
				{Start: at(11, 0), ServiceMinutes: 60},
			},
			interval: 30,
			want:     []string{"09:00", "11:00", "11:30"},
		},
		{
			name:     "sem agendamentos nada bloqueado",
			bookings: nil,
			interval: 30,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlockedLabels(tt.bookings, tt.interval, loc)

			if len(got) != len(tt.want) {
				t.Fatalf("BlockedLabels = %v, want labels %v", got, tt.want)
			}
			for _, label := range tt.want {
				if _, ok := got[label]; !ok {
					t.Errorf("label %s should be blocked, got %v", label, got)
				}
			}
		})
	}
}

func TestBlockedLabelsConvertsTimezone(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")

	// 13:00 UTC == 10:00 em São Paulo (UTC-3).
	start := time.Date(2026, 9, 10, 13, 0, 0, 0, time.UTC)
	blocked := BlockedLabels([]Booking{{Start: start, ServiceMinutes: 30}}, 30, loc)

	if _, ok := blocked["10:00"]; !ok {
		t.Errorf("expected wall label 10:00, got %v", blocked)
	}
	if _, ok := blocked["13:00"]; ok {
		t.Errorf("UTC label leaked into blocked set: %v", blocked)
	}
}

func TestAvailable(t *testing.T) {
	grid := []string{"09:00", "09:30", "10:00", "10:30", "11:00"}

	tests := []struct {
		name    string
		blocked map[string]struct{}
		nowMin  int
		sameDay bool
		want    []string
	}{
		{
			name:    "sem bloqueios em dia futuro",
			blocked: map[string]struct{}{},
			sameDay: false,
			want:    grid,
		},
		{
			name: "bloqueados removidos",
			blocked: map[string]struct{}{
				"09:30": {},
				"10:30": {},
			},
			sameDay: false,
			want:    []string{"09:00", "10:00", "11:00"},
		},
		{
			name:    "hoje corta slots passados e o atual",
			blocked: map[string]struct{}{},
			nowMin:  10 * 60, // 10:00 em ponto ainda conta como passado
			sameDay: true,
			want:    []string{"10:30", "11:00"},
		},
		{
			name:    "hoje com minuto quebrado",
			blocked: map[string]struct{}{},
			nowMin:  10*60 + 5,
			sameDay: true,
			want:    []string{"10:30", "11:00"},
		},
		{
			name: "hoje combina corte e bloqueio",
			blocked: map[string]struct{}{
				"10:30": {},
			},
			nowMin:  9*60 + 45,
			sameDay: true,
			want:    []string{"10:00", "11:00"},
		},
		{
			name:    "hoje apos o expediente zera tudo",
			blocked: map[string]struct{}{},
			nowMin:  14 * 60,
			sameDay: true,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Available(grid, tt.blocked, tt.nowMin, tt.sameDay)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Available = %v, want %v", got, tt.want)
			}
		})
	}
}

// Todo resultado é subconjunto da grade, na mesma ordem.
func TestAvailableIsSubsetOfGrid(t *testing.T) {
	grid := SlotGrid(8*60, 18*60, 30)
	blocked := map[string]struct{}{"08:30": {}, "12:00": {}, "17:30": {}}

	got := Available(grid, blocked, 9*60, true)

	idx := make(map[string]int, len(grid))
	for i, label := range grid {
		idx[label] = i
	}

	last := -1
	for _, label := range got {
		pos, ok := idx[label]
		if !ok {
			t.Fatalf("label %s not in grid", label)
		}
		if pos <= last {
			t.Fatalf("order not preserved at %s", label)
		}
		last = pos
	}
}

func TestDayWindow(t *testing.T) {
	rows := []models.WorkingHours{
		{Weekday: 1, OpenTime: "09:00", CloseTime: "18:00"},
		{Weekday: 2, OpenTime: "", CloseTime: ""},
		{Weekday: 3, OpenTime: "bogus", CloseTime: "18:00"},
	}

	tests := []struct {
		name      string
		weekday   int
		wantOpen  int
		wantClose int
		wantIsOpn bool
	}{
		{"dia configurado", 1, 9 * 60, 18 * 60, true},
		{"dia com campos vazios fechado", 2, 0, 0, false},
		{"dia sem linha fechado", 0, 0, 0, false},
		{"horario invalido trata como fechado", 3, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, cl, open := DayWindow(rows, tt.weekday)
			if o != tt.wantOpen || cl != tt.wantClose || open != tt.wantIsOpn {
				t.Errorf("DayWindow(%d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.weekday, o, cl, open, tt.wantOpen, tt.wantClose, tt.wantIsOpn)
			}
		})
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, label := range []string{"00:00", "08:05", "12:30", "23:59"} {
		min, err := ParseClock(label)
		if err != nil {
			t.Fatalf("ParseClock(%s): %v", label, err)
		}
		if got := FormatClock(min); got != label {
			t.Errorf("FormatClock(ParseClock(%s)) = %s", label, got)
		}
	}

	if _, err := ParseClock("25:00"); err == nil {
		t.Error("ParseClock(25:00) should fail")
	}
	if _, err := ParseClock("0900"); err == nil {
		t.Error("ParseClock(0900) should fail")
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
