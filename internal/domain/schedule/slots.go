package schedule

import (
	"time"

	"github.com/glowdesk/salon-scheduler/internal/models"
)

// Grade fixa de meia em meia hora, 08:00–22:00 inclusive.
const (
	gridStartMin = 8 * 60
	gridEndMin   = 22 * 60
	gridStepMin  = 30
)

// TimeSlot é um horário de início selecionável.
type TimeSlot struct {
	Label string `json:"label"` // "3:30 PM"
	Value string `json:"value"` // "15:30"
}

// ServiceBlock define o intervalo ocupado de um agendamento candidato:
// duração + buffers são minutos contíguos a partir do horário escolhido,
// nunca um padding em volta do horário visível.
type ServiceBlock struct {
	DurationMin     int
	BufferBeforeMin int
	BufferAfterMin  int
}

func (s ServiceBlock) TotalMinutes() int {
	return s.DurationMin + s.BufferBeforeMin + s.BufferAfterMin
}

// SlotRequest reúne tudo que o cálculo precisa. Função pura: mesmos
// inputs, mesma saída, sem I/O.
type SlotRequest struct {
	StaffID uint
	Date    time.Time

	// Service nil pula o filtro de conflito com buffers; o filtro de
	// janela de expediente continua valendo.
	Service *ServiceBlock

	Windows  []models.WorkingWindow
	Bookings []models.Appointment

	// ExcludeBookingID evita que, ao editar, o agendamento conflite
	// consigo mesmo.
	ExcludeBookingID uint
}

// AvailableSlots produz os horários selecionáveis em ordem crescente.
//
// Sem StaffID ou Date não há restrição ainda: devolve a grade inteira
// (fallback permissivo, não é "sem disponibilidade"). Sem nenhuma janela
// não bloqueada para o dia, devolve vazio ("não trabalha nesse dia").
func AvailableSlots(req SlotRequest) []TimeSlot {
	if req.StaffID == 0 || req.Date.IsZero() {
		return fullGrid()
	}

	windows := matchingWindows(req.StaffID, req.Date, req.Windows)
	if len(windows) == 0 {
		return []TimeSlot{}
	}

	busy := busyIntervals(req)

	slots := []TimeSlot{}
	for m := gridStartMin; m <= gridEndMin; m += gridStepMin {
		if !inAnyWindow(m, windows) {
			continue
		}

		if req.Service != nil {
			newStart := m
			newEnd := m + req.Service.TotalMinutes()
			if overlapsAny(newStart, newEnd, busy) {
				continue
			}
		}

		slots = append(slots, slotAt(m))
	}

	return slots
}

// StartsInWindow valida o início de um agendamento contra as janelas do
// profissional, com a mesma regra da grade: basta o início cair numa
// janela vigente e não bloqueada.
func StartsInWindow(staffID uint, start time.Time, windows []models.WorkingWindow) bool {
	m := start.Hour()*60 + start.Minute()
	return inAnyWindow(m, matchingWindows(staffID, start, windows))
}

type minuteRange struct {
	start int
	end   int
}

// matchingWindows seleciona janelas do profissional para o dia da semana,
// não bloqueadas, cuja vigência contém a data. Janelas bloqueadas caem
// inteiras: não há recorte parcial.
func matchingWindows(staffID uint, date time.Time, all []models.WorkingWindow) []minuteRange {
	weekday := int(date.Weekday())
	day := dateOnly(date)

	var out []minuteRange
	for _, w := range all {
		if w.StaffID != staffID || w.Weekday != weekday || w.Blocked {
			continue
		}
		if day.Before(dateOnly(w.EffectiveFrom)) {
			continue
		}
		if w.EffectiveUntil != nil && day.After(dateOnly(*w.EffectiveUntil)) {
			continue
		}

		start, ok1 := parseHM(w.StartTime)
		end, ok2 := parseHM(w.EndTime)
		if !ok1 || !ok2 {
			continue
		}

		// Janela invertida (start >= end) não cobre horário nenhum.
		out = append(out, minuteRange{start: start, end: end})
	}

	return out
}

// inAnyWindow: basta o início do slot cair numa janela (união entre janelas).
func inAnyWindow(m int, windows []minuteRange) bool {
	for _, w := range windows {
		if w.start <= m && m < w.end {
			return true
		}
	}
	return false
}

func busyIntervals(req SlotRequest) []minuteRange {
	loc := req.Date.Location()

	var out []minuteRange
	for _, b := range req.Bookings {
		if req.ExcludeBookingID != 0 && b.ID == req.ExcludeBookingID {
			continue
		}
		if b.Status != "" && b.Status != "scheduled" {
			continue
		}

		start := b.StartTime.In(loc)
		end := b.EndTime.In(loc)
		out = append(out, minuteRange{
			start: start.Hour()*60 + start.Minute(),
			end:   end.Hour()*60 + end.Minute(),
		})
	}

	return out
}

// Intervalos semiabertos: encostar na borda não é conflito.
func overlapsAny(start, end int, busy []minuteRange) bool {
	for _, b := range busy {
		if start < b.end && end > b.start {
			return true
		}
	}
	return false
}

func fullGrid() []TimeSlot {
	slots := make([]TimeSlot, 0, (gridEndMin-gridStartMin)/gridStepMin+1)
	for m := gridStartMin; m <= gridEndMin; m += gridStepMin {
		slots = append(slots, slotAt(m))
	}
	return slots
}

func slotAt(m int) TimeSlot {
	t := time.Date(2000, 1, 1, m/60, m%60, 0, 0, time.UTC)
	return TimeSlot{
		Label: t.Format("3:04 PM"),
		Value: t.Format("15:04"),
	}
}

func parseHM(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
