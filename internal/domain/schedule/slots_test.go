package schedule

import (
	"testing"
	"time"

	"github.com/glowdesk/salon-scheduler/internal/models"
)

var testLoc = time.UTC

// segunda-feira
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, testLoc)

func window(staffID uint, weekday int, start, end string) models.WorkingWindow {
	return models.WorkingWindow{
		StaffID:       staffID,
		Weekday:       weekday,
		StartTime:     start,
		EndTime:       end,
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, testLoc),
	}
}

func booking(id uint, day time.Time, startHM, endHM string) models.Appointment {
	parse := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
	}
	return models.Appointment{
		ID:        id,
		Status:    "scheduled",
		StartTime: parse(startHM),
		EndTime:   parse(endHM),
	}
}

func values(slots []TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Value
	}
	return out
}

func contains(slots []TimeSlot, value string) bool {
	for _, s := range slots {
		if s.Value == value {
			return true
		}
	}
	return false
}

func TestFullGridWhenNoSelection(t *testing.T) {
	slots := AvailableSlots(SlotRequest{})

	if len(slots) != 29 {
		t.Fatalf("expected 29 slots in full grid, got %d", len(slots))
	}
	if slots[0].Value != "08:00" {
		t.Fatalf("expected first slot 08:00, got %s", slots[0].Value)
	}
	if slots[len(slots)-1].Value != "22:00" {
		t.Fatalf("expected last slot 22:00, got %s", slots[len(slots)-1].Value)
	}
	if slots[len(slots)-1].Label != "10:00 PM" {
		t.Fatalf("expected label 10:00 PM, got %s", slots[len(slots)-1].Label)
	}
}

func TestEmptyWhenNoWindows(t *testing.T) {
	slots := AvailableSlots(SlotRequest{
		StaffID: 1,
		Date:    monday,
	})

	if len(slots) != 0 {
		t.Fatalf("expected no slots without working windows, got %d", len(slots))
	}
}

func TestEmptyWhenAllWindowsBlocked(t *testing.T) {
	w := window(1, 1, "09:00", "17:00")
	w.Blocked = true

	slots := AvailableSlots(SlotRequest{
		StaffID: 1,
		Date:    monday,
		Windows: []models.WorkingWindow{w},
	})

	if len(slots) != 0 {
		t.Fatalf("blocked window must drop whole day, got %d slots", len(slots))
	}
}

func TestWindowFiltersGrid(t *testing.T) {
	slots := AvailableSlots(SlotRequest{
		StaffID: 1,
		Date:    monday,
		Service: &ServiceBlock{DurationMin: 60},
		Windows: []models.WorkingWindow{window(1, 1, "09:00", "17:00")},
	})

	got := values(slots)
	if got[0] != "09:00" {
		t.Fatalf("expected first slot 09:00, got %s", got[0])
	}
	if got[len(got)-1] != "16:30" {
		t.Fatalf("expected last slot 16:30, got %s", got[len(got)-1])
	}
	if contains(slots, "08:30") {
		t.Fatal("08:30 must be outside the window")
	}
	if contains(slots, "17:00") {
		t.Fatal("17:00 must be outside the half-open window")
	}
	// 09:00 .. 16:30 de meia em meia hora
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
}

func TestBookingConflictsHalfOpen(t *testing.T) {
	req := SlotRequest{
		StaffID:  1,
		Date:     monday,
		Service:  &ServiceBlock{DurationMin: 30},
		Windows:  []models.WorkingWindow{window(1, 1, "08:00", "22:00")},
		Bookings: []models.Appointment{booking(7, monday, "10:00", "11:00")},
	}

	slots := AvailableSlots(req)

	// 09:30 ocuparia 09:30–10:00: encosta, não conflita
	if !contains(slots, "09:30") {
		t.Fatal("09:30 is boundary-adjacent and must be offered")
	}
	if contains(slots, "10:00") {
		t.Fatal("10:00 overlaps the booking")
	}
	// 10:30 ocuparia 10:30–11:00: dentro do agendamento
	if contains(slots, "10:30") {
		t.Fatal("10:30 overlaps the booking")
	}
	// 11:00 começa exatamente no fim do agendamento
	if !contains(slots, "11:00") {
		t.Fatal("11:00 starts at the booking end and must be offered")
	}
}

func TestBuffersExtendOccupiedInterval(t *testing.T) {
	// 30min + 15 antes + 15 depois = bloco contíguo de 60min a partir do slot
	req := SlotRequest{
		StaffID:  1,
		Date:     monday,
		Service:  &ServiceBlock{DurationMin: 30, BufferBeforeMin: 15, BufferAfterMin: 15},
		Windows:  []models.WorkingWindow{window(1, 1, "08:00", "22:00")},
		Bookings: []models.Appointment{booking(7, monday, "10:00", "11:00")},
	}

	slots := AvailableSlots(req)

	// 09:30 ocuparia 09:30–10:30: agora conflita por causa dos buffers
	if contains(slots, "09:30") {
		t.Fatal("09:30 with buffers overlaps the booking")
	}
	if !contains(slots, "09:00") {
		t.Fatal("09:00 occupies 09:00-10:00 and must be offered")
	}
}

func TestExcludeBookingOnEdit(t *testing.T) {
	req := SlotRequest{
		StaffID:          1,
		Date:             monday,
		Service:          &ServiceBlock{DurationMin: 60},
		Windows:          []models.WorkingWindow{window(1, 1, "08:00", "22:00")},
		Bookings:         []models.Appointment{booking(7, monday, "10:00", "11:00")},
		ExcludeBookingID: 7,
	}

	slots := AvailableSlots(req)

	if !contains(slots, "10:00") {
		t.Fatal("own slot must still be offered when editing")
	}
}

func TestCancelledBookingDoesNotBlock(t *testing.T) {
	b := booking(7, monday, "10:00", "11:00")
	b.Status = "cancelled"

	slots := AvailableSlots(SlotRequest{
		StaffID:  1,
		Date:     monday,
		Service:  &ServiceBlock{DurationMin: 30},
		Windows:  []models.WorkingWindow{window(1, 1, "08:00", "22:00")},
		Bookings: []models.Appointment{b},
	})

	if !contains(slots, "10:00") {
		t.Fatal("cancelled booking must not occupy the calendar")
	}
}

func TestSplitShiftsUnion(t *testing.T) {
	slots := AvailableSlots(SlotRequest{
		StaffID: 1,
		Date:    monday,
		Windows: []models.WorkingWindow{
			window(1, 1, "09:00", "12:00"),
			window(1, 1, "14:00", "18:00"),
		},
	})

	if !contains(slots, "09:00") || !contains(slots, "14:00") {
		t.Fatal("both shifts must contribute slots")
	}
	if contains(slots, "12:30") || contains(slots, "13:30") {
		t.Fatal("gap between shifts must have no slots")
	}
	if contains(slots, "12:00") {
		t.Fatal("12:00 is the half-open end of the morning shift")
	}
}

func TestEffectiveDateRange(t *testing.T) {
	until := time.Date(2026, 2, 1, 0, 0, 0, 0, testLoc)
	w := window(1, 1, "09:00", "17:00")
	w.EffectiveUntil = &until

	slots := AvailableSlots(SlotRequest{
		StaffID: 1,
		Date:    monday, // 2026-03-02, depois do fim da vigência
		Windows: []models.WorkingWindow{w},
	})

	if len(slots) != 0 {
		t.Fatalf("window out of effective range must not apply, got %d slots", len(slots))
	}

	future := window(1, 1, "09:00", "17:00")
	future.EffectiveFrom = time.Date(2026, 6, 1, 0, 0, 0, 0, testLoc)

	slots = AvailableSlots(SlotRequest{
		StaffID: 1,
		Date:    monday,
		Windows: []models.WorkingWindow{future},
	})

	if len(slots) != 0 {
		t.Fatalf("window not yet effective must not apply, got %d slots", len(slots))
	}
}

func TestInvertedWindowYieldsNothing(t *testing.T) {
	slots := AvailableSlots(SlotRequest{
		StaffID: 1,
		Date:    monday,
		Windows: []models.WorkingWindow{window(1, 1, "17:00", "09:00")},
	})

	if len(slots) != 0 {
		t.Fatalf("inverted window must behave as always-unavailable, got %d slots", len(slots))
	}
}

func TestIdempotentAndOrderStable(t *testing.T) {
	req := SlotRequest{
		StaffID:  1,
		Date:     monday,
		Service:  &ServiceBlock{DurationMin: 45},
		Windows:  []models.WorkingWindow{window(1, 1, "09:00", "17:00")},
		Bookings: []models.Appointment{booking(7, monday, "11:00", "12:00")},
	}

	first := AvailableSlots(req)
	second := AvailableSlots(req)

	if len(first) != len(second) {
		t.Fatalf("expected identical results, got %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs between runs: %v vs %v", i, first[i], second[i])
		}
		if i > 0 && first[i].Value <= first[i-1].Value {
			t.Fatalf("slots out of ascending order at %d: %s after %s", i, first[i].Value, first[i-1].Value)
		}
	}
}
