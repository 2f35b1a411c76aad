package appointment

import (
	"context"
	"testing"

	domain "github.com/glowdesk/salon-scheduler/internal/domain/appointment"
	"github.com/glowdesk/salon-scheduler/internal/domain/schedule"
)

func slotValues(slots []schedule.TimeSlot) map[string]bool {
	out := make(map[string]bool, len(slots))
	for _, s := range slots {
		out[s.Value] = true
	}
	return out
}

func TestAvailabilityFullGridWithoutSelection(t *testing.T) {
	repo := repoWithBusinessHours(t)
	uc := NewGetAvailability(repo, nil)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{SalonID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 29 {
		t.Fatalf("expected full grid of 29 slots, got %d", len(slots))
	}
}

func TestAvailabilityDropsBookedSlots(t *testing.T) {
	repo := repoWithBusinessHours(t)
	create := NewCreateAppointment(repo, nil, nil)
	uc := NewGetAvailability(repo, nil)

	if _, err := create.Execute(context.Background(), createInput("10:00")); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   1,
		StaffID:   5,
		ServiceID: 10,
		Date:      futureDay,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vals := slotValues(slots)
	// serviço de 60min: 09:30 invadiria o 10:00–11:00, então também cai
	for _, taken := range []string{"09:30", "10:00", "10:30"} {
		if vals[taken] {
			t.Errorf("slot %s should be occupied", taken)
		}
	}
	// bordas semiabertas: 09:00 termina exatamente às 10:00, 11:00 começa no fim
	for _, free := range []string{"09:00", "11:00"} {
		if !vals[free] {
			t.Errorf("slot %s should be free", free)
		}
	}
}

func TestAvailabilityEditKeepsOwnSlot(t *testing.T) {
	repo := repoWithBusinessHours(t)
	create := NewCreateAppointment(repo, nil, nil)
	uc := NewGetAvailability(repo, nil)

	ap, err := create.Execute(context.Background(), createInput("10:00"))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:          1,
		StaffID:          5,
		ServiceID:        10,
		Date:             futureDay,
		ExcludeBookingID: ap.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slotValues(slots)["10:00"] {
		t.Error("own slot should remain available while editing")
	}
}
