package appointment

import (
	"context"
	"time"

	"github.com/glowdesk/salon-scheduler/internal/cache"
	domain "github.com/glowdesk/salon-scheduler/internal/domain/appointment"
	"github.com/glowdesk/salon-scheduler/internal/domain/schedule"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewGetAvailability(
	repo domain.Repository,
	cache *cache.AvailabilityCache,
) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache}
}

// Execute calcula os horários livres de um profissional num dia.
// Todo caminho de disponibilidade da API passa por aqui: uma única
// implementação, sem variantes divergindo entre si.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]schedule.TimeSlot, error) {

	// Sem profissional ou data ainda não há restrição: grade inteira.
	if in.StaffID == 0 || in.Date.IsZero() {
		return schedule.AvailableSlots(schedule.SlotRequest{}), nil
	}

	dateKey := in.Date.Format("2006-01-02")

	cacheable := uc.cache != nil && in.ExcludeBookingID == 0
	if cacheable {
		if slots, ok := uc.cache.Get(ctx, in.StaffID, dateKey, in.ServiceID); ok {
			return slots, nil
		}
	}

	var block *schedule.ServiceBlock
	if in.ServiceID != 0 {
		service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		block = &schedule.ServiceBlock{
			DurationMin:     service.DurationMin,
			BufferBeforeMin: service.BufferBeforeMin,
			BufferAfterMin:  service.BufferAfterMin,
		}
	}

	windows, err := uc.repo.ListWorkingWindows(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		in.Date.Location(),
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.StaffID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slots := schedule.AvailableSlots(schedule.SlotRequest{
		StaffID:          in.StaffID,
		Date:             in.Date,
		Service:          block,
		Windows:          windows,
		Bookings:         bookings,
		ExcludeBookingID: in.ExcludeBookingID,
	})

	if cacheable {
		uc.cache.Set(ctx, in.StaffID, dateKey, in.ServiceID, slots)
	}

	return slots, nil
}
