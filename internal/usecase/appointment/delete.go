package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/glowdesk/salon-scheduler/internal/audit"
	"github.com/glowdesk/salon-scheduler/internal/cache"
	domain "github.com/glowdesk/salon-scheduler/internal/domain/appointment"
	"github.com/glowdesk/salon-scheduler/internal/timezone"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute remove um agendamento. Já-apagado não é erro para quem chamou:
// o resultado final é o mesmo.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	salonID uint,
	staffID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointmentForSalon(ctx, appointmentID, salonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, appointmentID, salonID); err != nil {
		return err
	}

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err == nil {
		day := ap.StartTime.In(timezone.Location(salon.Timezone)).Format("2006-01-02")
		uc.cache.InvalidateStaffDay(ctx, ap.StaffID, day)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &staffID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
