package appointment

import (
	"context"
	"time"

	"github.com/glowdesk/salon-scheduler/internal/audit"
	"github.com/glowdesk/salon-scheduler/internal/cache"
	domain "github.com/glowdesk/salon-scheduler/internal/domain/appointment"
	"github.com/glowdesk/salon-scheduler/internal/domain/schedule"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/models"
	"github.com/glowdesk/salon-scheduler/internal/timezone"
)

type RescheduleAppointmentInput struct {
	SalonID       uint
	StaffID       uint
	AppointmentID uint

	ServiceID uint // 0 mantém o serviço atual

	Date  string
	Time  string
	Notes *string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForSalon(ctx, in.AppointmentID, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.Status != string(domain.StatusScheduled) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	serviceID := in.ServiceID
	if serviceID == 0 {
		serviceID = ap.ServiceID
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.TotalMinutes()) * time.Minute)

	windows, err := uc.repo.ListWorkingWindows(ctx, ap.StaffID)
	if err != nil {
		return nil, err
	}
	if !schedule.StartsInWindow(ap.StaffID, start, windows) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	oldDate := ap.StartTime.In(timezone.Location(salon.Timezone)).Format("2006-01-02")

	ap.ServiceID = service.ID
	ap.StartTime = start
	ap.EndTime = end
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	// Checagem de conflito e escrita na mesma transação; o próprio
	// agendamento não conta como conflito.
	if err := uc.repo.RescheduleAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.cache.InvalidateStaffDay(ctx, ap.StaffID, oldDate)
	uc.cache.InvalidateStaffDay(ctx, ap.StaffID, in.Date)

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.StaffID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
