package appointment

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/glowdesk/salon-scheduler/internal/domain/appointment"
	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/models"
)

var _ domain.Repository = (*fakeRepo)(nil)

// fakeRepo guarda tudo em memória e replica a semântica do repositório
// real: conflito é intervalo meio-aberto, excludeID ignora o próprio
// agendamento, só status "scheduled" bloqueia horário.
type fakeRepo struct {
	salon    *models.Salon
	services map[uint]*models.Service
	windows  []models.WorkingWindow
	bookings []*models.Appointment

	nextID uint
}

func newFakeRepo(salon *models.Salon) *fakeRepo {
	return &fakeRepo{
		salon:    salon,
		services: map[uint]*models.Service{},
		nextID:   1,
	}
}

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if f.salon == nil || f.salon.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.salon, nil
}

func (f *fakeRepo) GetService(_ context.Context, salonID, serviceID uint) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok || s.SalonID != salonID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 1, SalonID: salonID, Name: name, Phone: phone, Email: email}, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if err := f.assertNoTimeConflict(ap.StaffID, ap.StartTime, ap.EndTime, 0); err != nil {
		return err
	}
	ap.ID = f.nextID
	f.nextID++
	f.bookings = append(f.bookings, ap)
	return nil
}

func (f *fakeRepo) RescheduleAppointment(_ context.Context, ap *models.Appointment) error {
	if err := f.assertNoTimeConflict(ap.StaffID, ap.StartTime, ap.EndTime, ap.ID); err != nil {
		return err
	}
	for i, b := range f.bookings {
		if b.ID == ap.ID {
			f.bookings[i] = ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) assertNoTimeConflict(staffID uint, start, end time.Time, excludeID uint) error {
	for _, b := range f.bookings {
		if b.StaffID != staffID || b.ID == excludeID || b.Status != "scheduled" {
			continue
		}
		if start.Before(b.EndTime) && end.After(b.StartTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (f *fakeRepo) GetAppointmentForSalon(_ context.Context, appointmentID, salonID uint) (*models.Appointment, error) {
	for _, b := range f.bookings {
		if b.ID == appointmentID && b.SalonID == salonID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, b := range f.bookings {
		if b.ID == ap.ID {
			f.bookings[i] = ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, appointmentID, salonID uint) error {
	for i, b := range f.bookings {
		if b.ID == appointmentID && b.SalonID == salonID {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListWorkingWindows(_ context.Context, staffID uint) ([]models.WorkingWindow, error) {
	out := []models.WorkingWindow{}
	for _, w := range f.windows {
		if w.StaffID == staffID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, b := range f.bookings {
		if b.StaffID == staffID && b.Status == "scheduled" &&
			b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, b := range f.bookings {
		if b.StaffID == staffID &&
			b.StartTime.Before(end) && !b.StartTime.Before(start) {
			out = append(out, *b)
		}
	}
	return out, nil
}
