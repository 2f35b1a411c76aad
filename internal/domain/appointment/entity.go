package appointment

import "time"

type AvailabilityInput struct {
	SalonID   uint
	StaffID   uint
	ServiceID uint
	Date      time.Time

	// ExcludeBookingID mantém o próprio horário disponível ao editar.
	ExcludeBookingID uint
}
