package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/timeutil"
)

// Appointment represents a booking between a client and a provider
// at an exact instant. CanceledAt == nil means the appointment is active.
type Appointment struct {
	ID         int64
	UserID     int64
	ProviderID int64
	Date       time.Time
	CanceledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCanceled returns true if the appointment has been canceled
func (a *Appointment) IsCanceled() bool {
	return a.CanceledAt != nil
}

// IsActive returns true if the appointment has not been canceled
func (a *Appointment) IsActive() bool {
	return a.CanceledAt == nil
}

// IsPast returns true if the appointment date is already in the past
func (a *Appointment) IsPast(now time.Time) bool {
	return a.Date.Before(now)
}

// IsCancelable returns true if the appointment is still active and now is
// before the cancellation deadline (date minus the notice window)
func (a *Appointment) IsCancelable(now time.Time) bool {
	if a.IsCanceled() {
		return false
	}
	return now.Before(timeutil.HoursBefore(a.Date, CancellationNoticeHours))
}
