package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_IsCanceled(t *testing.T) {
	canceledAt := time.Now()

	active := &Appointment{}
	canceled := &Appointment{CanceledAt: &canceledAt}

	assert.False(t, active.IsCanceled())
	assert.True(t, active.IsActive())
	assert.True(t, canceled.IsCanceled())
	assert.False(t, canceled.IsActive())
}

func TestAppointment_IsPast(t *testing.T) {
	now := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)

	past := &Appointment{Date: now.Add(-time.Minute)}
	future := &Appointment{Date: now.Add(time.Minute)}

	assert.True(t, past.IsPast(now))
	assert.False(t, future.IsPast(now))
}

func TestAppointment_IsCancelable(t *testing.T) {
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)
	appt := &Appointment{Date: date}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before deadline", date.Add(-5 * time.Hour), true},
		{"one second before deadline", date.Add(-2*time.Hour - time.Second), true},
		{"exactly at deadline", date.Add(-2 * time.Hour), false},
		{"one second past deadline", date.Add(-2*time.Hour + time.Second), false},
		{"after appointment", date.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appt.IsCancelable(tt.now))
		})
	}
}

func TestAppointment_IsCancelable_Canceled(t *testing.T) {
	date := time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC)
	canceledAt := date.Add(-10 * time.Hour)
	appt := &Appointment{Date: date, CanceledAt: &canceledAt}

	assert.False(t, appt.IsCancelable(date.Add(-5*time.Hour)))
}
