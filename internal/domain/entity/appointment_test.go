package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pending to under_review", AppointmentStatusPending, AppointmentStatusUnderReview, true},
		{"pending directly to assigned", AppointmentStatusPending, AppointmentStatusAssigned, true},
		{"pending to rejected", AppointmentStatusPending, AppointmentStatusRejected, true},
		{"pending to confirmed skips triage", AppointmentStatusPending, AppointmentStatusConfirmed, false},
		{"under_review to assigned", AppointmentStatusUnderReview, AppointmentStatusAssigned, true},
		{"assigned to scheduled", AppointmentStatusAssigned, AppointmentStatusScheduled, true},
		{"assigned to confirmed skips approval", AppointmentStatusAssigned, AppointmentStatusConfirmed, false},
		{"scheduled to confirmed", AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{"scheduled back to pending on reassignment", AppointmentStatusScheduled, AppointmentStatusPending, true},
		{"waiting to confirmed", AppointmentStatusWaiting, AppointmentStatusConfirmed, true},
		{"waiting to assigned", AppointmentStatusWaiting, AppointmentStatusAssigned, false},
		{"confirmed to in_progress", AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{"confirmed straight to completed", AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{"in_progress to completed", AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{"in_progress to cancelled", AppointmentStatusInProgress, AppointmentStatusCancelled, false},
		{"completed is terminal", AppointmentStatusCompleted, AppointmentStatusPending, false},
		{"cancelled is terminal", AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{"rejected is terminal", AppointmentStatusRejected, AppointmentStatusUnderReview, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestPriorityLevel(t *testing.T) {
	assert.Equal(t, 3, PriorityLevel(PriorityUrgent))
	assert.Equal(t, 2, PriorityLevel(PriorityHigh))
	assert.Equal(t, 1, PriorityLevel(PriorityNormal))
	assert.Equal(t, 1, PriorityLevel(AppointmentPriority("bogus")))
}

func TestIsTerminal(t *testing.T) {
	for _, status := range []AppointmentStatus{
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusRejected,
	} {
		apt := &Appointment{Status: status}
		assert.True(t, apt.IsTerminal(), "status %s", status)
	}

	apt := &Appointment{Status: AppointmentStatusConfirmed}
	assert.False(t, apt.IsTerminal())
}

func TestScheduledAt(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	apt := &Appointment{Date: date, Time: "14:30"}
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), apt.ScheduledAt())

	// time columns scan back as HH:MM:SS
	apt = &Appointment{Date: date, Time: "09:00:00"}
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), apt.ScheduledAt())

	// malformed time falls back to midnight
	apt = &Appointment{Date: date, Time: "not a time"}
	assert.Equal(t, date, apt.ScheduledAt())
}

func TestEndsAt(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	apt := &Appointment{Date: date, Time: "14:30", DurationMinutes: 60}
	assert.Equal(t, time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC), apt.EndsAt())

	// zero duration defaults to one slot
	apt = &Appointment{Date: date, Time: "14:30"}
	assert.Equal(t, time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC), apt.EndsAt())
}
