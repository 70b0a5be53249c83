package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusUnderReview AppointmentStatus = "under_review"
	AppointmentStatusAssigned    AppointmentStatus = "assigned"
	AppointmentStatusScheduled   AppointmentStatus = "scheduled"
	AppointmentStatusWaiting     AppointmentStatus = "waiting"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusInProgress  AppointmentStatus = "in_progress"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusRejected    AppointmentStatus = "rejected"
)

// AppointmentPriority is the ordinal triage classification.
type AppointmentPriority string

const (
	PriorityNormal AppointmentPriority = "normal"
	PriorityHigh   AppointmentPriority = "high"
	PriorityUrgent AppointmentPriority = "urgent"
)

// PriorityLevel maps a priority to its ordinal level (urgent=3 > high=2 > normal=1).
// Unknown values rank as normal.
func PriorityLevel(p AppointmentPriority) int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	default:
		return 1
	}
}

// Appointment type constants
const (
	AppointmentTypeConsultation    = "consultation"
	AppointmentTypeWalkIn          = "walk_in"
	AppointmentTypeStudentRequest  = "student_request"
	AppointmentTypeApprovedRequest = "approved_request"
)

// allowedTransitions is the legal status transition table.
// Terminal statuses (completed, cancelled, rejected) have no outgoing edges.
// scheduled -> pending covers a doctor cancelling with a reassignment request.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:     {AppointmentStatusUnderReview, AppointmentStatusAssigned, AppointmentStatusRejected, AppointmentStatusCancelled},
	AppointmentStatusUnderReview: {AppointmentStatusAssigned, AppointmentStatusRejected, AppointmentStatusCancelled},
	AppointmentStatusAssigned:    {AppointmentStatusScheduled, AppointmentStatusCancelled},
	AppointmentStatusScheduled:   {AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusPending},
	AppointmentStatusWaiting:     {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed:   {AppointmentStatusInProgress, AppointmentStatusCompleted, AppointmentStatusCancelled},
	AppointmentStatusInProgress:  {AppointmentStatusCompleted},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ActiveStatuses are statuses that occupy a slot and count toward the
// one-active-appointment-per-patient-per-day rule.
func ActiveStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
	}
}

// BookedStatuses are statuses that occupy a doctor's time slot on the
// availability grid.
func BookedStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
	}
}

// OutstandingStatuses are statuses still awaiting triage, used by the
// priority blocking checker.
func OutstandingStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusUnderReview,
		AppointmentStatusWaiting,
	}
}

// Appointment represents a clinic appointment request through its whole
// lifecycle, from patient request (or staff walk-in) to completion.
type Appointment struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID          *uuid.UUID          `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	Date              time.Time           `gorm:"type:date;not null;index" json:"date"`
	Time              string              `gorm:"type:time;not null" json:"time"`
	DurationMinutes   int                 `gorm:"not null;default:30" json:"duration_minutes"`
	Type              string              `gorm:"type:varchar(30);not null;default:'consultation'" json:"type"`
	Reason            string              `gorm:"type:text" json:"reason,omitempty"`
	Priority          AppointmentPriority `gorm:"type:varchar(10);not null;default:'normal';index" json:"priority"`
	Status            AppointmentStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes             string              `gorm:"type:text" json:"notes,omitempty"`
	NeedsReassignment bool                `gorm:"not null;default:false" json:"needs_reassignment"`
	CompletionReport  JSON                `gorm:"type:jsonb" json:"completion_report,omitempty"`

	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal reports whether the appointment reached a final status.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusRejected:
		return true
	}
	return false
}

// IsWalkIn reports whether the appointment was created in person by
// clinical staff. Walk-ins bypass the wall-clock attendance gate.
func (a *Appointment) IsWalkIn() bool {
	return a.Type == AppointmentTypeWalkIn
}

// ScheduledAt combines the calendar date and the HH:MM slot time.
// A malformed time column falls back to midnight of the date.
func (a *Appointment) ScheduledAt() time.Time {
	t, err := time.Parse("15:04", a.Time)
	if err != nil {
		// time columns scan back as HH:MM:SS
		t, err = time.Parse("15:04:05", a.Time)
		if err != nil {
			return a.Date
		}
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), t.Hour(), t.Minute(), 0, 0, a.Date.Location())
}

// EndsAt returns the exclusive end of the appointment interval.
func (a *Appointment) EndsAt() time.Time {
	d := a.DurationMinutes
	if d <= 0 {
		d = 30
	}
	return a.ScheduledAt().Add(time.Duration(d) * time.Minute)
}
