package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	Date     string     `json:"date" validate:"required"`
	Time     string     `json:"time" validate:"required"`
	Reason   string     `json:"reason" validate:"required,min=3"`
	Priority string     `json:"priority" validate:"omitempty,oneof=normal high urgent"`
}

type CreateWalkInRequest struct {
	PatientID uuid.UUID  `json:"patient_id" validate:"required"`
	DoctorID  *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	Reason    string     `json:"reason" validate:"required,min=3"`
	Priority  string     `json:"priority" validate:"omitempty,oneof=normal high urgent"`
}

type AssignAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"omitempty"`
	Time     string    `json:"time" validate:"omitempty"`
	Notes    string    `json:"notes" validate:"omitempty"`
}

type RejectAppointmentRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// ConfirmWalkInRequest lets clinical staff attach a doctor while
// confirming a waiting walk-in.
type ConfirmWalkInRequest struct {
	DoctorID *uuid.UUID `json:"doctor_id" validate:"omitempty"`
}

type ConfirmAppointmentRequest struct {
	Method        string `json:"method" validate:"omitempty,oneof=in_person phone online"`
	CustomMessage string `json:"custom_message" validate:"omitempty"`
}

type CancelAppointmentRequest struct {
	Reason              string `json:"reason" validate:"omitempty"`
	RequestReassignment bool   `json:"request_reassignment"`
}

type UpdateAppointmentStatusRequest struct {
	Status           string                   `json:"status" validate:"required,oneof=in_progress completed"`
	CompletionReport *CompletionReportPayload `json:"completion_report" validate:"omitempty"`
}

// CompletionReportPayload is the structured close-out a doctor submits
// when completing an appointment.
type CompletionReportPayload struct {
	Diagnosis             string `json:"diagnosis" validate:"required,min=3"`
	Treatment             string `json:"treatment" validate:"required,min=3"`
	Notes                 string `json:"notes" validate:"omitempty"`
	MedicationsPrescribed string `json:"medications_prescribed" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                uuid.UUID  `json:"id"`
	PatientID         uuid.UUID  `json:"patient_id"`
	PatientName       string     `json:"patient_name,omitempty"`
	DoctorID          *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorName        string     `json:"doctor_name,omitempty"`
	Date              string     `json:"date"`
	Time              string     `json:"time"`
	DurationMinutes   int        `json:"duration_minutes"`
	Type              string     `json:"type"`
	Reason            string     `json:"reason,omitempty"`
	Priority          string     `json:"priority"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	NeedsReassignment bool       `json:"needs_reassignment"`
	AssignedAt        *time.Time `json:"assigned_at,omitempty"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	RejectedAt        *time.Time `json:"rejected_at,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// UpdateStatusResponse reports the transition outcome plus whether the
// completion side effects were created.
type UpdateStatusResponse struct {
	Appointment          *AppointmentResponse `json:"appointment"`
	MedicalRecordCreated bool                 `json:"medical_record_created"`
	PrescriptionCreated  bool                 `json:"prescription_created"`
}

// BlockedAppointmentsResponse is the 423 payload carrying the blocking set.
type BlockedAppointmentsResponse struct {
	Message              string                `json:"message"`
	BlockingAppointments []AppointmentResponse `json:"blocking_appointments"`
}

// AttendanceDeniedResponse is the 403 payload for an attendance-gate denial.
type AttendanceDeniedResponse struct {
	Message       string     `json:"message"`
	CanAttendFrom *time.Time `json:"can_attend_from,omitempty"`
}
