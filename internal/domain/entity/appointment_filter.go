package entity

import "github.com/google/uuid"

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Date      string // Format: YYYY-MM-DD
	Status    AppointmentStatus
	Priority  AppointmentPriority
	Type      string
}
