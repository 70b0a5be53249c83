package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type MedicationItemRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Dosage       string `json:"dosage" validate:"omitempty,max=100"`
	Instructions string `json:"instructions" validate:"omitempty"`
	Frequency    string `json:"frequency" validate:"omitempty,max=100"`
	Days         int    `json:"days" validate:"omitempty,gte=1,lte=365"`
}

type CreatePrescriptionRequest struct {
	PatientID     uuid.UUID               `json:"patient_id" validate:"required"`
	AppointmentID *uuid.UUID              `json:"appointment_id" validate:"omitempty"`
	Notes         string                  `json:"notes" validate:"omitempty"`
	Medications   []MedicationItemRequest `json:"medications" validate:"required,min=1,dive"`
}

type UpdatePrescriptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active completed cancelled"`
}

// Response DTOs

type MedicationResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Dosage       string     `json:"dosage"`
	Instructions string     `json:"instructions"`
	Frequency    string     `json:"frequency,omitempty"`
	StartDate    string     `json:"start_date"`
	EndDate      *string    `json:"end_date,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID            `json:"id"`
	PatientID     uuid.UUID            `json:"patient_id"`
	PatientName   string               `json:"patient_name,omitempty"`
	DoctorID      uuid.UUID            `json:"doctor_id"`
	DoctorName    string               `json:"doctor_name,omitempty"`
	AppointmentID *uuid.UUID           `json:"appointment_id,omitempty"`
	Status        string               `json:"status"`
	Notes         string               `json:"notes,omitempty"`
	Medications   []MedicationResponse `json:"medications"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
