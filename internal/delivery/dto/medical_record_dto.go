package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicalRecordRequest struct {
	PatientID     uuid.UUID  `json:"patient_id" validate:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id" validate:"omitempty"`
	Type          string     `json:"type" validate:"omitempty,oneof=consultation vital_signs note"`
	Diagnosis     string     `json:"diagnosis" validate:"omitempty"`
	Treatment     string     `json:"treatment" validate:"omitempty"`
	Notes         string     `json:"notes" validate:"omitempty"`

	// Vital signs, meaningful when type == vital_signs
	BloodPressure    string   `json:"blood_pressure" validate:"omitempty,max=20"`
	HeartRate        *int     `json:"heart_rate" validate:"omitempty,gte=0,lte=300"`
	Temperature      *float64 `json:"temperature" validate:"omitempty,gte=25,lte=45"`
	RespiratoryRate  *int     `json:"respiratory_rate" validate:"omitempty,gte=0,lte=100"`
	OxygenSaturation *int     `json:"oxygen_saturation" validate:"omitempty,gte=0,lte=100"`
	Weight           *float64 `json:"weight" validate:"omitempty,gt=0"`
	Height           *float64 `json:"height" validate:"omitempty,gt=0"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID            uuid.UUID  `json:"id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	DoctorID      *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorName    string     `json:"doctor_name,omitempty"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	Type          string     `json:"type"`
	Diagnosis     string     `json:"diagnosis,omitempty"`
	Treatment     string     `json:"treatment,omitempty"`
	Notes         string     `json:"notes,omitempty"`

	BloodPressure    string   `json:"blood_pressure,omitempty"`
	HeartRate        *int     `json:"heart_rate,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	RespiratoryRate  *int     `json:"respiratory_rate,omitempty"`
	OxygenSaturation *int     `json:"oxygen_saturation,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`
	Height           *float64 `json:"height,omitempty"`
	BMI              *float64 `json:"bmi,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
