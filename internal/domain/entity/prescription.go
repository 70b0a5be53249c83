package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrescriptionStatus represents the status of a prescription
type PrescriptionStatus string

const (
	PrescriptionStatusActive    PrescriptionStatus = "active"
	PrescriptionStatusCompleted PrescriptionStatus = "completed"
	PrescriptionStatusCancelled PrescriptionStatus = "cancelled"
)

// Prescription is the header record owning a set of medication line items.
// Created as a side effect of completing an appointment, or directly by a doctor.
type Prescription struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentID *uuid.UUID         `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Status        PrescriptionStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	Notes         string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient     PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Medications []Medication   `gorm:"foreignKey:PrescriptionID" json:"medications,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// Medication is a single line item of a prescription.
type Medication struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PrescriptionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"prescription_id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Dosage         string     `gorm:"type:varchar(100);not null" json:"dosage"`
	Instructions   string     `gorm:"type:text;not null" json:"instructions"`
	Frequency      string     `gorm:"type:varchar(100)" json:"frequency,omitempty"`
	StartDate      time.Time  `gorm:"type:date" json:"start_date"`
	EndDate        *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Medication) TableName() string {
	return "medications"
}
