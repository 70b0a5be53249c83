package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord type constants
const (
	MedicalRecordTypeConsultation = "consultation"
	MedicalRecordTypeVitalSigns   = "vital_signs"
	MedicalRecordTypeNote         = "note"
)

// MedicalRecord is an append-only clinical note for a patient, optionally
// tied to the appointment and doctor that produced it. Records are never
// edited after creation.
type MedicalRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Type          string     `gorm:"type:varchar(30);not null;default:'consultation';index" json:"type"`
	Diagnosis     string     `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment     string     `gorm:"type:text" json:"treatment,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`

	// Typed vital-sign columns, populated when Type == vital_signs
	BloodPressure    string   `gorm:"type:varchar(20)" json:"blood_pressure,omitempty"`
	HeartRate        *int     `json:"heart_rate,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	RespiratoryRate  *int     `json:"respiratory_rate,omitempty"`
	OxygenSaturation *int     `json:"oxygen_saturation,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`
	Height           *float64 `json:"height,omitempty"`
	BMI              *float64 `json:"bmi,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Patient     PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Appointment *Appointment   `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
