package repository

import (
	"time"

	"university-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)

	// CountActiveByPatientAndDate enforces the one-active-appointment-per-
	// patient-per-day rule at creation time.
	CountActiveByPatientAndDate(db *gorm.DB, patientID uuid.UUID, date time.Time) (int64, error)

	// FindOutstandingAbovePriority returns outstanding appointments (pending,
	// under_review, waiting) whose priority level is strictly greater than
	// the given level, highest priority first.
	FindOutstandingAbovePriority(db *gorm.DB, excludeID uuid.UUID, level int) ([]entity.Appointment, error)

	// FindBookedByDoctorAndDate returns slot-occupying appointments for one
	// doctor on a date. A nil doctorID aggregates across all doctors.
	FindBookedByDoctorAndDate(db *gorm.DB, doctorID *uuid.UUID, date time.Time) ([]entity.Appointment, error)

	// FindLatestActiveByDoctorAndPatient returns the most recent
	// non-terminal appointment between the pair, or nil.
	FindLatestActiveByDoctorAndPatient(db *gorm.DB, doctorID, patientID uuid.UUID) (*entity.Appointment, error)
}
