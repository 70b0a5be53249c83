package repository

import (
	"errors"
	"time"

	"university-clinic-api/internal/domain/entity"
	domainRepo "university-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient.User").Preload("Doctor.User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient.User").Preload("Doctor.User")

	if filter != nil {
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.Date != "" {
			query = query.Where("date = ?", filter.Date)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Priority != "" {
			query = query.Where("priority = ?", filter.Priority)
		}
		if filter.Type != "" {
			query = query.Where("type = ?", filter.Type)
		}
	}

	err := query.Order("date DESC, time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountActiveByPatientAndDate(db *gorm.DB, patientID uuid.UUID, date time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("patient_id = ? AND date = ? AND status IN ?", patientID, date.Format("2006-01-02"), entity.ActiveStatuses()).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) FindOutstandingAbovePriority(db *gorm.DB, excludeID uuid.UUID, level int) ([]entity.Appointment, error) {
	higher := prioritiesAbove(level)
	if len(higher) == 0 {
		return nil, nil
	}

	var appointments []entity.Appointment
	query := db.Preload("Patient.User").
		Where("status IN ?", entity.OutstandingStatuses()).
		Where("priority IN ?", higher)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	err := query.
		Order("CASE priority WHEN 'urgent' THEN 3 WHEN 'high' THEN 2 ELSE 1 END DESC, created_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// prioritiesAbove returns the priorities strictly greater than the given
// ordinal level. Urgent has nothing above it.
func prioritiesAbove(level int) []entity.AppointmentPriority {
	var out []entity.AppointmentPriority
	for _, p := range []entity.AppointmentPriority{entity.PriorityHigh, entity.PriorityUrgent} {
		if entity.PriorityLevel(p) > level {
			out = append(out, p)
		}
	}
	return out
}

func (r *appointmentRepository) FindBookedByDoctorAndDate(db *gorm.DB, doctorID *uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.
		Where("date = ? AND status IN ?", date.Format("2006-01-02"), entity.BookedStatuses())
	if doctorID != nil {
		query = query.Where("doctor_id = ?", *doctorID)
	} else {
		query = query.Where("doctor_id IS NOT NULL")
	}

	err := query.Order("time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindLatestActiveByDoctorAndPatient(db *gorm.DB, doctorID, patientID uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Where("status NOT IN ?", []entity.AppointmentStatus{
			entity.AppointmentStatusCompleted,
			entity.AppointmentStatusCancelled,
			entity.AppointmentStatusRejected,
		}).
		Order("date DESC, time DESC").
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}
