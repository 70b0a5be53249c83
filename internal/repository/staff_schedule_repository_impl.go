package repository

import (
	"errors"

	"university-clinic-api/internal/domain/entity"
	domainRepo "university-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type staffScheduleRepository struct{}

func NewStaffScheduleRepository() domainRepo.StaffScheduleRepository {
	return &staffScheduleRepository{}
}

func (r *staffScheduleRepository) Create(db *gorm.DB, schedule *entity.StaffSchedule) error {
	return db.Create(schedule).Error
}

func (r *staffScheduleRepository) FindByID(db *gorm.DB, id int) (*entity.StaffSchedule, error) {
	var schedule entity.StaffSchedule
	err := db.Preload("Doctor.User").Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *staffScheduleRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.StaffSchedule, error) {
	var schedules []entity.StaffSchedule
	err := db.Where("doctor_id = ?", doctorID).Order("weekday ASC, start_time ASC").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *staffScheduleRepository) FindByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday int) (*entity.StaffSchedule, error) {
	var schedule entity.StaffSchedule
	err := db.Where("doctor_id = ? AND weekday = ? AND is_active = ?", doctorID, weekday, true).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *staffScheduleRepository) FindAll(db *gorm.DB) ([]entity.StaffSchedule, error) {
	var schedules []entity.StaffSchedule
	err := db.Preload("Doctor.User").Order("doctor_id ASC, weekday ASC").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *staffScheduleRepository) Update(db *gorm.DB, schedule *entity.StaffSchedule) error {
	return db.Save(schedule).Error
}

func (r *staffScheduleRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.StaffSchedule{})
	return result.RowsAffected, result.Error
}
