package repository

import (
	"university-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.StaffSchedule) error
	FindByID(db *gorm.DB, id int) (*entity.StaffSchedule, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.StaffSchedule, error)
	FindByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday int) (*entity.StaffSchedule, error)
	FindAll(db *gorm.DB) ([]entity.StaffSchedule, error)
	Update(db *gorm.DB, schedule *entity.StaffSchedule) error
	Delete(db *gorm.DB, id int) (int64, error)
}
