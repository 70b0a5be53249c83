package repository

import (
	"time"

	"university-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AcademicHolidayRepository interface {
	Create(db *gorm.DB, holiday *entity.AcademicHoliday) error
	FindByID(db *gorm.DB, id int) (*entity.AcademicHoliday, error)
	FindAll(db *gorm.DB) ([]entity.AcademicHoliday, error)
	FindCoveringDate(db *gorm.DB, date time.Time) ([]entity.AcademicHoliday, error)
	Update(db *gorm.DB, holiday *entity.AcademicHoliday) error
	Delete(db *gorm.DB, id int) (int64, error)
}
