package repository

import (
	"errors"
	"time"

	"university-clinic-api/internal/domain/entity"
	domainRepo "university-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type academicHolidayRepository struct{}

func NewAcademicHolidayRepository() domainRepo.AcademicHolidayRepository {
	return &academicHolidayRepository{}
}

func (r *academicHolidayRepository) Create(db *gorm.DB, holiday *entity.AcademicHoliday) error {
	return db.Create(holiday).Error
}

func (r *academicHolidayRepository) FindByID(db *gorm.DB, id int) (*entity.AcademicHoliday, error) {
	var holiday entity.AcademicHoliday
	err := db.Where("id = ?", id).First(&holiday).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &holiday, nil
}

func (r *academicHolidayRepository) FindAll(db *gorm.DB) ([]entity.AcademicHoliday, error) {
	var holidays []entity.AcademicHoliday
	err := db.Order("start_date ASC").Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *academicHolidayRepository) FindCoveringDate(db *gorm.DB, date time.Time) ([]entity.AcademicHoliday, error) {
	var holidays []entity.AcademicHoliday
	day := date.Format("2006-01-02")
	err := db.Where("start_date <= ? AND end_date >= ?", day, day).Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *academicHolidayRepository) Update(db *gorm.DB, holiday *entity.AcademicHoliday) error {
	return db.Save(holiday).Error
}

func (r *academicHolidayRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.AcademicHoliday{})
	return result.RowsAffected, result.Error
}
