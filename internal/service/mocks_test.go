package service

import (
	"time"

	"university-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *mockAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(db, id)
	if apt := args.Get(0); apt != nil {
		return apt.(*entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) FindByFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(db, filter)
	if apts := args.Get(0); apts != nil {
		return apts.([]entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *mockAppointmentRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAppointmentRepo) CountActiveByPatientAndDate(db *gorm.DB, patientID uuid.UUID, date time.Time) (int64, error) {
	args := m.Called(db, patientID, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAppointmentRepo) FindOutstandingAbovePriority(db *gorm.DB, excludeID uuid.UUID, level int) ([]entity.Appointment, error) {
	args := m.Called(db, excludeID, level)
	if apts := args.Get(0); apts != nil {
		return apts.([]entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) FindBookedByDoctorAndDate(db *gorm.DB, doctorID *uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	args := m.Called(db, doctorID, date)
	if apts := args.Get(0); apts != nil {
		return apts.([]entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) FindLatestActiveByDoctorAndPatient(db *gorm.DB, doctorID, patientID uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(db, doctorID, patientID)
	if apt := args.Get(0); apt != nil {
		return apt.(*entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) Create(db *gorm.DB, schedule *entity.StaffSchedule) error {
	args := m.Called(db, schedule)
	return args.Error(0)
}

func (m *mockScheduleRepo) FindByID(db *gorm.DB, id int) (*entity.StaffSchedule, error) {
	args := m.Called(db, id)
	if s := args.Get(0); s != nil {
		return s.(*entity.StaffSchedule), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScheduleRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.StaffSchedule, error) {
	args := m.Called(db, doctorID)
	if s := args.Get(0); s != nil {
		return s.([]entity.StaffSchedule), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScheduleRepo) FindByDoctorAndWeekday(db *gorm.DB, doctorID uuid.UUID, weekday int) (*entity.StaffSchedule, error) {
	args := m.Called(db, doctorID, weekday)
	if s := args.Get(0); s != nil {
		return s.(*entity.StaffSchedule), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScheduleRepo) FindAll(db *gorm.DB) ([]entity.StaffSchedule, error) {
	args := m.Called(db)
	if s := args.Get(0); s != nil {
		return s.([]entity.StaffSchedule), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScheduleRepo) Update(db *gorm.DB, schedule *entity.StaffSchedule) error {
	args := m.Called(db, schedule)
	return args.Error(0)
}

func (m *mockScheduleRepo) Delete(db *gorm.DB, id int) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockHolidayRepo struct {
	mock.Mock
}

func (m *mockHolidayRepo) Create(db *gorm.DB, holiday *entity.AcademicHoliday) error {
	args := m.Called(db, holiday)
	return args.Error(0)
}

func (m *mockHolidayRepo) FindByID(db *gorm.DB, id int) (*entity.AcademicHoliday, error) {
	args := m.Called(db, id)
	if h := args.Get(0); h != nil {
		return h.(*entity.AcademicHoliday), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHolidayRepo) FindAll(db *gorm.DB) ([]entity.AcademicHoliday, error) {
	args := m.Called(db)
	if h := args.Get(0); h != nil {
		return h.([]entity.AcademicHoliday), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHolidayRepo) FindCoveringDate(db *gorm.DB, date time.Time) ([]entity.AcademicHoliday, error) {
	args := m.Called(db, date)
	if h := args.Get(0); h != nil {
		return h.([]entity.AcademicHoliday), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHolidayRepo) Update(db *gorm.DB, holiday *entity.AcademicHoliday) error {
	args := m.Called(db, holiday)
	return args.Error(0)
}

func (m *mockHolidayRepo) Delete(db *gorm.DB, id int) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockDoctorProfileRepo struct {
	mock.Mock
}

func (m *mockDoctorProfileRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *mockDoctorProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	args := m.Called(db, userID)
	if p := args.Get(0); p != nil {
		return p.(*entity.DoctorProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorProfileRepo) FindAllActive(db *gorm.DB) ([]entity.DoctorProfile, error) {
	args := m.Called(db)
	if p := args.Get(0); p != nil {
		return p.([]entity.DoctorProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDoctorProfileRepo) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}
