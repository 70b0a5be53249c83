package service

import (
	"testing"
	"time"

	"university-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAvailabilityFixture() (*AvailabilityService, *mockAppointmentRepo, *mockScheduleRepo, *mockHolidayRepo, *mockDoctorProfileRepo) {
	appointments := new(mockAppointmentRepo)
	schedules := new(mockScheduleRepo)
	holidays := new(mockHolidayRepo)
	doctors := new(mockDoctorProfileRepo)
	svc := NewAvailabilityService(logrus.New(), appointments, schedules, holidays, doctors)
	return svc, appointments, schedules, holidays, doctors
}

func TestBuildSlotGrid(t *testing.T) {
	grid, err := buildSlotGrid("09:00", "17:00")

	assert.NoError(t, err)
	assert.Len(t, grid, 16)
	assert.Equal(t, "09:00", grid[0])
	assert.Equal(t, "09:30", grid[1])
	assert.Equal(t, "16:30", grid[15])
}

func TestBuildSlotGridInvalidWindow(t *testing.T) {
	_, err := buildSlotGrid("17:00", "09:00")
	assert.Error(t, err)

	_, err = buildSlotGrid("not a time", "17:00")
	assert.Error(t, err)
}

func TestResolveDefaultGridWhenNoSchedule(t *testing.T) {
	svc, appointments, schedules, holidays, _ := newAvailabilityFixture()

	doctorID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	holidays.On("FindCoveringDate", mock.Anything, date).Return([]entity.AcademicHoliday{}, nil)
	schedules.On("FindByDoctorAndWeekday", mock.Anything, doctorID, int(date.Weekday())).Return(nil, nil)
	appointments.On("FindBookedByDoctorAndDate", mock.Anything, &doctorID, date).Return([]entity.Appointment{}, nil)

	grid, err := svc.Resolve(nil, &doctorID, date)

	assert.NoError(t, err)
	assert.Len(t, grid.AvailableSlots, 16)
	assert.Empty(t, grid.BookedSlots)
}

func TestResolveMarksBookedSlots(t *testing.T) {
	svc, appointments, schedules, holidays, _ := newAvailabilityFixture()

	doctorID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	booked := []entity.Appointment{
		{ID: uuid.New(), Date: date, Time: "10:00", DurationMinutes: 30, Status: entity.AppointmentStatusConfirmed},
		{ID: uuid.New(), Date: date, Time: "14:30:00", DurationMinutes: 30, Status: entity.AppointmentStatusScheduled},
	}

	holidays.On("FindCoveringDate", mock.Anything, date).Return([]entity.AcademicHoliday{}, nil)
	schedules.On("FindByDoctorAndWeekday", mock.Anything, doctorID, int(date.Weekday())).Return(nil, nil)
	appointments.On("FindBookedByDoctorAndDate", mock.Anything, &doctorID, date).Return(booked, nil)

	grid, err := svc.Resolve(nil, &doctorID, date)

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"10:00", "14:30"}, grid.BookedSlots)
	assert.Len(t, grid.AvailableSlots, 14)
	assert.NotContains(t, grid.AvailableSlots, "10:00")
	assert.NotContains(t, grid.AvailableSlots, "14:30")
}

func TestResolveLongAppointmentBlocksMultipleSlots(t *testing.T) {
	svc, appointments, schedules, holidays, _ := newAvailabilityFixture()

	doctorID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	booked := []entity.Appointment{
		{ID: uuid.New(), Date: date, Time: "10:00", DurationMinutes: 60, Status: entity.AppointmentStatusConfirmed},
	}

	holidays.On("FindCoveringDate", mock.Anything, date).Return([]entity.AcademicHoliday{}, nil)
	schedules.On("FindByDoctorAndWeekday", mock.Anything, doctorID, int(date.Weekday())).Return(nil, nil)
	appointments.On("FindBookedByDoctorAndDate", mock.Anything, &doctorID, date).Return(booked, nil)

	grid, err := svc.Resolve(nil, &doctorID, date)

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"10:00", "10:30"}, grid.BookedSlots)
}

func TestResolveRespectsWorkingHours(t *testing.T) {
	svc, appointments, schedules, holidays, _ := newAvailabilityFixture()

	doctorID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	schedule := &entity.StaffSchedule{
		DoctorID:  doctorID,
		Weekday:   int(date.Weekday()),
		StartTime: "13:00",
		EndTime:   "15:00",
	}

	holidays.On("FindCoveringDate", mock.Anything, date).Return([]entity.AcademicHoliday{}, nil)
	schedules.On("FindByDoctorAndWeekday", mock.Anything, doctorID, int(date.Weekday())).Return(schedule, nil)
	appointments.On("FindBookedByDoctorAndDate", mock.Anything, &doctorID, date).Return([]entity.Appointment{}, nil)

	grid, err := svc.Resolve(nil, &doctorID, date)

	assert.NoError(t, err)
	assert.Equal(t, []string{"13:00", "13:30", "14:00", "14:30"}, grid.AvailableSlots)
}

func TestResolveBlockingHolidayEmptiesGrid(t *testing.T) {
	svc, _, _, holidays, doctors := newAvailabilityFixture()

	doctorID := uuid.New()
	date := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	covering := []entity.AcademicHoliday{
		{
			Name:       "Semester break",
			StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			StaffType:  entity.StaffTypeAll,
			IsBlocking: true,
		},
	}

	holidays.On("FindCoveringDate", mock.Anything, date).Return(covering, nil)
	doctors.On("FindByUserID", mock.Anything, doctorID).Return(&entity.DoctorProfile{UserID: doctorID}, nil)

	grid, err := svc.Resolve(nil, &doctorID, date)

	assert.NoError(t, err)
	assert.Empty(t, grid.AvailableSlots)
	assert.Empty(t, grid.BookedSlots)
}

func TestResolveNonBlockingHolidayKeepsGrid(t *testing.T) {
	svc, appointments, schedules, holidays, doctors := newAvailabilityFixture()

	doctorID := uuid.New()
	date := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	covering := []entity.AcademicHoliday{
		{
			Name:       "Reading week",
			StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			StaffType:  entity.StaffTypeAll,
			IsBlocking: false,
		},
	}

	holidays.On("FindCoveringDate", mock.Anything, date).Return(covering, nil)
	doctors.On("FindByUserID", mock.Anything, doctorID).Return(&entity.DoctorProfile{UserID: doctorID}, nil)
	schedules.On("FindByDoctorAndWeekday", mock.Anything, doctorID, int(date.Weekday())).Return(nil, nil)
	appointments.On("FindBookedByDoctorAndDate", mock.Anything, &doctorID, date).Return([]entity.Appointment{}, nil)

	grid, err := svc.Resolve(nil, &doctorID, date)

	assert.NoError(t, err)
	assert.Len(t, grid.AvailableSlots, 16)
}

func TestIsSlotFree(t *testing.T) {
	svc, appointments, schedules, holidays, _ := newAvailabilityFixture()

	doctorID := uuid.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	booked := []entity.Appointment{
		{ID: uuid.New(), Date: date, Time: "10:00", DurationMinutes: 30, Status: entity.AppointmentStatusConfirmed},
	}

	holidays.On("FindCoveringDate", mock.Anything, date).Return([]entity.AcademicHoliday{}, nil)
	schedules.On("FindByDoctorAndWeekday", mock.Anything, doctorID, int(date.Weekday())).Return(nil, nil)
	appointments.On("FindBookedByDoctorAndDate", mock.Anything, &doctorID, date).Return(booked, nil)

	free, err := svc.IsSlotFree(nil, &doctorID, date, "10:30")
	assert.NoError(t, err)
	assert.True(t, free)

	free, err = svc.IsSlotFree(nil, &doctorID, date, "10:00")
	assert.NoError(t, err)
	assert.False(t, free)

	// off-grid slot is never free
	free, err = svc.IsSlotFree(nil, &doctorID, date, "08:00")
	assert.NoError(t, err)
	assert.False(t, free)
}
