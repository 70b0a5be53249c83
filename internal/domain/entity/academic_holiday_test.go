package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHolidayCovers(t *testing.T) {
	holiday := &AcademicHoliday{
		Name:       "Semester break",
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		StaffType:  StaffTypeAll,
		IsBlocking: true,
	}

	inside := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	assert.True(t, holiday.Covers(inside, StaffTypeStudent, ""))
	assert.True(t, holiday.Covers(holiday.StartDate, StaffTypeClinical, ""))
	assert.True(t, holiday.Covers(holiday.EndDate, StaffTypeAcademic, ""))
	assert.False(t, holiday.Covers(outside, StaffTypeStudent, ""))
}

func TestHolidayCoversStaffType(t *testing.T) {
	holiday := &AcademicHoliday{
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		StaffType:  StaffTypeStudent,
		IsBlocking: true,
	}

	day := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	assert.True(t, holiday.Covers(day, StaffTypeStudent, ""))
	assert.False(t, holiday.Covers(day, StaffTypeClinical, ""))
}

func TestHolidayCoversDepartment(t *testing.T) {
	holiday := &AcademicHoliday{
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		StaffType:  StaffTypeAll,
		Department: "Engineering",
		IsBlocking: true,
	}

	day := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	assert.True(t, holiday.Covers(day, StaffTypeStudent, "Engineering"))
	assert.False(t, holiday.Covers(day, StaffTypeStudent, "Medicine"))

	// unknown caller department cannot be excluded
	assert.True(t, holiday.Covers(day, StaffTypeStudent, ""))
}

func TestHolidayNotBlocking(t *testing.T) {
	holiday := &AcademicHoliday{
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		StaffType:  StaffTypeAll,
		IsBlocking: false,
	}

	day := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	assert.False(t, holiday.Covers(day, StaffTypeStudent, ""))
}
