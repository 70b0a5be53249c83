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

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func scheduledAppointment(date time.Time, slot string) *entity.Appointment {
	return &entity.Appointment{
		ID:       uuid.New(),
		Date:     date,
		Time:     slot,
		Type:     entity.AppointmentTypeConsultation,
		Priority: entity.PriorityNormal,
		Status:   entity.AppointmentStatusScheduled,
	}
}

func TestAttendanceTooEarly(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	apt := scheduledAppointment(date, "10:00")

	// 20 minutes before the slot, 5 minutes outside the grace window
	now := time.Date(2025, 3, 10, 9, 40, 0, 0, time.UTC)
	svc := NewAttendanceService(logrus.New(), new(mockAppointmentRepo)).WithClock(fixedClock(now))

	decision := svc.Evaluate(apt)

	assert.False(t, decision.Allowed)
	assert.Equal(t, AttendanceReasonTooEarly, decision.Reason)
	if assert.NotNil(t, decision.CanAttendFrom) {
		assert.Equal(t, time.Date(2025, 3, 10, 9, 45, 0, 0, time.UTC), *decision.CanAttendFrom)
	}
}

func TestAttendanceWithinGraceWindow(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	apt := scheduledAppointment(date, "10:00")

	// 10 minutes before the slot, inside the 15-minute grace window
	now := time.Date(2025, 3, 10, 9, 50, 0, 0, time.UTC)
	svc := NewAttendanceService(logrus.New(), new(mockAppointmentRepo)).WithClock(fixedClock(now))

	decision := svc.Evaluate(apt)

	assert.True(t, decision.Allowed)
	assert.Nil(t, decision.CanAttendFrom)
}

func TestAttendanceAfterScheduledTime(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	apt := scheduledAppointment(date, "10:00")

	now := time.Date(2025, 3, 10, 11, 30, 0, 0, time.UTC)
	svc := NewAttendanceService(logrus.New(), new(mockAppointmentRepo)).WithClock(fixedClock(now))

	assert.True(t, svc.Evaluate(apt).Allowed)
}

func TestAttendanceWalkInGatedOnConfirmation(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	apt := &entity.Appointment{
		ID:       uuid.New(),
		Date:     date,
		Time:     "23:30",
		Type:     entity.AppointmentTypeWalkIn,
		Priority: entity.PriorityNormal,
		Status:   entity.AppointmentStatusWaiting,
	}

	// hours before the nominal slot time: irrelevant for walk-ins
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := NewAttendanceService(logrus.New(), new(mockAppointmentRepo)).WithClock(fixedClock(now))

	decision := svc.Evaluate(apt)
	assert.False(t, decision.Allowed)
	assert.Equal(t, AttendanceReasonNotConfirmed, decision.Reason)

	apt.Status = entity.AppointmentStatusConfirmed
	assert.True(t, svc.Evaluate(apt).Allowed)
}

func TestAttendanceUrgentBypassesClock(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	apt := scheduledAppointment(date, "16:00")
	apt.Priority = entity.PriorityUrgent
	apt.Status = entity.AppointmentStatusConfirmed

	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := NewAttendanceService(logrus.New(), new(mockAppointmentRepo)).WithClock(fixedClock(now))

	assert.True(t, svc.Evaluate(apt).Allowed)
}

func TestCanAttendNoActiveAppointment(t *testing.T) {
	repo := new(mockAppointmentRepo)
	svc := NewAttendanceService(logrus.New(), repo)

	doctorID, patientID := uuid.New(), uuid.New()
	repo.On("FindLatestActiveByDoctorAndPatient", mock.Anything, doctorID, patientID).Return(nil, nil)

	decision, err := svc.CanAttend(nil, doctorID, patientID)

	assert.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, AttendanceReasonNoAppointment, decision.Reason)
}

func TestCanAttendEvaluatesFoundAppointment(t *testing.T) {
	repo := new(mockAppointmentRepo)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	apt := scheduledAppointment(date, "10:00")
	now := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	svc := NewAttendanceService(logrus.New(), repo).WithClock(fixedClock(now))

	doctorID, patientID := uuid.New(), uuid.New()
	repo.On("FindLatestActiveByDoctorAndPatient", mock.Anything, doctorID, patientID).Return(apt, nil)

	decision, err := svc.CanAttend(nil, doctorID, patientID)

	assert.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, apt, decision.Appointment)
}
