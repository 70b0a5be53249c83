package service

import (
	"errors"
	"testing"

	"university-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPriorityGateUrgentNeverBlocked(t *testing.T) {
	repo := new(mockAppointmentRepo)
	gate := NewPriorityGateService(logrus.New(), repo)

	err := gate.Check(nil, uuid.New(), entity.PriorityUrgent)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "FindOutstandingAbovePriority", mock.Anything, mock.Anything, mock.Anything)
}

func TestPriorityGateHighBlockedByUrgent(t *testing.T) {
	repo := new(mockAppointmentRepo)
	gate := NewPriorityGateService(logrus.New(), repo)

	id := uuid.New()
	blocking := []entity.Appointment{
		{ID: uuid.New(), Priority: entity.PriorityUrgent, Status: entity.AppointmentStatusPending},
	}
	repo.On("FindOutstandingAbovePriority", mock.Anything, id, 2).Return(blocking, nil)

	err := gate.Check(nil, id, entity.PriorityHigh)

	var blocked *BlockedError
	assert.ErrorAs(t, err, &blocked)
	assert.Len(t, blocked.Blocking, 1)
}

func TestPriorityGateNormalPassesWhenNothingOutstanding(t *testing.T) {
	repo := new(mockAppointmentRepo)
	gate := NewPriorityGateService(logrus.New(), repo)

	id := uuid.New()
	repo.On("FindOutstandingAbovePriority", mock.Anything, id, 1).Return([]entity.Appointment{}, nil)

	assert.NoError(t, gate.Check(nil, id, entity.PriorityNormal))
}

func TestPriorityGateRepoError(t *testing.T) {
	repo := new(mockAppointmentRepo)
	gate := NewPriorityGateService(logrus.New(), repo)

	id := uuid.New()
	repo.On("FindOutstandingAbovePriority", mock.Anything, id, 1).Return(nil, errors.New("db down"))

	err := gate.Check(nil, id, entity.PriorityNormal)

	assert.Error(t, err)
	var blocked *BlockedError
	assert.False(t, errors.As(err, &blocked))
}

func TestPriorityGateUnknownPriorityTreatedAsNormal(t *testing.T) {
	repo := new(mockAppointmentRepo)
	gate := NewPriorityGateService(logrus.New(), repo)

	id := uuid.New()
	repo.On("FindOutstandingAbovePriority", mock.Anything, id, 1).Return([]entity.Appointment{}, nil)

	assert.NoError(t, gate.Check(nil, id, entity.AppointmentPriority("bogus")))
	repo.AssertExpectations(t)
}
