package service

import (
	"fmt"

	"university-clinic-api/internal/domain/entity"
	"university-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BlockedError is returned when outstanding higher-priority appointments
// must be resolved before the requested one may be acted on. Carries the
// blocking set so handlers can surface it (HTTP 423).
type BlockedError struct {
	Blocking []entity.Appointment
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%d higher-priority appointments must be resolved first", len(e.Blocking))
}

// PriorityGateService decides whether an appointment may be advanced while
// strictly-higher-priority appointments are still outstanding, so urgent
// cases are always triaged first.
//
// The check is advisory: it is re-evaluated per request with no lock, so
// two staff members acting concurrently on different appointments can both
// pass before either transition commits. Accepted design gap.
type PriorityGateService struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewPriorityGateService(log *logrus.Logger, appointmentRepo repository.AppointmentRepository) *PriorityGateService {
	return &PriorityGateService{
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

// Check returns nil when the appointment may proceed, a *BlockedError when
// outstanding higher-priority appointments block it. Urgent appointments
// are never blocked; high is blocked only by urgent; normal by both.
func (s *PriorityGateService) Check(db *gorm.DB, excludeID uuid.UUID, priority entity.AppointmentPriority) error {
	level := entity.PriorityLevel(priority)
	if level >= entity.PriorityLevel(entity.PriorityUrgent) {
		return nil
	}

	blocking, err := s.appointmentRepo.FindOutstandingAbovePriority(db, excludeID, level)
	if err != nil {
		s.log.Warnf("Failed to query outstanding appointments: %+v", err)
		return fmt.Errorf("check priority blocking: %w", err)
	}
	if len(blocking) > 0 {
		return &BlockedError{Blocking: blocking}
	}
	return nil
}
