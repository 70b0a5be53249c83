package service

import (
	"fmt"
	"time"

	"university-clinic-api/internal/domain/entity"
	"university-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AttendanceGraceWindow is how early a doctor may act on an appointment
// before its scheduled time.
const AttendanceGraceWindow = 15 * time.Minute

// Attendance denial reasons
const (
	AttendanceReasonNoAppointment = "no active appointment between doctor and patient"
	AttendanceReasonNotConfirmed  = "walk-in appointment must be confirmed by clinical staff first"
	AttendanceReasonTooEarly      = "appointment time has not arrived yet"
)

// AttendanceDecision is the outcome of the attendance time gate.
// CanAttendFrom is set only on a too-early denial so the caller can tell
// the doctor the earliest permitted time.
type AttendanceDecision struct {
	Allowed       bool
	Reason        string
	CanAttendFrom *time.Time
	Appointment   *entity.Appointment
}

// AttendanceService decides whether a doctor may act on an appointment
// (confirm or complete it, or attach a medical record or prescription)
// based on scheduled time versus the current time. Walk-ins and urgent
// cases follow a confirm-by-staff gate instead of the wall clock.
//
// Status transitions, medical-record creation and prescription creation
// all consult this one service so the rule cannot drift between call
// sites.
type AttendanceService struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	now             Clock
}

func NewAttendanceService(log *logrus.Logger, appointmentRepo repository.AppointmentRepository) *AttendanceService {
	return &AttendanceService{
		log:             log,
		appointmentRepo: appointmentRepo,
		now:             systemClock,
	}
}

// WithClock overrides the time source. Test hook.
func (s *AttendanceService) WithClock(clock Clock) *AttendanceService {
	s.now = clock
	return s
}

// CanAttend locates the most recent active appointment between the doctor
// and the patient and evaluates the gate against it.
func (s *AttendanceService) CanAttend(db *gorm.DB, doctorID, patientID uuid.UUID) (*AttendanceDecision, error) {
	apt, err := s.appointmentRepo.FindLatestActiveByDoctorAndPatient(db, doctorID, patientID)
	if err != nil {
		return nil, fmt.Errorf("find active appointment: %w", err)
	}
	if apt == nil {
		return &AttendanceDecision{Allowed: false, Reason: AttendanceReasonNoAppointment}, nil
	}
	return s.Evaluate(apt), nil
}

// Evaluate applies the gate to a known appointment.
func (s *AttendanceService) Evaluate(apt *entity.Appointment) *AttendanceDecision {
	// Walk-ins and urgent cases are never gated on the wall clock: they
	// become attendable the instant clinical staff confirms them.
	if apt.IsWalkIn() || apt.Priority == entity.PriorityUrgent {
		switch apt.Status {
		case entity.AppointmentStatusConfirmed, entity.AppointmentStatusInProgress:
			return &AttendanceDecision{Allowed: true, Appointment: apt}
		default:
			return &AttendanceDecision{Allowed: false, Reason: AttendanceReasonNotConfirmed, Appointment: apt}
		}
	}

	canAttendFrom := apt.ScheduledAt().Add(-AttendanceGraceWindow)
	if s.now().Before(canAttendFrom) {
		return &AttendanceDecision{
			Allowed:       false,
			Reason:        AttendanceReasonTooEarly,
			CanAttendFrom: &canAttendFrom,
			Appointment:   apt,
		}
	}
	return &AttendanceDecision{Allowed: true, Appointment: apt}
}
