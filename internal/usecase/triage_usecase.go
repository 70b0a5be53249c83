package usecase

import (
	"context"
	"errors"
	"time"

	"university-clinic-api/internal/converter"
	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/delivery/http/middleware"
	"university-clinic-api/internal/domain/entity"
	"university-clinic-api/internal/domain/repository"
	"university-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorRequired = errors.New("a doctor must be assigned before confirmation")
)

// TriageUsecase covers the clinical-staff side of the appointment
// lifecycle: review, assignment, approval, rejection and walk-in
// confirmation.
type TriageUsecase interface {
	Review(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Assign(ctx context.Context, id uuid.UUID, req *dto.AssignAppointmentRequest) (*dto.AppointmentResponse, error)
	Approve(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Reject(ctx context.Context, id uuid.UUID, req *dto.RejectAppointmentRequest) (*dto.AppointmentResponse, error)
	ConfirmWalkIn(ctx context.Context, id uuid.UUID, req *dto.ConfirmWalkInRequest) (*dto.AppointmentResponse, error)
}

type triageUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	priorityGate        *service.PriorityGateService
	availabilityService *service.AvailabilityService
	slotGuard           *service.SlotGuardService
	auditService        service.AuditService
	notifier            *service.EventNotifier
}

func NewTriageUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	priorityGate *service.PriorityGateService,
	availabilityService *service.AvailabilityService,
	slotGuard *service.SlotGuardService,
	auditService service.AuditService,
	notifier *service.EventNotifier,
) TriageUsecase {
	return &triageUsecase{
		db:                  db,
		log:                 log,
		appointmentRepo:     appointmentRepo,
		doctorProfileRepo:   doctorProfileRepo,
		priorityGate:        priorityGate,
		availabilityService: availabilityService,
		slotGuard:           slotGuard,
		auditService:        auditService,
		notifier:            notifier,
	}
}

// Review marks a pending appointment as being looked at by staff.
func (u *triageUsecase) Review(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, entity.AppointmentStatusUnderReview, "appointment.under_review", entity.AuditActionAppointmentReview, func(apt *entity.Appointment, _ time.Time) {})
}

// Assign attaches a doctor (and optionally a new date/time) to a pending
// or under-review appointment.
//
// Flow:
// 1. Priority gate: outstanding higher-priority appointments block this one
// 2. Availability check for the target doctor/date/slot
// 3. Redis slot claim (atomic), compensated if the DB update fails
func (u *triageUsecase) Assign(ctx context.Context, id uuid.UUID, req *dto.AssignAppointmentRequest) (*dto.AppointmentResponse, error) {
	staffID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !entity.CanTransition(appointment.Status, entity.AppointmentStatusAssigned) {
		return nil, ErrInvalidTransition
	}

	if err := u.priorityGate.Check(u.db.WithContext(ctx), id, appointment.Priority); err != nil {
		return nil, err
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	date := appointment.Date
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
	}
	slot := service.SlotLabel(appointment.Time)
	if req.Time != "" {
		slot, err = normalizeSlot(req.Time)
		if err != nil {
			return nil, ErrInvalidTimeSlot
		}
	}

	free, err := u.availabilityService.IsSlotFree(u.db.WithContext(ctx), &req.DoctorID, date, slot)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSlotUnavailable
	}

	if err := u.slotGuard.Claim(ctx, req.DoctorID, date, slot, appointment.ID); err != nil {
		if errors.Is(err, service.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	old := appointment.Status
	now := time.Now()
	appointment.DoctorID = &req.DoctorID
	appointment.Date = date
	appointment.Time = slot
	appointment.Status = entity.AppointmentStatusAssigned
	appointment.AssignedAt = &now
	appointment.NeedsReassignment = false
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	commitErr := func() error {
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			return err
		}
		if err := u.auditService.LogUpdate(tx, &staffID, entity.AuditActionAppointmentAssign, "appointment", id.String(), map[string]any{
			"status": string(old),
		}, map[string]any{
			"status": string(entity.AppointmentStatusAssigned),
			"doctor": req.DoctorID.String(),
			"date":   date.Format("2006-01-02"),
			"time":   slot,
		}); err != nil {
			return err
		}
		return tx.Commit().Error
	}()
	if commitErr != nil {
		u.log.Errorf("Failed to persist assignment, compensating slot claim: %+v", commitErr)
		syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if releaseErr := u.slotGuard.Release(syncCtx, req.DoctorID, date, slot); releaseErr != nil {
			u.log.Errorf("CRITICAL: Failed to release slot claim after DB failure: %+v", releaseErr)
		}
		return nil, commitErr
	}

	u.notifier.AppointmentChanged("appointment.assigned", appointment)
	u.log.Infof("Appointment assigned: id=%s, doctor=%s, slot=%s %s", id, req.DoctorID, date.Format("2006-01-02"), slot)

	return converter.AppointmentToResponse(appointment), nil
}

// Approve schedules an assigned appointment.
func (u *triageUsecase) Approve(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, id, entity.AppointmentStatusScheduled, "appointment.approved", entity.AuditActionAppointmentApprove, func(apt *entity.Appointment, now time.Time) {
		apt.ApprovedAt = &now
		if apt.Type == entity.AppointmentTypeStudentRequest {
			apt.Type = entity.AppointmentTypeApprovedRequest
		}
	})
}

// Reject declines an appointment request with a reason.
func (u *triageUsecase) Reject(ctx context.Context, id uuid.UUID, req *dto.RejectAppointmentRequest) (*dto.AppointmentResponse, error) {
	var released *entity.Appointment
	resp, err := u.transition(ctx, id, entity.AppointmentStatusRejected, "appointment.rejected", entity.AuditActionAppointmentReject, func(apt *entity.Appointment, now time.Time) {
		apt.RejectedAt = &now
		apt.Notes = req.Reason
		released = apt
	})
	if err != nil {
		return nil, err
	}

	// A rejected request frees any slot it claimed at creation
	if released != nil && released.DoctorID != nil {
		syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.slotGuard.Release(syncCtx, *released.DoctorID, released.Date, service.SlotLabel(released.Time)); err != nil {
			u.log.Warnf("Failed to release slot for rejected appointment %s: %+v", id, err)
		}
	}

	return resp, nil
}

// ConfirmWalkIn moves a waiting walk-in to confirmed, attaching a doctor
// if one was not set at registration. Confirmation is what opens the
// attendance gate for walk-ins.
func (u *triageUsecase) ConfirmWalkIn(ctx context.Context, id uuid.UUID, req *dto.ConfirmWalkInRequest) (*dto.AppointmentResponse, error) {
	staffID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !entity.CanTransition(appointment.Status, entity.AppointmentStatusConfirmed) {
		return nil, ErrInvalidTransition
	}

	if req != nil && req.DoctorID != nil {
		doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), *req.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		appointment.DoctorID = req.DoctorID
	}
	if appointment.DoctorID == nil {
		return nil, ErrDoctorRequired
	}

	old := appointment.Status
	appointment.Status = entity.AppointmentStatusConfirmed

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to confirm walk-in %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &staffID, entity.AuditActionAppointmentConfirm, "appointment", id.String(), map[string]any{
		"status": string(old),
	}, map[string]any{
		"status": string(entity.AppointmentStatusConfirmed),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifier.AppointmentChanged("appointment.confirmed", appointment)
	return converter.AppointmentToResponse(appointment), nil
}

// transition applies a simple audited status transition shared by the
// single-step triage operations.
func (u *triageUsecase) transition(ctx context.Context, id uuid.UUID, target entity.AppointmentStatus, event string, auditAction string, mutate func(*entity.Appointment, time.Time)) (*dto.AppointmentResponse, error) {
	staffID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !entity.CanTransition(appointment.Status, target) {
		return nil, ErrInvalidTransition
	}

	old := appointment.Status
	now := time.Now()
	appointment.Status = target
	mutate(appointment, now)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &staffID, auditAction, "appointment", id.String(), map[string]any{
		"status": string(old),
	}, map[string]any{
		"status": string(target),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifier.AppointmentChanged(event, appointment)
	return converter.AppointmentToResponse(appointment), nil
}
