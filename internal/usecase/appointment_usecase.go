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
	ErrAppointmentNotFound        = errors.New("appointment not found")
	ErrAppointmentForbidden       = errors.New("appointment does not belong to you")
	ErrDuplicateActiveAppointment = errors.New("you already have an active appointment on this date")
	ErrSlotUnavailable            = errors.New("requested time slot is not available")
	ErrInvalidTimeSlot            = errors.New("time must be on the 30-minute grid, format HH:MM")
	ErrDateInPast                 = errors.New("cannot book an appointment in the past")
	ErrPatientNotFound            = errors.New("patient not found")
	ErrDoctorNotFound             = errors.New("doctor not found")
	ErrInvalidTransition          = errors.New("status transition not allowed from current status")
	ErrAppointmentTerminal        = errors.New("appointment already reached a final status")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	CreateWalkIn(ctx context.Context, req *dto.CreateWalkInRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	patientProfileRepo  repository.PatientProfileRepository
	doctorProfileRepo   repository.DoctorProfileRepository
	availabilityService *service.AvailabilityService
	slotGuard           *service.SlotGuardService
	auditService        service.AuditService
	notifier            *service.EventNotifier
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientProfileRepo repository.PatientProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	availabilityService *service.AvailabilityService,
	slotGuard *service.SlotGuardService,
	auditService service.AuditService,
	notifier *service.EventNotifier,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                  db,
		log:                 log,
		appointmentRepo:     appointmentRepo,
		patientProfileRepo:  patientProfileRepo,
		doctorProfileRepo:   doctorProfileRepo,
		availabilityService: availabilityService,
		slotGuard:           slotGuard,
		auditService:        auditService,
		notifier:            notifier,
	}
}

// Create books an appointment request for the logged-in patient.
//
// Flow:
// 1. Validate date/time on the 30-minute grid and not in the past
// 2. Enforce one active appointment per patient per date
// 3. If a doctor was requested: availability check, then Redis slot claim
// 4. Insert appointment (status pending)
// 5. If DB fails -> compensate: release the Redis slot claim
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	slot, err := normalizeSlot(req.Time)
	if err != nil {
		return nil, ErrInvalidTimeSlot
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrDateInPast
	}

	active, err := u.appointmentRepo.CountActiveByPatientAndDate(u.db.WithContext(ctx), userID, date)
	if err != nil {
		u.log.Warnf("Failed to count active appointments for patient %s: %+v", userID, err)
		return nil, err
	}
	if active > 0 {
		return nil, ErrDuplicateActiveAppointment
	}

	priority := entity.AppointmentPriority(req.Priority)
	if priority == "" {
		priority = entity.PriorityNormal
	}

	appointment := &entity.Appointment{
		PatientID:       userID,
		DoctorID:        req.DoctorID,
		Date:            date,
		Time:            slot,
		DurationMinutes: int(service.SlotDuration.Minutes()),
		Type:            entity.AppointmentTypeStudentRequest,
		Reason:          req.Reason,
		Priority:        priority,
		Status:          entity.AppointmentStatusPending,
	}

	claimed := false
	if req.DoctorID != nil {
		doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), *req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", *req.DoctorID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}

		free, err := u.availabilityService.IsSlotFree(u.db.WithContext(ctx), req.DoctorID, date, slot)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, ErrSlotUnavailable
		}

		// Critical section: the Lua claim closes the race between the
		// availability check above and the insert below.
		appointment.ID = uuid.New()
		if err := u.slotGuard.Claim(ctx, *req.DoctorID, date, slot, appointment.ID); err != nil {
			if errors.Is(err, service.ErrSlotTaken) {
				return nil, ErrSlotUnavailable
			}
			return nil, err
		}
		claimed = true
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Errorf("Failed to insert appointment, compensating slot claim: %+v", err)
		u.compensateClaim(claimed, req.DoctorID, date, slot)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, &userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), map[string]any{
		"date":     req.Date,
		"time":     slot,
		"priority": string(priority),
	}); err != nil {
		u.compensateClaim(claimed, req.DoctorID, date, slot)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		u.compensateClaim(claimed, req.DoctorID, date, slot)
		return nil, err
	}

	u.notifier.AppointmentChanged("appointment.created", appointment)
	u.log.Infof("Appointment created: id=%s, patient=%s, date=%s %s", appointment.ID, userID, req.Date, slot)

	return converter.AppointmentToResponse(appointment), nil
}

// CreateWalkIn registers an in-person visit entered by clinical staff.
// Walk-ins start in waiting and skip the grid: they queue for confirmation
// instead of claiming a slot.
func (u *appointmentUsecase) CreateWalkIn(ctx context.Context, req *dto.CreateWalkInRequest) (*dto.AppointmentResponse, error) {
	staffID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.DoctorID != nil {
		doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), *req.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
	}

	priority := entity.AppointmentPriority(req.Priority)
	if priority == "" {
		priority = entity.PriorityNormal
	}

	now := time.Now()
	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		Date:            now.UTC().Truncate(24 * time.Hour),
		Time:            now.Format("15:04"),
		DurationMinutes: int(service.SlotDuration.Minutes()),
		Type:            entity.AppointmentTypeWalkIn,
		Reason:          req.Reason,
		Priority:        priority,
		Status:          entity.AppointmentStatusWaiting,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create walk-in appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, &staffID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), map[string]any{
		"type":     entity.AppointmentTypeWalkIn,
		"patient":  req.PatientID.String(),
		"priority": string(priority),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifier.AppointmentChanged("appointment.created", appointment)
	u.log.Infof("Walk-in registered: id=%s, patient=%s, staff=%s", appointment.ID, req.PatientID, staffID)

	return converter.AppointmentToResponse(appointment), nil
}

// List returns appointments visible to the caller: patients see their own,
// doctors the ones assigned to them, clinical staff and admins everything.
func (u *appointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	if filter == nil {
		filter = &entity.AppointmentFilter{}
	}

	switch {
	case entity.IsPatientRole(roleID):
		filter.PatientID = &userID
	case roleID == entity.RoleIDDoctor:
		filter.DoctorID = &userID
	}

	appointments, err := u.appointmentRepo.FindByFilter(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.loadVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

// Cancel cancels an appointment. Patients cancel their own; a doctor may
// instead request reassignment, which puts a scheduled appointment back
// into the triage queue.
func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	appointment, err := u.loadVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.IsTerminal() {
		return nil, ErrAppointmentTerminal
	}

	reassign := req != nil && req.RequestReassignment && roleID == entity.RoleIDDoctor
	target := entity.AppointmentStatusCancelled
	if reassign {
		target = entity.AppointmentStatusPending
	}

	if !entity.CanTransition(appointment.Status, target) {
		return nil, ErrInvalidTransition
	}

	// Free the doctor's slot either way
	releaseDoctor := appointment.DoctorID
	releaseDate := appointment.Date
	releaseSlot := service.SlotLabel(appointment.Time)

	old := appointment.Status
	now := time.Now()
	appointment.Status = target
	if reassign {
		appointment.NeedsReassignment = true
		appointment.DoctorID = nil
		appointment.AssignedAt = nil
	} else {
		appointment.CancelledAt = &now
	}
	if req != nil && req.Reason != "" {
		appointment.Notes = req.Reason
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &userID, entity.AuditActionAppointmentCancel, "appointment", id.String(), map[string]any{
		"status": string(old),
	}, map[string]any{
		"status":             string(target),
		"needs_reassignment": reassign,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if releaseDoctor != nil {
		syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.slotGuard.Release(syncCtx, *releaseDoctor, releaseDate, releaseSlot); err != nil {
			// Non-fatal: the claim TTL expires on its own
			u.log.Warnf("Failed to release slot for cancelled appointment %s: %+v", id, err)
		}
	}

	u.notifier.AppointmentChanged("appointment.cancelled", appointment)
	u.log.Infof("Appointment cancelled: id=%s, reassign=%t", id, reassign)

	return converter.AppointmentToResponse(appointment), nil
}

// Delete hard-deletes an appointment. Admin only, enforced at the router.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogDelete(tx, &userID, entity.AuditActionAppointmentDelete, "appointment", id.String(), map[string]any{
		"status": string(appointment.Status),
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if appointment.DoctorID != nil {
		syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.slotGuard.Release(syncCtx, *appointment.DoctorID, appointment.Date, service.SlotLabel(appointment.Time)); err != nil {
			u.log.Warnf("Failed to release slot for deleted appointment %s: %+v", id, err)
		}
	}

	return nil
}

// loadVisible loads the appointment and enforces the caller's visibility.
func (u *appointmentUsecase) loadVisible(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch {
	case roleID == entity.RoleIDAdmin || roleID == entity.RoleIDClinicalStaff:
	case roleID == entity.RoleIDDoctor:
		if appointment.DoctorID == nil || *appointment.DoctorID != userID {
			return nil, ErrAppointmentForbidden
		}
	default:
		if appointment.PatientID != userID {
			return nil, ErrAppointmentForbidden
		}
	}

	return appointment, nil
}

func (u *appointmentUsecase) compensateClaim(claimed bool, doctorID *uuid.UUID, date time.Time, slot string) {
	if !claimed || doctorID == nil {
		return
	}
	syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.slotGuard.Release(syncCtx, *doctorID, date, slot); err != nil {
		u.log.Errorf("CRITICAL: Failed to release slot claim after DB failure: %+v", err)
	}
}

// normalizeSlot validates HH:MM input on the 30-minute grid.
func normalizeSlot(value string) (string, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return "", err
	}
	if t.Minute()%30 != 0 {
		return "", errors.New("time is off the 30-minute grid")
	}
	return t.Format("15:04"), nil
}
