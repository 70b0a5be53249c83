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
	ErrNotAssignedDoctor       = errors.New("appointment is not assigned to you")
	ErrMissingCompletionReport = errors.New("completion report is required to complete an appointment")
)

// AttendanceDeniedError signals that the attendance time gate refused the
// operation. Handlers map it to 403 with the earliest permitted time.
type AttendanceDeniedError struct {
	Reason        string
	CanAttendFrom *time.Time
}

func (e *AttendanceDeniedError) Error() string {
	return e.Reason
}

// DoctorAppointmentUsecase covers the doctor's side of the lifecycle:
// confirming scheduled appointments and progressing them through
// in_progress to completion with its derived records.
type DoctorAppointmentUsecase interface {
	Confirm(ctx context.Context, id uuid.UUID, req *dto.ConfirmAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.UpdateStatusResponse, error)
}

type doctorAppointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	medicalRecordRepo repository.MedicalRecordRepository
	prescriptionRepo  repository.PrescriptionRepository
	priorityGate      *service.PriorityGateService
	attendance        *service.AttendanceService
	auditService      service.AuditService
	notifier          *service.EventNotifier
}

func NewDoctorAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	medicalRecordRepo repository.MedicalRecordRepository,
	prescriptionRepo repository.PrescriptionRepository,
	priorityGate *service.PriorityGateService,
	attendance *service.AttendanceService,
	auditService service.AuditService,
	notifier *service.EventNotifier,
) DoctorAppointmentUsecase {
	return &doctorAppointmentUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointmentRepo,
		medicalRecordRepo: medicalRecordRepo,
		prescriptionRepo:  prescriptionRepo,
		priorityGate:      priorityGate,
		attendance:        attendance,
		auditService:      auditService,
		notifier:          notifier,
	}
}

// Confirm moves a scheduled appointment to confirmed. Blocked while
// higher-priority appointments are outstanding, and gated on the
// attendance window.
func (u *doctorAppointmentUsecase) Confirm(ctx context.Context, id uuid.UUID, req *dto.ConfirmAppointmentRequest) (*dto.AppointmentResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.loadOwn(ctx, id, doctorID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(appointment.Status, entity.AppointmentStatusConfirmed) {
		return nil, ErrInvalidTransition
	}

	if err := u.priorityGate.Check(u.db.WithContext(ctx), id, appointment.Priority); err != nil {
		return nil, err
	}

	decision := u.attendance.Evaluate(appointment)
	if !decision.Allowed {
		return nil, &AttendanceDeniedError{Reason: decision.Reason, CanAttendFrom: decision.CanAttendFrom}
	}

	old := appointment.Status
	appointment.Status = entity.AppointmentStatusConfirmed
	if req != nil && req.CustomMessage != "" {
		appointment.Notes = req.CustomMessage
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to confirm appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &doctorID, entity.AuditActionAppointmentConfirm, "appointment", id.String(), map[string]any{
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

// UpdateStatus moves a confirmed appointment to in_progress or completed.
// Completing requires a report and creates the derived medical record and,
// when medications were prescribed, a prescription, all in one transaction.
func (u *doctorAppointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.UpdateStatusResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.loadOwn(ctx, id, doctorID)
	if err != nil {
		return nil, err
	}

	target := entity.AppointmentStatus(req.Status)
	if !entity.CanTransition(appointment.Status, target) {
		return nil, ErrInvalidTransition
	}

	decision := u.attendance.Evaluate(appointment)
	if !decision.Allowed {
		return nil, &AttendanceDeniedError{Reason: decision.Reason, CanAttendFrom: decision.CanAttendFrom}
	}

	if target == entity.AppointmentStatusCompleted && req.CompletionReport == nil {
		return nil, ErrMissingCompletionReport
	}

	old := appointment.Status
	now := time.Now()
	appointment.Status = target

	result := &dto.UpdateStatusResponse{}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if target == entity.AppointmentStatusCompleted {
		report := req.CompletionReport
		appointment.CompletedAt = &now
		appointment.CompletionReport = entity.JSON{
			"diagnosis":              report.Diagnosis,
			"treatment":              report.Treatment,
			"notes":                  report.Notes,
			"medications_prescribed": report.MedicationsPrescribed,
		}

		record := &entity.MedicalRecord{
			PatientID:     appointment.PatientID,
			DoctorID:      &doctorID,
			AppointmentID: &appointment.ID,
			Type:          entity.MedicalRecordTypeConsultation,
			Diagnosis:     report.Diagnosis,
			Treatment:     report.Treatment,
			Notes:         report.Notes,
		}
		if err := u.medicalRecordRepo.Create(tx, record); err != nil {
			u.log.Warnf("Failed to create medical record for appointment %s: %+v", id, err)
			return nil, err
		}
		result.MedicalRecordCreated = true

		if parsed := service.ParseMedications(report.MedicationsPrescribed); len(parsed) > 0 {
			prescription := buildPrescription(appointment, doctorID, parsed, now)
			if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
				u.log.Warnf("Failed to create prescription for appointment %s: %+v", id, err)
				return nil, err
			}
			result.PrescriptionCreated = true
		}
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
		return nil, err
	}

	auditAction := entity.AuditActionAppointmentComplete
	event := "appointment.completed"
	if target == entity.AppointmentStatusInProgress {
		auditAction = entity.AuditActionAppointmentUpdate
		event = "appointment.in_progress"
	}

	if err := u.auditService.LogUpdate(tx, &doctorID, auditAction, "appointment", id.String(), map[string]any{
		"status": string(old),
	}, map[string]any{
		"status":                 string(target),
		"medical_record_created": result.MedicalRecordCreated,
		"prescription_created":   result.PrescriptionCreated,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifier.AppointmentChanged(event, appointment)
	u.log.Infof("Appointment %s moved %s -> %s", id, old, target)

	result.Appointment = converter.AppointmentToResponse(appointment)
	return result, nil
}

func (u *doctorAppointmentUsecase) loadOwn(ctx context.Context, id, doctorID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID == nil || *appointment.DoctorID != doctorID {
		return nil, ErrNotAssignedDoctor
	}
	return appointment, nil
}

// buildPrescription turns the parsed medication lines into a prescription
// with the default 7-day course.
func buildPrescription(appointment *entity.Appointment, doctorID uuid.UUID, parsed []service.ParsedMedication, now time.Time) *entity.Prescription {
	start := now.UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, service.DefaultMedicationDays)

	medications := make([]entity.Medication, len(parsed))
	for i, med := range parsed {
		medications[i] = entity.Medication{
			Name:         med.Name,
			Dosage:       med.Dosage,
			Instructions: med.Instructions,
			StartDate:    start,
			EndDate:      &end,
			Status:       "active",
		}
	}

	return &entity.Prescription{
		PatientID:     appointment.PatientID,
		DoctorID:      doctorID,
		AppointmentID: &appointment.ID,
		Status:        entity.PrescriptionStatusActive,
		Medications:   medications,
	}
}
