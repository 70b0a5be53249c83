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
	ErrPrescriptionNotFound  = errors.New("prescription not found")
	ErrPrescriptionForbidden = errors.New("prescription does not belong to you")
)

type PrescriptionUsecase interface {
	Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error)
	ListMine(ctx context.Context) (*dto.PrescriptionListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdatePrescriptionStatusRequest) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	prescriptionRepo   repository.PrescriptionRepository
	patientProfileRepo repository.PatientProfileRepository
	attendance         *service.AttendanceService
	auditService       service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	patientProfileRepo repository.PatientProfileRepository,
	attendance *service.AttendanceService,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:                 db,
		log:                log,
		prescriptionRepo:   prescriptionRepo,
		patientProfileRepo: patientProfileRepo,
		attendance:         attendance,
		auditService:       auditService,
	}
}

// Create writes a prescription with explicit medication line items.
// Attendance-gated: the doctor must currently be allowed to see the
// patient.
func (u *prescriptionUsecase) Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
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

	decision, err := u.attendance.CanAttend(u.db.WithContext(ctx), doctorID, req.PatientID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &AttendanceDeniedError{Reason: decision.Reason, CanAttendFrom: decision.CanAttendFrom}
	}

	appointmentID := req.AppointmentID
	if appointmentID == nil && decision.Appointment != nil {
		appointmentID = &decision.Appointment.ID
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	medications := make([]entity.Medication, len(req.Medications))
	for i, item := range req.Medications {
		days := item.Days
		if days <= 0 {
			days = service.DefaultMedicationDays
		}
		end := start.AddDate(0, 0, days)

		dosage := item.Dosage
		if dosage == "" {
			dosage = service.DefaultDosage
		}
		instructions := item.Instructions
		if instructions == "" {
			instructions = service.DefaultInstructions
		}

		medications[i] = entity.Medication{
			Name:         item.Name,
			Dosage:       dosage,
			Instructions: instructions,
			Frequency:    item.Frequency,
			StartDate:    start,
			EndDate:      &end,
			Status:       "active",
		}
	}

	prescription := &entity.Prescription{
		PatientID:     req.PatientID,
		DoctorID:      doctorID,
		AppointmentID: appointmentID,
		Status:        entity.PrescriptionStatusActive,
		Notes:         req.Notes,
		Medications:   medications,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, &doctorID, entity.AuditActionPrescriptionCreate, "prescription", prescription.ID.String(), map[string]any{
		"patient":     req.PatientID.String(),
		"medications": len(medications),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.loadVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.PrescriptionToResponse(prescription), nil
}

// ListMine returns the caller's prescriptions: as patient or as the
// prescribing doctor.
func (u *prescriptionUsecase) ListMine(ctx context.Context) (*dto.PrescriptionListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	var (
		prescriptions []entity.Prescription
		err           error
	)
	if roleID == entity.RoleIDDoctor {
		prescriptions, err = u.prescriptionRepo.FindByDoctorID(u.db.WithContext(ctx), userID)
	} else {
		prescriptions, err = u.prescriptionRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	}
	if err != nil {
		u.log.Warnf("Failed to list prescriptions for %s: %+v", userID, err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

// UpdateStatus lets the prescribing doctor mark a prescription completed
// or cancelled.
func (u *prescriptionUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdatePrescriptionStatusRequest) (*dto.PrescriptionResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.DoctorID != doctorID {
		return nil, ErrPrescriptionForbidden
	}

	rows, err := u.prescriptionRepo.UpdateStatus(u.db.WithContext(ctx), id, entity.PrescriptionStatus(req.Status))
	if err != nil {
		u.log.Warnf("Failed to update prescription %s status: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrPrescriptionNotFound
	}

	prescription.Status = entity.PrescriptionStatus(req.Status)
	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) loadVisible(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription %s: %+v", id, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	switch {
	case roleID == entity.RoleIDAdmin || roleID == entity.RoleIDClinicalStaff:
	case roleID == entity.RoleIDDoctor:
		if prescription.DoctorID != userID {
			return nil, ErrPrescriptionForbidden
		}
	default:
		if prescription.PatientID != userID {
			return nil, ErrPrescriptionForbidden
		}
	}

	return prescription, nil
}
