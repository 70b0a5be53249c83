package usecase

import (
	"context"
	"errors"

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

var ErrRecordsForbidden = errors.New("you are not allowed to view this patient's records")

type MedicalRecordUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.MedicalRecordListResponse, error)
}

type medicalRecordUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	medicalRecordRepo  repository.MedicalRecordRepository
	patientProfileRepo repository.PatientProfileRepository
	attendance         *service.AttendanceService
	auditService       service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicalRecordRepo repository.MedicalRecordRepository,
	patientProfileRepo repository.PatientProfileRepository,
	attendance *service.AttendanceService,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:                 db,
		log:                log,
		medicalRecordRepo:  medicalRecordRepo,
		patientProfileRepo: patientProfileRepo,
		attendance:         attendance,
		auditService:       auditService,
	}
}

// Create appends a medical record. Doctors are gated on attendance: they
// can only write records for a patient they are currently allowed to see.
// Clinical staff record vital signs without the gate.
func (u *medicalRecordUsecase) Create(ctx context.Context, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	patient, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	recordType := req.Type
	if recordType == "" {
		recordType = entity.MedicalRecordTypeConsultation
	}

	record := &entity.MedicalRecord{
		PatientID:        req.PatientID,
		AppointmentID:    req.AppointmentID,
		Type:             recordType,
		Diagnosis:        req.Diagnosis,
		Treatment:        req.Treatment,
		Notes:            req.Notes,
		BloodPressure:    req.BloodPressure,
		HeartRate:        req.HeartRate,
		Temperature:      req.Temperature,
		RespiratoryRate:  req.RespiratoryRate,
		OxygenSaturation: req.OxygenSaturation,
		Weight:           req.Weight,
		Height:           req.Height,
		BMI:              computeBMI(req.Weight, req.Height),
	}

	if roleID == entity.RoleIDDoctor {
		decision, err := u.attendance.CanAttend(u.db.WithContext(ctx), userID, req.PatientID)
		if err != nil {
			return nil, err
		}
		if !decision.Allowed {
			return nil, &AttendanceDeniedError{Reason: decision.Reason, CanAttendFrom: decision.CanAttendFrom}
		}
		record.DoctorID = &userID
		if record.AppointmentID == nil && decision.Appointment != nil {
			record.AppointmentID = &decision.Appointment.ID
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.medicalRecordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, &userID, entity.AuditActionMedicalRecordCreate, "medical_record", record.ID.String(), map[string]any{
		"patient": req.PatientID.String(),
		"type":    recordType,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

// ListByPatient returns a patient's records. Patients only see their own;
// medical staff see any patient's.
func (u *medicalRecordUsecase) ListByPatient(ctx context.Context, patientID uuid.UUID) (*dto.MedicalRecordListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	if entity.IsPatientRole(roleID) && userID != patientID {
		return nil, ErrRecordsForbidden
	}

	records, err := u.medicalRecordRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list medical records for %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

// computeBMI derives BMI from weight (kg) and height (cm) when both are
// present.
func computeBMI(weight, height *float64) *float64 {
	if weight == nil || height == nil || *height <= 0 {
		return nil
	}
	meters := *height / 100
	bmi := *weight / (meters * meters)
	return &bmi
}
