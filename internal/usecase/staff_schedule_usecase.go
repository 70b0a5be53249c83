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

var (
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrScheduleInvalidWindow = errors.New("end time must be after start time")
)

type StaffScheduleUsecase interface {
	Upsert(ctx context.Context, req *dto.UpsertStaffScheduleRequest) (*dto.StaffScheduleResponse, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.StaffScheduleListResponse, error)
	Delete(ctx context.Context, id int) error
}

type staffScheduleUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	scheduleRepo      repository.StaffScheduleRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewStaffScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.StaffScheduleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) StaffScheduleUsecase {
	return &staffScheduleUsecase{
		db:                db,
		log:               log,
		scheduleRepo:      scheduleRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// Upsert creates or replaces the working-hours window for one doctor and
// weekday. The availability resolver reads these rows; deleting one falls
// back to the clinic default window.
func (u *staffScheduleUsecase) Upsert(ctx context.Context, req *dto.UpsertStaffScheduleRequest) (*dto.StaffScheduleResponse, error) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	if req.EndTime <= req.StartTime {
		return nil, ErrScheduleInvalidWindow
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	existing, err := u.scheduleRepo.FindByDoctorAndWeekday(u.db.WithContext(ctx), req.DoctorID, req.Weekday)
	if err != nil {
		u.log.Warnf("Failed to look up schedule for doctor %s weekday %d: %+v", req.DoctorID, req.Weekday, err)
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	schedule := existing
	action := entity.AuditActionScheduleUpdate
	if schedule == nil {
		schedule = &entity.StaffSchedule{
			DoctorID: req.DoctorID,
			Weekday:  req.Weekday,
		}
		action = entity.AuditActionScheduleCreate
	}
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime
	schedule.IsActive = &isActive

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if existing == nil {
		err = u.scheduleRepo.Create(tx, schedule)
	} else {
		err = u.scheduleRepo.Update(tx, schedule)
	}
	if err != nil {
		u.log.Warnf("Failed to save schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &userID, action, "staff_schedule", "", nil, map[string]any{
		"doctor":  req.DoctorID.String(),
		"weekday": req.Weekday,
		"window":  req.StartTime + "-" + req.EndTime,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *staffScheduleUsecase) ListByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.StaffScheduleListResponse, error) {
	schedules, err := u.scheduleRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list schedules for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.StaffScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

func (u *staffScheduleUsecase) Delete(ctx context.Context, id int) error {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.scheduleRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete schedule %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrScheduleNotFound
	}

	if err := u.auditService.LogDelete(tx, &userID, entity.AuditActionScheduleDelete, "staff_schedule", "", map[string]any{
		"id": id,
	}); err != nil {
		return err
	}

	return tx.Commit().Error
}
