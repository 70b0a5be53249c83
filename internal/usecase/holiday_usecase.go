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

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHolidayNotFound     = errors.New("holiday not found")
	ErrHolidayInvalidRange = errors.New("end date must not be before start date")
)

type HolidayUsecase interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error)
	List(ctx context.Context) (*dto.HolidayListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateHolidayRequest) (*dto.HolidayResponse, error)
	Delete(ctx context.Context, id int) error
}

type holidayUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	holidayRepo  repository.AcademicHolidayRepository
	auditService service.AuditService
}

func NewHolidayUsecase(db *gorm.DB, log *logrus.Logger, holidayRepo repository.AcademicHolidayRepository, auditService service.AuditService) HolidayUsecase {
	return &holidayUsecase{
		db:           db,
		log:          log,
		holidayRepo:  holidayRepo,
		auditService: auditService,
	}
}

func (u *holidayUsecase) Create(ctx context.Context, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if end.Before(start) {
		return nil, ErrHolidayInvalidRange
	}

	isBlocking := true
	if req.IsBlocking != nil {
		isBlocking = *req.IsBlocking
	}

	holiday := &entity.AcademicHoliday{
		Name:       req.Name,
		StartDate:  start,
		EndDate:    end,
		StaffType:  req.StaffType,
		Department: req.Department,
		IsBlocking: isBlocking,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.holidayRepo.Create(tx, holiday); err != nil {
		u.log.Warnf("Failed to create holiday: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, &userID, entity.AuditActionHolidayCreate, "academic_holiday", "", map[string]any{
		"name":  req.Name,
		"start": req.StartDate,
		"end":   req.EndDate,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HolidayToResponse(holiday), nil
}

func (u *holidayUsecase) List(ctx context.Context) (*dto.HolidayListResponse, error) {
	holidays, err := u.holidayRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list holidays: %+v", err)
		return nil, err
	}

	return &dto.HolidayListResponse{
		Holidays: converter.HolidaysToResponses(holidays),
		Total:    len(holidays),
	}, nil
}

func (u *holidayUsecase) Update(ctx context.Context, id int, req *dto.UpdateHolidayRequest) (*dto.HolidayResponse, error) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	holiday, err := u.holidayRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if holiday == nil {
		return nil, ErrHolidayNotFound
	}

	if req.Name != "" {
		holiday.Name = req.Name
	}
	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		holiday.StartDate = start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		holiday.EndDate = end
	}
	if holiday.EndDate.Before(holiday.StartDate) {
		return nil, ErrHolidayInvalidRange
	}
	if req.StaffType != "" {
		holiday.StaffType = req.StaffType
	}
	if req.Department != "" {
		holiday.Department = req.Department
	}
	if req.IsBlocking != nil {
		holiday.IsBlocking = *req.IsBlocking
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.holidayRepo.Update(tx, holiday); err != nil {
		u.log.Warnf("Failed to update holiday %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(tx, &userID, entity.AuditActionHolidayUpdate, "academic_holiday", "", nil, map[string]any{
		"name": holiday.Name,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HolidayToResponse(holiday), nil
}

func (u *holidayUsecase) Delete(ctx context.Context, id int) error {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.holidayRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete holiday %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrHolidayNotFound
	}

	if err := u.auditService.LogDelete(tx, &userID, entity.AuditActionHolidayDelete, "academic_holiday", "", map[string]any{
		"id": id,
	}); err != nil {
		return err
	}

	return tx.Commit().Error
}
