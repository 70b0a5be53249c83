package usecase

import (
	"context"
	"time"

	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AvailabilityUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID *uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
}

type availabilityUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	availabilityService *service.AvailabilityService
}

func NewAvailabilityUsecase(db *gorm.DB, log *logrus.Logger, availabilityService *service.AvailabilityService) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                  db,
		log:                 log,
		availabilityService: availabilityService,
	}
}

// GetAvailableSlots resolves the bookable slot grid for a doctor and date.
// A nil doctorID aggregates across all doctors.
func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, doctorID *uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	grid, err := u.availabilityService.Resolve(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to resolve availability for %s: %+v", date, err)
		return nil, err
	}

	resp := &dto.AvailableSlotsResponse{
		Date:           day.Format("2006-01-02"),
		AvailableSlots: grid.AvailableSlots,
		BookedSlots:    grid.BookedSlots,
		TotalAvailable: len(grid.AvailableSlots),
	}
	if doctorID != nil {
		resp.DoctorID = doctorID.String()
	}
	return resp, nil
}
