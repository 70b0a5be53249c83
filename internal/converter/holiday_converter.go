package converter

import (
	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/domain/entity"
)

// HolidayToResponse converts an AcademicHoliday entity to HolidayResponse DTO
func HolidayToResponse(holiday *entity.AcademicHoliday) *dto.HolidayResponse {
	if holiday == nil {
		return nil
	}

	return &dto.HolidayResponse{
		ID:         holiday.ID,
		Name:       holiday.Name,
		StartDate:  holiday.StartDate.Format("2006-01-02"),
		EndDate:    holiday.EndDate.Format("2006-01-02"),
		StaffType:  holiday.StaffType,
		Department: holiday.Department,
		IsBlocking: holiday.IsBlocking,
		CreatedAt:  holiday.CreatedAt,
	}
}

// HolidaysToResponses converts a slice of AcademicHoliday entities to slice of HolidayResponse DTOs
func HolidaysToResponses(holidays []entity.AcademicHoliday) []dto.HolidayResponse {
	responses := make([]dto.HolidayResponse, len(holidays))
	for i := range holidays {
		responses[i] = *HolidayToResponse(&holidays[i])
	}
	return responses
}
