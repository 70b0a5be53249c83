package converter

import (
	"university-clinic-api/internal/delivery/dto"
	"university-clinic-api/internal/domain/entity"
)

// ScheduleToResponse converts a StaffSchedule entity to StaffScheduleResponse DTO
func ScheduleToResponse(schedule *entity.StaffSchedule) *dto.StaffScheduleResponse {
	if schedule == nil {
		return nil
	}

	isActive := true
	if schedule.IsActive != nil {
		isActive = *schedule.IsActive
	}

	return &dto.StaffScheduleResponse{
		ID:        schedule.ID,
		DoctorID:  schedule.DoctorID,
		Weekday:   schedule.Weekday,
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
		IsActive:  isActive,
		UpdatedAt: schedule.UpdatedAt,
	}
}

// SchedulesToResponses converts a slice of StaffSchedule entities to slice of StaffScheduleResponse DTOs
func SchedulesToResponses(schedules []entity.StaffSchedule) []dto.StaffScheduleResponse {
	responses := make([]dto.StaffScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ScheduleToResponse(&schedules[i])
	}
	return responses
}
