package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertStaffScheduleRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Weekday   int       `json:"weekday" validate:"gte=0,lte=6"`
	StartTime string    `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string    `json:"end_time" validate:"required,datetime=15:04"`
	IsActive  *bool     `json:"is_active" validate:"omitempty"`
}

type StaffScheduleResponse struct {
	ID        int       `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Weekday   int       `json:"weekday"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StaffScheduleListResponse struct {
	Schedules []StaffScheduleResponse `json:"schedules"`
	Total     int                     `json:"total"`
}
