package dto

import "time"

type CreateHolidayRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	StaffType  string `json:"staff_type" validate:"required,oneof=all student academic clinical"`
	Department string `json:"department" validate:"omitempty,max=100"`
	IsBlocking *bool  `json:"is_blocking" validate:"omitempty"`
}

type UpdateHolidayRequest struct {
	Name       string `json:"name" validate:"omitempty,max=255"`
	StartDate  string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	StaffType  string `json:"staff_type" validate:"omitempty,oneof=all student academic clinical"`
	Department string `json:"department" validate:"omitempty,max=100"`
	IsBlocking *bool  `json:"is_blocking" validate:"omitempty"`
}

type HolidayResponse struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	StaffType  string    `json:"staff_type"`
	Department string    `json:"department,omitempty"`
	IsBlocking bool      `json:"is_blocking"`
	CreatedAt  time.Time `json:"created_at"`
}

type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
	Total    int               `json:"total"`
}
