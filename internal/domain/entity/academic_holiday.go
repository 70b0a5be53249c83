package entity

import (
	"time"
)

// Staff type constants used by the academic holiday calendar
const (
	StaffTypeStudent  = "student"
	StaffTypeAcademic = "academic"
	StaffTypeClinical = "clinical"
	StaffTypeAll      = "all"
)

// AcademicHoliday is a calendar constraint consumed by the availability
// resolver. The appointment workflow only reads these records.
type AcademicHoliday struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	StartDate  time.Time `gorm:"type:date;not null;index" json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null;index" json:"end_date"`
	Department string    `gorm:"type:varchar(100);index" json:"department,omitempty"`
	StaffType  string    `gorm:"type:varchar(20);not null;default:'all'" json:"staff_type"`
	IsBlocking bool      `gorm:"not null;default:true" json:"is_blocking"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AcademicHoliday) TableName() string {
	return "academic_holidays"
}

// Covers reports whether the holiday blocks the given date for the given
// staff type and department. Empty department on the holiday means
// university-wide.
func (h *AcademicHoliday) Covers(date time.Time, staffType, department string) bool {
	if !h.IsBlocking {
		return false
	}
	day := date.Truncate(24 * time.Hour)
	if day.Before(h.StartDate.Truncate(24*time.Hour)) || day.After(h.EndDate.Truncate(24*time.Hour)) {
		return false
	}
	if h.StaffType != StaffTypeAll && staffType != "" && h.StaffType != staffType {
		return false
	}
	if h.Department != "" && department != "" && h.Department != department {
		return false
	}
	return true
}
