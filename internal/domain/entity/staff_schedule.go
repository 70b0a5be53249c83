package entity

import (
	"time"

	"github.com/google/uuid"
)

// StaffSchedule represents a doctor's configured working-hours window for a
// weekday. When no row exists for a doctor/weekday the availability resolver
// falls back to the clinic default window.
type StaffSchedule struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Weekday   int       `gorm:"not null;index" json:"weekday"` // 0 = Sunday ... 6 = Saturday
	StartTime string    `gorm:"type:time;not null" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (StaffSchedule) TableName() string {
	return "staff_schedules"
}
