package service

import (
	"fmt"
	"time"

	"university-clinic-api/internal/domain/entity"
	"university-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	// SlotDuration is the fixed booking grid step.
	SlotDuration = 30 * time.Minute

	// Default working-hours window used when a doctor has no configured
	// schedule or the configured one fails to parse.
	defaultWorkStart = "09:00"
	defaultWorkEnd   = "17:00"
)

// SlotGrid is the availability result for one doctor (or all doctors
// aggregated) on one date.
type SlotGrid struct {
	AvailableSlots []string
	BookedSlots    []string
}

// AvailabilityService computes bookable time slots for a doctor and date
// from working hours, existing appointments and the academic holiday
// calendar.
type AvailabilityService struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	scheduleRepo    repository.StaffScheduleRepository
	holidayRepo     repository.AcademicHolidayRepository
	doctorRepo      repository.DoctorProfileRepository
	now             Clock
}

func NewAvailabilityService(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	scheduleRepo repository.StaffScheduleRepository,
	holidayRepo repository.AcademicHolidayRepository,
	doctorRepo repository.DoctorProfileRepository,
) *AvailabilityService {
	return &AvailabilityService{
		log:             log,
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		holidayRepo:     holidayRepo,
		doctorRepo:      doctorRepo,
		now:             systemClock,
	}
}

// WithClock overrides the time source. Test hook.
func (s *AvailabilityService) WithClock(clock Clock) *AvailabilityService {
	s.now = clock
	return s
}

// Resolve computes the free and booked slot lists for the date. A nil
// doctorID aggregates bookings across all doctors ("any available doctor").
func (s *AvailabilityService) Resolve(db *gorm.DB, doctorID *uuid.UUID, date time.Time) (*SlotGrid, error) {
	blocked, err := s.dateBlockedByHoliday(db, doctorID, date)
	if err != nil {
		return nil, err
	}
	if blocked {
		return &SlotGrid{AvailableSlots: []string{}, BookedSlots: []string{}}, nil
	}

	grid := s.slotGridFor(db, doctorID, date)

	appointments, err := s.appointmentRepo.FindBookedByDoctorAndDate(db, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("load booked appointments: %w", err)
	}

	booked := make(map[string]bool)
	for _, apt := range appointments {
		for _, slot := range overlappedSlots(grid, date, &apt) {
			booked[slot] = true
		}
	}

	result := &SlotGrid{AvailableSlots: []string{}, BookedSlots: []string{}}
	for _, slot := range grid {
		if booked[slot] {
			result.BookedSlots = append(result.BookedSlots, slot)
		} else {
			result.AvailableSlots = append(result.AvailableSlots, slot)
		}
	}
	return result, nil
}

// IsSlotFree reports whether one specific slot is bookable on the grid.
func (s *AvailabilityService) IsSlotFree(db *gorm.DB, doctorID *uuid.UUID, date time.Time, slot string) (bool, error) {
	grid, err := s.Resolve(db, doctorID, date)
	if err != nil {
		return false, err
	}
	for _, free := range grid.AvailableSlots {
		if free == slot {
			return true, nil
		}
	}
	return false, nil
}

// dateBlockedByHoliday reports whether a blocking academic holiday covers
// the date for the doctor's staff type and department. Doctors are clinical
// staff for holiday purposes.
func (s *AvailabilityService) dateBlockedByHoliday(db *gorm.DB, doctorID *uuid.UUID, date time.Time) (bool, error) {
	holidays, err := s.holidayRepo.FindCoveringDate(db, date)
	if err != nil {
		return false, fmt.Errorf("load holidays: %w", err)
	}
	if len(holidays) == 0 {
		return false, nil
	}

	department := ""
	if doctorID != nil {
		profile, err := s.doctorRepo.FindByUserID(db, *doctorID)
		if err != nil {
			return false, fmt.Errorf("load doctor profile: %w", err)
		}
		if profile != nil {
			department = profile.Department
		}
	}

	for _, h := range holidays {
		if h.Covers(date, entity.StaffTypeClinical, department) {
			return true, nil
		}
	}
	return false, nil
}

// slotGridFor builds the candidate slot grid from the doctor's working
// hours. Any failure to load or parse the configured window degrades to
// the clinic default grid rather than failing the request.
func (s *AvailabilityService) slotGridFor(db *gorm.DB, doctorID *uuid.UUID, date time.Time) []string {
	start, end := defaultWorkStart, defaultWorkEnd

	if doctorID != nil {
		schedule, err := s.scheduleRepo.FindByDoctorAndWeekday(db, *doctorID, int(date.Weekday()))
		if err != nil {
			s.log.Warnf("Working hours lookup failed for doctor %s, using default window: %+v", doctorID, err)
		} else if schedule != nil {
			start, end = schedule.StartTime, schedule.EndTime
		}
	}

	grid, err := buildSlotGrid(start, end)
	if err != nil {
		// degraded mode: fall back to the default grid instead of failing
		s.log.Warnf("Unparseable working hours %q-%q, falling back to default slot grid: %+v", start, end, err)
		grid, _ = buildSlotGrid(defaultWorkStart, defaultWorkEnd)
	}
	return grid
}

// buildSlotGrid generates HH:MM slot labels on the 30-minute grid over
// the half-open window [start, end).
func buildSlotGrid(start, end string) ([]string, error) {
	from, err := parseClockTime(start)
	if err != nil {
		return nil, fmt.Errorf("parse window start: %w", err)
	}
	to, err := parseClockTime(end)
	if err != nil {
		return nil, fmt.Errorf("parse window end: %w", err)
	}
	if !to.After(from) {
		return nil, fmt.Errorf("window end %s not after start %s", end, start)
	}

	var grid []string
	for t := from; t.Before(to); t = t.Add(SlotDuration) {
		grid = append(grid, t.Format("15:04"))
	}
	return grid, nil
}

// parseClockTime accepts HH:MM and HH:MM:SS, matching how postgres time
// columns scan back.
func parseClockTime(value string) (time.Time, error) {
	if t, err := time.Parse("15:04", value); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", value)
}

// overlappedSlots returns every grid slot the appointment interval
// overlaps. Slots are half-open [start, start+30min); a booking longer
// than one slot blocks all the slots it touches.
func overlappedSlots(grid []string, date time.Time, apt *entity.Appointment) []string {
	aptStart := apt.ScheduledAt()
	aptEnd := apt.EndsAt()

	var out []string
	for _, slot := range grid {
		t, err := parseClockTime(slot)
		if err != nil {
			continue
		}
		slotStart := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
		slotEnd := slotStart.Add(SlotDuration)
		if slotStart.Before(aptEnd) && aptStart.Before(slotEnd) {
			out = append(out, slot)
		}
	}
	return out
}
