package profile

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the wall-clock format used for working-hours boundaries and
// slot output. All times are local to the owner; no timezone conversion.
const TimeLayout = "15:04"

const (
	MinSlotDurationMin = 15
	MaxSlotDurationMin = 480
)

// Profile holds a professional's availability configuration. Weekdays use
// 0-6 with Sunday as 0. One profile per owner; updates replace it in place.
type Profile struct {
	OwnerID         uuid.UUID `db:"owner_id" json:"owner_id"`
	Weekdays        []int     `db:"weekdays" json:"weekdays"`
	StartTime       string    `db:"start_time" json:"start_time"`
	EndTime         string    `db:"end_time" json:"end_time"`
	SlotDurationMin int       `db:"slot_duration_min" json:"slot_duration_min"`
	LeadTimeHours   int       `db:"lead_time_hours" json:"lead_time_hours"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Validate checks the profile's invariants. It returns the first violation
// found.
func (p *Profile) Validate() error {
	start, err := time.Parse(TimeLayout, p.StartTime)
	if err != nil {
		return fmt.Errorf("start_time must be in HH:MM format: %q", p.StartTime)
	}
	end, err := time.Parse(TimeLayout, p.EndTime)
	if err != nil {
		return fmt.Errorf("end_time must be in HH:MM format: %q", p.EndTime)
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time %s must be before end_time %s", p.StartTime, p.EndTime)
	}

	if len(p.Weekdays) == 0 {
		return fmt.Errorf("at least one working weekday is required")
	}
	seen := make(map[int]bool, len(p.Weekdays))
	for _, d := range p.Weekdays {
		if d < 0 || d > 6 {
			return fmt.Errorf("weekday %d out of range 0-6", d)
		}
		if seen[d] {
			return fmt.Errorf("weekday %d listed twice", d)
		}
		seen[d] = true
	}

	if p.SlotDurationMin < MinSlotDurationMin || p.SlotDurationMin > MaxSlotDurationMin {
		return fmt.Errorf("slot_duration_min must be between %d and %d, got %d",
			MinSlotDurationMin, MaxSlotDurationMin, p.SlotDurationMin)
	}
	if p.LeadTimeHours < 0 {
		return fmt.Errorf("lead_time_hours must not be negative, got %d", p.LeadTimeHours)
	}
	return nil
}

// WorksOn reports whether the given weekday (time.Weekday, Sunday=0) is a
// working day.
func (p *Profile) WorksOn(day time.Weekday) bool {
	for _, d := range p.Weekdays {
		if d == int(day) {
			return true
		}
	}
	return false
}

// Window returns the working-hours boundaries anchored to the given date.
func (p *Profile) Window(date time.Time) (start, end time.Time) {
	s, _ := time.Parse(TimeLayout, p.StartTime)
	e, _ := time.Parse(TimeLayout, p.EndTime)
	y, m, d := date.Date()
	start = time.Date(y, m, d, s.Hour(), s.Minute(), 0, 0, date.Location())
	end = time.Date(y, m, d, e.Hour(), e.Minute(), 0, 0, date.Location())
	return start, end
}
