package profile

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func validProfile() *Profile {
	return &Profile{
		OwnerID:         uuid.New(),
		Weekdays:        []int{1, 2, 3, 4, 5},
		StartTime:       "09:00",
		EndTime:         "18:00",
		SlotDurationMin: 30,
		LeadTimeHours:   2,
	}
}

func TestProfile_Validate_OK(t *testing.T) {
	if err := validProfile().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProfile_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"start after end", func(p *Profile) { p.StartTime = "18:00"; p.EndTime = "09:00" }},
		{"start equals end", func(p *Profile) { p.StartTime = "09:00"; p.EndTime = "09:00" }},
		{"bad start format", func(p *Profile) { p.StartTime = "9am" }},
		{"bad end format", func(p *Profile) { p.EndTime = "25:00" }},
		{"empty weekdays", func(p *Profile) { p.Weekdays = nil }},
		{"weekday out of range", func(p *Profile) { p.Weekdays = []int{1, 7} }},
		{"negative weekday", func(p *Profile) { p.Weekdays = []int{-1} }},
		{"duplicate weekday", func(p *Profile) { p.Weekdays = []int{1, 1} }},
		{"slot too short", func(p *Profile) { p.SlotDurationMin = 10 }},
		{"slot too long", func(p *Profile) { p.SlotDurationMin = 481 }},
		{"negative lead time", func(p *Profile) { p.LeadTimeHours = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestProfile_WorksOn(t *testing.T) {
	p := validProfile() // Mon-Fri
	if p.WorksOn(time.Sunday) {
		t.Error("expected Sunday to be non-working")
	}
	if !p.WorksOn(time.Monday) {
		t.Error("expected Monday to be working")
	}
	if p.WorksOn(time.Saturday) {
		t.Error("expected Saturday to be non-working")
	}
}

func TestProfile_Window(t *testing.T) {
	p := validProfile()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	start, end := p.Window(date)
	if start.Hour() != 9 || start.Minute() != 0 {
		t.Errorf("expected window start 09:00, got %s", start.Format(TimeLayout))
	}
	if end.Hour() != 18 || end.Minute() != 0 {
		t.Errorf("expected window end 18:00, got %s", end.Format(TimeLayout))
	}
	if start.Day() != 2 || end.Day() != 2 {
		t.Error("expected window anchored to the given date")
	}
}
