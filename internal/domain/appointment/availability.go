package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slotbook/slotbook/internal/domain/catalog"
	"github.com/slotbook/slotbook/internal/domain/profile"
)

// Reasons reported when a day has no bookable slots for configuration
// reasons rather than because it is fully booked.
const (
	ReasonNonWorkingDay = "no atendimento neste dia"
	ReasonLeadTime      = "antecedência mínima não atendida"
)

// Availability is the bookable-slot list for one owner and date. Slots are
// wall-clock strings on the owner's grid; Reason explains an empty list
// when the day itself is not bookable.
type Availability struct {
	Date   string   `json:"date"`
	Slots  []string `json:"slots"`
	Reason string   `json:"reason,omitempty"`
}

// Availability resolves the bookable slots for a date. serviceID selects the
// effective duration; nil falls back to the profile's slot duration.
// excludeID omits one appointment from conflict filtering, for reschedule
// previews. "now" is captured once and used for every temporal check.
func (s *Service) Availability(ctx context.Context, ownerID uuid.UUID, date time.Time, serviceID, excludeID *uuid.UUID) (*Availability, error) {
	now := s.clock.Now()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, ErrInvalidDate
	}

	prof, err := s.profiles.GetByOwner(ctx, ownerID)
	if errors.Is(err, profile.ErrNotFound) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	result := &Availability{Date: day.Format("2006-01-02"), Slots: []string{}}

	if !prof.WorksOn(day.Weekday()) {
		result.Reason = ReasonNonWorkingDay
		return result, nil
	}

	// The whole day is gated on its first slot satisfying the lead time.
	workStart, _ := prof.Window(day)
	if workStart.Sub(now) < time.Duration(prof.LeadTimeHours)*time.Hour {
		// Today still gets per-slot filtering below instead of a blanket
		// rejection, otherwise same-day booking would never work with a
		// zero lead time.
		if prof.LeadTimeHours > 0 {
			result.Reason = ReasonLeadTime
			return result, nil
		}
	}

	duration := prof.SlotDurationMin
	if serviceID != nil {
		svc, err := s.services.Get(ctx, ownerID, *serviceID)
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load service: %w", err)
		}
		if !svc.Active {
			return nil, ErrServiceNotFound
		}
		duration = svc.DurationMin
	}

	candidates := GenerateSlots(prof, day, duration)

	existing, err := s.repo.ListForDay(ctx, ownerID, day, excludeID)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	span := time.Duration(duration) * time.Minute
	for _, slot := range candidates {
		if conflictsAny(slot, slot.Add(span), existing) {
			continue
		}
		if day.Equal(today) && !slot.After(now) {
			continue
		}
		result.Slots = append(result.Slots, slot.Format(profile.TimeLayout))
	}
	return result, nil
}

func conflictsAny(start, end time.Time, existing []*Appointment) bool {
	for _, a := range existing {
		if Overlaps(start, end, a.StartTime, a.EndTime()) {
			return true
		}
	}
	return false
}
