package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// noShowGracePeriod is how long after the start a client gets before
	// they can be marked a no-show.
	noShowGracePeriod = 15 * time.Minute
	// cancellationWindow is the cutoff before the start inside which
	// cancellation is blocked.
	cancellationWindow = 2 * time.Hour
)

// transitions is the allowed status machine. COMPLETED is terminal;
// CANCELLED and NO_SHOW can re-enter the flow through rebooking.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {StatusScheduled},
	StatusNoShow:    {StatusScheduled},
}

// CanTransition reports whether the table allows from -> to, ignoring time
// gates.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ChangeStatus applies a lifecycle transition. On top of the table, three
// time gates apply: completion requires the start to have passed, a no-show
// requires the grace period to have elapsed, and cancellation is blocked
// inside the cancellation window (past-due appointments may still be
// force-cancelled).
func (s *Service) ChangeStatus(ctx context.Context, ownerID, id uuid.UUID, target Status) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if !target.Valid() || !CanTransition(a.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, target)
	}

	now := s.clock.Now()
	switch target {
	case StatusCompleted:
		if now.Before(a.StartTime) {
			return nil, ErrFutureAppointment
		}
	case StatusNoShow:
		if now.Before(a.StartTime.Add(noShowGracePeriod)) {
			return nil, ErrTooEarly
		}
	case StatusCancelled:
		until := a.StartTime.Sub(now)
		if until > 0 && until < cancellationWindow {
			return nil, ErrCancellationWindow
		}
	}

	if err := s.repo.UpdateStatus(ctx, ownerID, id, target); err != nil {
		return nil, err
	}

	from := a.Status
	a.Status = target
	a.UpdatedAt = now

	s.record(ctx, ownerID, "appointment.status_changed", id, map[string]string{
		"from": string(from),
		"to":   string(target),
	})
	return a, nil
}
