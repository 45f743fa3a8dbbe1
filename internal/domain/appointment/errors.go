package appointment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidDate rejects availability queries for dates before today.
	ErrInvalidDate = errors.New("date must not be in the past")
	// ErrPastDate rejects bookings whose start is not in the future.
	ErrPastDate = errors.New("appointment start must be in the future")
	// ErrNotConfigured means the owner has no availability profile yet.
	ErrNotConfigured = errors.New("availability profile not configured")
	// ErrClientNotFound means the referenced client does not exist for this owner.
	ErrClientNotFound = errors.New("client not found")
	// ErrServiceNotFound means the referenced service is absent or inactive.
	ErrServiceNotFound = errors.New("service not found")
	// ErrNotFound means the appointment does not exist for this owner.
	ErrNotFound = errors.New("appointment not found")
	// ErrTimeConflict means the requested interval overlaps a booked one.
	ErrTimeConflict = errors.New("time slot already booked")

	// ErrInvalidTransition rejects a status change the lifecycle table forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrFutureAppointment rejects completing an appointment before it starts.
	ErrFutureAppointment = errors.New("appointment has not started yet")
	// ErrTooEarly rejects a no-show mark inside the grace period.
	ErrTooEarly = errors.New("no-show grace period has not elapsed")
	// ErrCancellationWindow rejects cancellation too close to the start.
	ErrCancellationWindow = errors.New("too close to the appointment to cancel")
)

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
