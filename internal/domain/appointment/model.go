package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment is a booked time slot. The client is either a reference into
// the client directory or freeform contact fields, never both. The service
// fields are denormalized at booking time so later catalog edits do not
// rewrite history.
type Appointment struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	OwnerID     uuid.UUID  `db:"owner_id" json:"owner_id"`
	ClientID    *uuid.UUID `db:"client_id" json:"client_id,omitempty"`
	ClientName  string     `db:"client_name" json:"client_name,omitempty"`
	ClientEmail string     `db:"client_email" json:"client_email,omitempty"`
	ClientPhone string     `db:"client_phone" json:"client_phone,omitempty"`
	ServiceID   *uuid.UUID `db:"service_id" json:"service_id,omitempty"`
	ServiceName string     `db:"service_name" json:"service_name"`
	DurationMin int        `db:"duration_min" json:"duration_min"`
	PriceCents  *int64     `db:"price_cents" json:"price_cents,omitempty"`
	StartTime   time.Time  `db:"start_time" json:"start_time"`
	Status      Status     `db:"status" json:"status"`
	Notes       string     `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at" json:"-"`
}

// EndTime returns the exclusive end of the occupied interval.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMin) * time.Minute)
}

// BookingRequest carries the fields a caller supplies to create or
// reschedule an appointment.
type BookingRequest struct {
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	ClientName  string     `json:"client_name,omitempty"`
	ClientEmail string     `json:"client_email,omitempty"`
	ClientPhone string     `json:"client_phone,omitempty"`
	ServiceID   *uuid.UUID `json:"service_id,omitempty"`
	ServiceName string     `json:"service_name,omitempty"`
	DurationMin int        `json:"duration_min,omitempty"`
	PriceCents  *int64     `json:"price_cents,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	Notes       string     `json:"notes,omitempty"`
}
