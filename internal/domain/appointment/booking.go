package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/slotbook/slotbook/internal/domain/catalog"
	"github.com/slotbook/slotbook/internal/domain/client"
)

const (
	maxClientNameLen  = 120
	maxClientEmailLen = 254
	maxClientPhoneLen = 32
	maxServiceNameLen = 120
	maxNotesLen       = 2000
)

// Create validates and books a new appointment. Validation failures
// short-circuit in order: field shape, temporal bounds, referential
// integrity, then conflicts. The repository re-checks conflicts atomically
// at commit, so a slot that two callers race for is granted exactly once.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *BookingRequest) (*Appointment, error) {
	a, err := s.prepare(ctx, ownerID, req, nil)
	if err != nil {
		return nil, err
	}

	a.ID = uuid.New()
	a.Status = StatusScheduled

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.record(ctx, ownerID, "appointment.created", a.ID, map[string]string{
		"start_time":   a.StartTime.Format("2006-01-02 15:04"),
		"service":      a.ServiceName,
		"client_name":  a.ClientName,
		"client_email": a.ClientEmail,
		"client_phone": a.ClientPhone,
	})
	return a, nil
}

// Update reschedules or edits an existing appointment. The record keeps its
// status; status changes go through ChangeStatus. A cancelled or no-show
// appointment being given a new time re-enters the flow as SCHEDULED.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req *BookingRequest) (*Appointment, error) {
	existing, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	a, err := s.prepare(ctx, ownerID, req, &id)
	if err != nil {
		return nil, err
	}

	a.ID = existing.ID
	a.Status = existing.Status
	a.CreatedAt = existing.CreatedAt
	if existing.Status == StatusCancelled || existing.Status == StatusNoShow {
		a.Status = StatusScheduled
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.record(ctx, ownerID, "appointment.updated", a.ID, map[string]string{
		"start_time_before": existing.StartTime.Format("2006-01-02 15:04"),
		"start_time_after":  a.StartTime.Format("2006-01-02 15:04"),
		"client_name":       a.ClientName,
		"client_email":      a.ClientEmail,
		"client_phone":      a.ClientPhone,
	})
	return a, nil
}

// prepare runs the shared validation pipeline and returns the appointment
// ready to persist. excludeID skips the record being edited during the
// conflict pre-check.
func (s *Service) prepare(ctx context.Context, ownerID uuid.UUID, req *BookingRequest, excludeID *uuid.UUID) (*Appointment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !req.StartTime.After(now) {
		return nil, ErrPastDate
	}

	a := &Appointment{
		OwnerID:     ownerID,
		ClientID:    req.ClientID,
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientEmail: strings.TrimSpace(req.ClientEmail),
		ClientPhone: strings.TrimSpace(req.ClientPhone),
		ServiceID:   req.ServiceID,
		ServiceName: strings.TrimSpace(req.ServiceName),
		DurationMin: req.DurationMin,
		PriceCents:  req.PriceCents,
		StartTime:   req.StartTime,
		Notes:       req.Notes,
	}

	if req.ClientID != nil {
		cl, err := s.clients.Get(ctx, ownerID, *req.ClientID)
		if errors.Is(err, client.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load client: %w", err)
		}
		a.ClientName = cl.Name
		a.ClientEmail = cl.Email
		a.ClientPhone = cl.Phone
	}

	if req.ServiceID != nil {
		svc, err := s.services.Get(ctx, ownerID, *req.ServiceID)
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load service: %w", err)
		}
		if !svc.Active {
			return nil, ErrServiceNotFound
		}
		a.ServiceName = svc.Name
		a.DurationMin = svc.DurationMin
		a.PriceCents = svc.PriceCents
	}

	// Pre-check with the same overlap definition the repository re-applies
	// at commit. Catching the common case here avoids burning a transaction
	// on a booking the caller can already see is taken.
	existing, err := s.repo.ListForDay(ctx, ownerID, a.StartTime, excludeID)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	if conflictsAny(a.StartTime, a.EndTime(), existing) {
		return nil, ErrTimeConflict
	}

	return a, nil
}

func validateRequest(req *BookingRequest) error {
	fields := make(map[string]string)

	if req.StartTime.IsZero() {
		fields["start_time"] = "is required"
	}

	hasFreeformClient := strings.TrimSpace(req.ClientName) != "" ||
		strings.TrimSpace(req.ClientEmail) != "" ||
		strings.TrimSpace(req.ClientPhone) != ""
	switch {
	case req.ClientID == nil && strings.TrimSpace(req.ClientName) == "":
		fields["client"] = "either client_id or client_name is required"
	case req.ClientID != nil && hasFreeformClient:
		fields["client"] = "client_id and freeform client fields are mutually exclusive"
	}

	if hasFreeformClient && len(strings.TrimSpace(req.ClientName)) > maxClientNameLen {
		fields["client_name"] = fmt.Sprintf("must be at most %d characters", maxClientNameLen)
	}
	if email := strings.TrimSpace(req.ClientEmail); email != "" {
		if len(email) > maxClientEmailLen || !strings.Contains(email, "@") {
			fields["client_email"] = "must be a valid email address"
		}
	}
	if len(strings.TrimSpace(req.ClientPhone)) > maxClientPhoneLen {
		fields["client_phone"] = fmt.Sprintf("must be at most %d characters", maxClientPhoneLen)
	}

	if req.ServiceID == nil {
		if strings.TrimSpace(req.ServiceName) == "" {
			fields["service"] = "either service_id or service_name is required"
		}
		if req.DurationMin <= 0 {
			fields["duration_min"] = "must be positive"
		}
	}
	if len(strings.TrimSpace(req.ServiceName)) > maxServiceNameLen {
		fields["service_name"] = fmt.Sprintf("must be at most %d characters", maxServiceNameLen)
	}
	if req.PriceCents != nil && *req.PriceCents < 0 {
		fields["price_cents"] = "must not be negative"
	}
	if len(req.Notes) > maxNotesLen {
		fields["notes"] = fmt.Sprintf("must be at most %d characters", maxNotesLen)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
