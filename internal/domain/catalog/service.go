package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/slotbook/slotbook/internal/platform/audit"
)

// ErrInUse is returned when a service with booked appointments is hard
// deleted. Such services can only be deactivated.
var ErrInUse = errors.New("service has appointments and cannot be deleted")

type Catalog struct {
	repo  Repository
	audit audit.Recorder
}

func NewCatalog(repo Repository, recorder audit.Recorder) *Catalog {
	return &Catalog{repo: repo, audit: recorder}
}

func (c *Catalog) Create(ctx context.Context, s *Service) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.Active = true
	if err := c.repo.Create(ctx, s); err != nil {
		return err
	}
	c.record(ctx, s.OwnerID, "service.created", s.ID, map[string]string{"name": s.Name})
	return nil
}

func (c *Catalog) Get(ctx context.Context, ownerID, id uuid.UUID) (*Service, error) {
	return c.repo.GetByID(ctx, ownerID, id)
}

func (c *Catalog) List(ctx context.Context, ownerID uuid.UUID, activeOnly bool, limit, offset int) ([]*Service, int, error) {
	return c.repo.ListByOwner(ctx, ownerID, activeOnly, limit, offset)
}

func (c *Catalog) Update(ctx context.Context, s *Service) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := c.repo.Update(ctx, s); err != nil {
		return err
	}
	c.record(ctx, s.OwnerID, "service.updated", s.ID, map[string]string{"name": s.Name})
	return nil
}

// Delete removes a service outright when nothing references it, otherwise
// it fails with ErrInUse. Callers should deactivate instead.
func (c *Catalog) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	count, err := c.repo.CountAppointments(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}
	if err := c.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	c.record(ctx, ownerID, "service.deleted", id, nil)
	return nil
}

// Deactivate hides the service from availability and new bookings without
// touching its history.
func (c *Catalog) Deactivate(ctx context.Context, ownerID, id uuid.UUID) error {
	s, err := c.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !s.Active {
		return nil
	}
	s.Active = false
	if err := c.repo.Update(ctx, s); err != nil {
		return err
	}
	c.record(ctx, ownerID, "service.deactivated", id, nil)
	return nil
}

func (c *Catalog) record(ctx context.Context, actor uuid.UUID, action string, id uuid.UUID, details map[string]string) {
	c.audit.Record(ctx, audit.Event{
		Actor:      actor,
		Action:     action,
		Resource:   "service",
		ResourceID: id,
		Details:    details,
	})
}
