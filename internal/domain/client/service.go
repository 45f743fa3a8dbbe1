package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/slotbook/slotbook/internal/platform/audit"
)

type Service struct {
	repo  Repository
	audit audit.Recorder
}

func NewService(repo Repository, recorder audit.Recorder) *Service {
	return &Service{repo: repo, audit: recorder}
}

func (s *Service) Create(ctx context.Context, c *Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	s.record(ctx, c.OwnerID, "client.created", c.ID, c)
	return nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Client, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Client, int, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *Service) Update(ctx context.Context, c *Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}
	s.record(ctx, c.OwnerID, "client.updated", c.ID, c)
	return nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, ownerID, id); err != nil {
		return err
	}
	s.record(ctx, ownerID, "client.deleted", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor uuid.UUID, action string, id uuid.UUID, c *Client) {
	var details map[string]string
	if c != nil {
		details = map[string]string{
			"client_name":  c.Name,
			"client_email": c.Email,
			"client_phone": c.Phone,
		}
	}
	s.audit.Record(ctx, audit.Event{
		Actor:      actor,
		Action:     action,
		Resource:   "client",
		ResourceID: id,
		Details:    details,
	})
}
