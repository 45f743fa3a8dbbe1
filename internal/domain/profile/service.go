package profile

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

func (s *Service) Get(ctx context.Context, ownerID uuid.UUID) (*Profile, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// Save validates and replaces the owner's profile.
func (s *Service) Save(ctx context.Context, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Event{
		Actor:      p.OwnerID,
		Action:     "profile.saved",
		Resource:   "availability_profile",
		ResourceID: p.OwnerID,
		Details: map[string]string{
			"start_time": p.StartTime,
			"end_time":   p.EndTime,
		},
	})
	return nil
}
