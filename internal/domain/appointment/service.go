package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/slotbook/slotbook/internal/platform/audit"
)

// Service is the scheduling engine: it resolves availability, books and
// reschedules appointments, and drives the status lifecycle.
type Service struct {
	repo     Repository
	profiles ProfileFinder
	services ServiceCatalog
	clients  ClientDirectory
	clock    Clock
	audit    audit.Recorder
}

func NewService(repo Repository, profiles ProfileFinder, services ServiceCatalog, clients ClientDirectory, clock Clock, recorder audit.Recorder) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		services: services,
		clients:  clients,
		clock:    clock,
		audit:    recorder,
	}
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListRange(ctx, ownerID, from, to, limit, offset)
}

// Delete soft-deletes an appointment, keeping it for the owner's records.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, ownerID, id); err != nil {
		return err
	}
	s.record(ctx, ownerID, "appointment.deleted", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, actor uuid.UUID, action string, id uuid.UUID, details map[string]string) {
	s.audit.Record(ctx, audit.Event{
		Actor:      actor,
		Action:     action,
		Resource:   "appointment",
		ResourceID: id,
		Details:    details,
		Timestamp:  s.clock.Now(),
	})
}
