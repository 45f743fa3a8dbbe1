package auditlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/slotbook/slotbook/internal/platform/audit"
)

// Service stores audit events in Postgres and serves review queries. It
// implements audit.Recorder: Record redacts contact details, then writes.
// Insert failures are logged and dropped so a broken audit sink never blocks
// a booking.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Record(ctx context.Context, event audit.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	e := &Entry{
		ID:         uuid.New(),
		Actor:      event.Actor,
		Action:     event.Action,
		Resource:   event.Resource,
		ResourceID: event.ResourceID,
		Details:    audit.Redact(event.Details),
		CreatedAt:  event.Timestamp,
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		s.logger.Error().Err(err).Str("audit_action", event.Action).Msg("audit insert failed")
	}
}

func (s *Service) Get(ctx context.Context, actor, id uuid.UUID) (*Entry, error) {
	return s.repo.GetByID(ctx, actor, id)
}

func (s *Service) Search(ctx context.Context, actor uuid.UUID, filter Filter, limit, offset int) ([]*Entry, int, error) {
	return s.repo.Search(ctx, actor, filter, limit, offset)
}
