package auditlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, actor, id uuid.UUID) (*Entry, error)
	Search(ctx context.Context, actor uuid.UUID, filter Filter, limit, offset int) ([]*Entry, int, error)
}

// Filter narrows a search. Zero values match everything.
type Filter struct {
	Action   string
	Resource string
	From     time.Time
	To       time.Time
}
