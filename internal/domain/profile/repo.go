package profile

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists availability profiles. One row per owner; Save
// replaces any existing row.
type Repository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}
