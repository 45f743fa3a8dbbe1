package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists service offerings. All lookups are scoped to an owner.
type Repository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Service, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool, limit, offset int) ([]*Service, int, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// CountAppointments returns how many appointments reference the service.
	// Hard deletion is only allowed at zero.
	CountAppointments(ctx context.Context, ownerID, serviceID uuid.UUID) (int, error)
}
