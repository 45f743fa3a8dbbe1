package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/slotbook/slotbook/internal/domain/catalog"
	"github.com/slotbook/slotbook/internal/domain/client"
	"github.com/slotbook/slotbook/internal/domain/profile"
)

// Repository persists appointments. Create and Update re-check conflicts
// against the latest stored state inside one transaction and return
// ErrTimeConflict on collision, so two concurrent bookings for overlapping
// intervals can never both commit.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Appointment, error)

	// ListForDay returns the owner's non-cancelled, non-deleted appointments
	// whose start falls on the given date, ordered by start time. excludeID
	// skips one record to support reschedule previews.
	ListForDay(ctx context.Context, ownerID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]*Appointment, error)

	// ListRange returns non-deleted appointments of any status starting
	// within [from, to), newest first.
	ListRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time, limit, offset int) ([]*Appointment, int, error)

	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) error
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error
}

// ProfileFinder looks up the owner's availability profile.
type ProfileFinder interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error)
}

// ServiceCatalog looks up the owner's service offerings.
type ServiceCatalog interface {
	Get(ctx context.Context, ownerID, id uuid.UUID) (*catalog.Service, error)
}

// ClientDirectory looks up the owner's clients.
type ClientDirectory interface {
	Get(ctx context.Context, ownerID, id uuid.UUID) (*client.Client, error)
}
