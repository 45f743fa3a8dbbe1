package client

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists clients. All lookups are scoped to an owner and
// exclude soft-deleted rows.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Client, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Client, int, error)
	Update(ctx context.Context, c *Client) error
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error
}
