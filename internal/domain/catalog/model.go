package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinDurationMin = 15
	MaxDurationMin = 480
	maxNameLen     = 120
)

// Service is an offering a professional can be booked for. Price is in
// cents; nil means no price listed.
type Service struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	Name        string    `db:"name" json:"name"`
	DurationMin int       `db:"duration_min" json:"duration_min"`
	PriceCents  *int64    `db:"price_cents" json:"price_cents,omitempty"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Validate checks the service's invariants.
func (s *Service) Validate() error {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("name must be at most %d characters", maxNameLen)
	}
	if s.DurationMin < MinDurationMin || s.DurationMin > MaxDurationMin {
		return fmt.Errorf("duration_min must be between %d and %d, got %d",
			MinDurationMin, MaxDurationMin, s.DurationMin)
	}
	if s.PriceCents != nil && *s.PriceCents < 0 {
		return fmt.Errorf("price_cents must not be negative")
	}
	return nil
}
