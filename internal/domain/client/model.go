package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxNameLen  = 120
	maxEmailLen = 254
	maxPhoneLen = 32
	maxNotesLen = 2000
)

// Client is an end customer of a professional. Soft-deleted clients keep
// their history but disappear from lookups and lists.
type Client struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	OwnerID   uuid.UUID  `db:"owner_id" json:"owner_id"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email,omitempty"`
	Phone     string     `db:"phone" json:"phone,omitempty"`
	Notes     string     `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// Validate checks the client's invariants.
func (c *Client) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("name must be at most %d characters", maxNameLen)
	}
	if c.Email != "" {
		if len(c.Email) > maxEmailLen || !strings.Contains(c.Email, "@") {
			return fmt.Errorf("invalid email address")
		}
	}
	if len(c.Phone) > maxPhoneLen {
		return fmt.Errorf("phone must be at most %d characters", maxPhoneLen)
	}
	if len(c.Notes) > maxNotesLen {
		return fmt.Errorf("notes must be at most %d characters", maxNotesLen)
	}
	return nil
}
