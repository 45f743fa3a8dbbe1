// Package auditlog persists audit events and exposes them for review.
package auditlog

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a stored audit event. Details are redacted before they reach the
// repository, so contact information never lands in the table.
type Entry struct {
	ID         uuid.UUID         `json:"id"`
	Actor      uuid.UUID         `json:"actor"`
	Action     string            `json:"action"`
	Resource   string            `json:"resource"`
	ResourceID uuid.UUID         `json:"resource_id"`
	Details    map[string]string `json:"details,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
