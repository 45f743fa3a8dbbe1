// Package audit records booking mutations for later review. Recording is
// fire-and-forget: a failing audit sink never fails the operation it
// describes.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event describes a single audited action. A zero Timestamp is stamped by
// the recorder; only callers with an injected clock fill it themselves.
type Event struct {
	Actor      uuid.UUID         `json:"actor"`
	Action     string            `json:"action"`
	Resource   string            `json:"resource"`
	ResourceID uuid.UUID         `json:"resource_id"`
	Details    map[string]string `json:"details,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Recorder persists audit events. Implementations must swallow their own
// errors; callers do not check the outcome.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// piiDetailKeys lists detail fields that must never reach an audit sink in
// the clear.
var piiDetailKeys = map[string]struct{}{
	"client_name":  {},
	"client_email": {},
	"client_phone": {},
}

// Redact returns a copy of details with contact fields masked.
func Redact(details map[string]string) map[string]string {
	if details == nil {
		return nil
	}
	out := make(map[string]string, len(details))
	for k, v := range details {
		if _, pii := piiDetailKeys[k]; pii && v != "" {
			out[k] = "***"
			continue
		}
		out[k] = v
	}
	return out
}

// LogRecorder writes audit events to the structured log.
type LogRecorder struct {
	logger zerolog.Logger
}

func NewLogRecorder(logger zerolog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) Record(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	evt := r.logger.Info().
		Str("audit_action", event.Action).
		Str("resource", event.Resource).
		Str("resource_id", event.ResourceID.String()).
		Time("at", event.Timestamp)
	if event.Actor != uuid.Nil {
		evt = evt.Str("actor", event.Actor.String())
	}
	for k, v := range Redact(event.Details) {
		evt = evt.Str(k, v)
	}
	evt.Msg("audit")
}

// NopRecorder discards all events. Used in tests and when auditing is off.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Event) {}
