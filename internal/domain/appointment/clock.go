package appointment

import "time"

// Clock supplies "now" so tests can control time. Each operation captures
// the instant once and uses it for every check within that operation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }
