package appointment

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	h := func(hours float64) time.Time { return base.Add(time.Duration(hours * float64(time.Hour))) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", h(0), h(1), h(0), h(1), true},
		{"contained", h(0), h(3), h(1), h(2), true},
		{"partial front", h(0), h(2), h(1), h(3), true},
		{"partial back", h(1), h(3), h(0), h(2), true},
		{"back to back", h(0), h(1), h(1), h(2), false},
		{"back to back reversed", h(1), h(2), h(0), h(1), false},
		{"disjoint", h(0), h(1), h(2), h(3), false},
		{"one minute overlap", h(0), h(1), base.Add(59 * time.Minute), h(2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// The definition is symmetric
			if Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd) != got {
				t.Error("Overlaps is not symmetric")
			}
		})
	}
}
