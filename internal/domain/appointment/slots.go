package appointment

import (
	"time"

	"github.com/slotbook/slotbook/internal/domain/profile"
)

// GenerateSlots returns the candidate start times for a date, ascending.
// Starts advance on the profile's fixed grid regardless of the service
// duration; a candidate is kept while its full service interval still fits
// inside the working-hours window. A non-working weekday yields nothing.
//
// When the service duration exceeds the grid step, consecutive candidates
// describe mutually overlapping occupied intervals. Conflict filtering
// downstream resolves that once one of them is actually booked.
func GenerateSlots(p *profile.Profile, date time.Time, serviceDurationMin int) []time.Time {
	if !p.WorksOn(date.Weekday()) {
		return nil
	}

	workStart, workEnd := p.Window(date)
	step := time.Duration(p.SlotDurationMin) * time.Minute
	serviceSpan := time.Duration(serviceDurationMin) * time.Minute

	var slots []time.Time
	for cur := workStart; !cur.Add(serviceSpan).After(workEnd); cur = cur.Add(step) {
		slots = append(slots, cur)
	}
	return slots
}
