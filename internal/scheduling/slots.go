package scheduling

import "sort"

// FreeSlot is a computed interval of exactly the requested duration,
// inside a working window and disjoint from every existing reservation.
type FreeSlot struct {
	Interval Interval `json:"interval"`
}

// FindFreeSlots computes candidate slots of durationMinutes inside the
// given working windows, avoiding the existing reservations. Each window
// is processed independently.
//
// Per gap the finder emits only the earliest-starting slot of exactly the
// requested duration, not every sliding position. Greedy one-slot-per-gap
// is deliberate policy: it keeps the candidate list short and surfaces
// the soonest usable start in each gap.
//
// An empty result is a valid "no availability" answer, not an error.
func FindFreeSlots(existing []Reservation, durationMinutes int, workingWindows []Interval) ([]FreeSlot, error) {
	if durationMinutes <= 0 {
		return nil, newValidationError("duration", "must be a positive number of minutes")
	}
	if len(workingWindows) == 0 {
		return nil, newConfigurationError("no working-hours windows configured")
	}
	for _, w := range workingWindows {
		if w.End.Minutes() <= w.Start.Minutes() {
			return nil, newConfigurationError("zero-width working-hours window " + w.String())
		}
	}

	var slots []FreeSlot
	for _, window := range workingWindows {
		slots = append(slots, slotsInWindow(existing, durationMinutes, window)...)
	}
	return slots, nil
}

func slotsInWindow(existing []Reservation, durationMinutes int, window Interval) []FreeSlot {
	// Only reservations touching this window move the cursor.
	var occupied []Interval
	for _, r := range existing {
		if r.Interval.Overlaps(window) {
			occupied = append(occupied, r.Interval)
		}
	}

	// Start ascending; on equal starts the shorter interval first, so the
	// earliest-ending option is considered first.
	sort.SliceStable(occupied, func(i, j int) bool {
		if occupied[i].Start.Minutes() != occupied[j].Start.Minutes() {
			return occupied[i].Start.Minutes() < occupied[j].Start.Minutes()
		}
		return occupied[i].DurationMinutes() < occupied[j].DurationMinutes()
	})

	var slots []FreeSlot
	cursor := window.Start.Minutes()

	for _, iv := range occupied {
		if iv.Start.Minutes()-cursor >= durationMinutes {
			slots = append(slots, FreeSlot{Interval: Interval{
				Start: timeFromMinutes(cursor),
				End:   timeFromMinutes(cursor + durationMinutes),
			}})
		}
		if iv.End.Minutes() > cursor {
			cursor = iv.End.Minutes()
		}
	}

	// Trailing gap between the last reservation and the window's end.
	if window.End.Minutes()-cursor >= durationMinutes {
		slots = append(slots, FreeSlot{Interval: Interval{
			Start: timeFromMinutes(cursor),
			End:   timeFromMinutes(cursor + durationMinutes),
		}})
	}

	return slots
}
