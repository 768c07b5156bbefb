package scheduling

// Reservation is a read-only snapshot row: one existing booking for a
// venue on a date, already filtered by the caller to live statuses.
// The core never mutates reservations.
type Reservation struct {
	ID       string
	Title    string
	Interval Interval
}

// Conflict identifies an existing reservation that overlaps a proposed
// interval.
type Conflict struct {
	ReservationID string   `json:"reservation_id"`
	Title         string   `json:"title"`
	Interval      Interval `json:"interval"`
}

// AvailabilityResult is the outcome of a conflict check. Conflicts are
// reported as data, never as an error: an occupied slot is a normal,
// successful answer.
type AvailabilityResult struct {
	Available bool       `json:"available"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// CheckAvailability decides whether the proposed interval is free of the
// given reservations. The reservations must already be scoped to one
// venue, one date and live statuses. Conflicts preserve input order.
func CheckAvailability(existing []Reservation, proposed Interval) (AvailabilityResult, error) {
	if err := proposed.Validate(); err != nil {
		return AvailabilityResult{}, err
	}

	var conflicts []Conflict
	for _, r := range existing {
		if r.Interval.Overlaps(proposed) {
			conflicts = append(conflicts, Conflict{
				ReservationID: r.ID,
				Title:         r.Title,
				Interval:      r.Interval,
			})
		}
	}

	return AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}
