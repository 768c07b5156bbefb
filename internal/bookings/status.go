package bookings

// BookingStatus is the lifecycle state of a booking request.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusApproved  BookingStatus = "APPROVED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsLive reports whether the booking occupies its slot. A pending
// request blocks the slot until an admin decides it.
func (s BookingStatus) IsLive() bool {
	return s == StatusPending || s == StatusApproved
}

// LiveStatuses returns the statuses that count toward conflicts.
func LiveStatuses() []BookingStatus {
	return []BookingStatus{StatusPending, StatusApproved}
}

// CanBeCancelled reports whether the owner may still cancel.
func (s BookingStatus) CanBeCancelled() bool {
	return s == StatusPending || s == StatusApproved
}

// CanBeDecided reports whether an admin decision is still possible.
func (s BookingStatus) CanBeDecided() bool {
	return s == StatusPending
}
