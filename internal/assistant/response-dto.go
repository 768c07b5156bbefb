package assistant

import "audease/internal/bookings"

// OptimalTimeResponse carries the ranked free slots; OptimalSlot is the
// best one or nil when the date is fully booked.
type OptimalTimeResponse struct {
	OptimalSlot    *bookings.SlotResponse `json:"optimal_slot"`
	AvailableSlots []bookings.SlotResponse `json:"available_slots"`
	Message        string                  `json:"message"`
}

// ChatResponse is one wizard turn. Options, when present, are the
// choices the client should offer as quick replies.
type ChatResponse struct {
	Reply   string                    `json:"reply"`
	Step    ChatStep                  `json:"step"`
	Options []string                  `json:"options,omitempty"`
	Draft   *BookingDraft             `json:"draft,omitempty"`
	Booking *bookings.BookingResponse `json:"booking,omitempty"`
}
