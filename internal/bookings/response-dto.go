package bookings

import (
	"time"

	"audease/internal/scheduling"
)

type BookingResponse struct {
	ID               string     `json:"id"`
	VenueID          string     `json:"venue_id"`
	VenueName        string     `json:"venue_name,omitempty"`
	Date             string     `json:"date"`
	StartTime        string     `json:"start_time"`
	EndTime          string     `json:"end_time"`
	EventTitle       string     `json:"event_title"`
	EventType        string     `json:"event_type"`
	Description      string     `json:"description,omitempty"`
	ExpectedAudience int        `json:"expected_audience"`
	Status           string     `json:"status"`
	AdminNote        string     `json:"admin_note,omitempty"`
	CreatedBy        string     `json:"created_by"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// SlotResponse is one bookable alternative slot.
type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilityResponse answers a slot check. Conflicts are reported as
// data, not as an error; Alternatives are free slots of the requested
// duration, best-ranked first.
type AvailabilityResponse struct {
	Available    bool                  `json:"available"`
	Conflicts    []scheduling.Conflict `json:"conflicts,omitempty"`
	Alternatives []SlotResponse        `json:"alternatives"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func toBookingResponse(b Booking) BookingResponse {
	resp := BookingResponse{
		ID:               b.ID.String(),
		VenueID:          b.VenueID.String(),
		VenueName:        b.Venue.Name,
		Date:             b.Date,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		EventTitle:       b.EventTitle,
		EventType:        b.EventType,
		Description:      b.Description,
		ExpectedAudience: b.ExpectedAudience,
		Status:           string(b.Status),
		AdminNote:        b.AdminNote,
		CreatedBy:        b.CreatedBy.String(),
		DecidedAt:        b.DecidedAt,
		CreatedAt:        b.CreatedAt,
	}
	return resp
}

func toBookingResponses(rows []Booking) []BookingResponse {
	responses := make([]BookingResponse, len(rows))
	for i, b := range rows {
		responses[i] = toBookingResponse(b)
	}
	return responses
}

func toSlotResponses(slots []scheduling.FreeSlot) []SlotResponse {
	responses := make([]SlotResponse, len(slots))
	for i, s := range slots {
		responses[i] = SlotResponse{
			StartTime: s.Interval.Start.String(),
			EndTime:   s.Interval.End.String(),
		}
	}
	return responses
}
