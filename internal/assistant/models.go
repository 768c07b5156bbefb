package assistant

import "time"

// BookingPatterns summarizes a user's approved booking history.
type BookingPatterns struct {
	FavoriteVenueID        string   `json:"favorite_venue_id,omitempty"`
	FavoriteVenueName      string   `json:"favorite_venue_name,omitempty"`
	FavoriteEventType      string   `json:"favorite_event_type,omitempty"`
	PreferredDays          []string `json:"preferred_days"`
	PreferredTimeSlots     []string `json:"preferred_time_slots"`
	AverageDurationMinutes int      `json:"average_duration_minutes"`
	TotalBookings          int      `json:"total_bookings"`
}

// Suggestion is one personalized booking hint.
type Suggestion struct {
	Type        string `json:"type"` // venue, time, day, event_type
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // high, medium, low
	VenueID     string `json:"venue_id,omitempty"`
	TimeSlot    string `json:"time_slot,omitempty"`
	EventType   string `json:"event_type,omitempty"`
}

type SuggestionsResponse struct {
	Suggestions []Suggestion     `json:"suggestions"`
	Patterns    *BookingPatterns `json:"patterns,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// ChatStep names the wizard's position in the guided booking flow.
type ChatStep string

const (
	StepEventType    ChatStep = "event_type"
	StepEventTitle   ChatStep = "event_title"
	StepAudienceSize ChatStep = "audience_size"
	StepConfirmVenue ChatStep = "confirm_venue"
	StepChooseVenue  ChatStep = "choose_venue"
	StepDate         ChatStep = "date"
	StepStartTime    ChatStep = "start_time"
	StepEndTime      ChatStep = "end_time"
	StepSummary      ChatStep = "summary"
	StepComplete     ChatStep = "complete"
)

// BookingDraft accumulates the answers collected so far.
type BookingDraft struct {
	EventType        string `json:"event_type,omitempty"`
	EventTitle       string `json:"event_title,omitempty"`
	ExpectedAudience int    `json:"expected_audience,omitempty"`
	VenueID          string `json:"venue_id,omitempty"`
	VenueName        string `json:"venue_name,omitempty"`
	Date             string `json:"date,omitempty"`
	StartTime        string `json:"start_time,omitempty"`
	EndTime          string `json:"end_time,omitempty"`
}

// ChatSession is the server-side wizard state, one per user.
type ChatSession struct {
	Step      ChatStep     `json:"step"`
	Draft     BookingDraft `json:"draft"`
	UpdatedAt time.Time    `json:"updated_at"`
}
