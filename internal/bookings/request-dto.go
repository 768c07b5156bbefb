package bookings

// AvailabilityQuery is the query payload of the slot availability check.
// Times use the "HH:MM" 24-hour wire format and dates "YYYY-MM-DD".
type AvailabilityQuery struct {
	VenueID   string `form:"venue_id" binding:"required,uuid"`
	Date      string `form:"date" binding:"required,datestamp"`
	StartTime string `form:"start_time" binding:"required,timehhmm"`
	EndTime   string `form:"end_time" binding:"required,timehhmm"`
}

type CreateBookingRequest struct {
	VenueID          string `json:"venue_id" binding:"required,uuid"`
	Date             string `json:"date" binding:"required,datestamp"`
	StartTime        string `json:"start_time" binding:"required,timehhmm"`
	EndTime          string `json:"end_time" binding:"required,timehhmm"`
	EventTitle       string `json:"event_title" binding:"required,min=3,max=200"`
	EventType        string `json:"event_type" binding:"required"`
	Description      string `json:"description" binding:"omitempty,max=1000"`
	ExpectedAudience int    `json:"expected_audience" binding:"required,min=1"`
}

// DecisionRequest is the admin approve/reject payload.
type DecisionRequest struct {
	Action    string `json:"action" binding:"required,oneof=APPROVED REJECTED"`
	AdminNote string `json:"admin_note" binding:"omitempty,max=500"`
}

type HistoryQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
