package assistant

type OptimalTimeRequest struct {
	VenueID         string `json:"venue_id" binding:"required,uuid"`
	Date            string `json:"date" binding:"required,datestamp"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=500"`
}
