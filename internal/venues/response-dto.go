package venues

type VenueResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
}

// RecommendationResponse carries the picked venue. InsufficientCapacity
// is set when even the largest venue seats fewer people than requested,
// so clients can warn instead of silently under-seating the event.
type RecommendationResponse struct {
	Venue                VenueResponse `json:"venue"`
	ExpectedAttendance   int           `json:"expected_attendance"`
	InsufficientCapacity bool          `json:"insufficient_capacity"`
}
