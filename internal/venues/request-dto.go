package venues

type CreateVenueRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Location    string `json:"location" binding:"omitempty,max=200"`
}

type UpdateVenueRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=120"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Location    *string `json:"location" binding:"omitempty,max=200"`
}

type RecommendVenueRequest struct {
	ExpectedAttendance int `json:"expected_attendance" form:"expected_attendance" binding:"required,min=1"`
}
