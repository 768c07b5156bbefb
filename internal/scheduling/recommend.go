package scheduling

// Venue is one entry of the static venue catalog.
type Venue struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

// RecommendVenue picks the smallest venue that seats the expected
// attendance. The catalog must be ordered by ascending capacity. When no
// venue is large enough the largest one is returned as a best effort; the
// caller is responsible for surfacing that its capacity is still below
// the request.
func RecommendVenue(expectedAttendance int, venueCatalog []Venue) (Venue, error) {
	if len(venueCatalog) == 0 {
		return Venue{}, newConfigurationError("venue catalog is empty")
	}

	for _, v := range venueCatalog {
		if v.Capacity >= expectedAttendance {
			return v, nil
		}
	}
	return venueCatalog[len(venueCatalog)-1], nil
}
