package venues

import "audease/internal/scheduling"

func toResponse(v Venue) VenueResponse {
	return VenueResponse{
		ID:          v.ID.String(),
		Name:        v.Name,
		Capacity:    v.Capacity,
		Description: v.Description,
		Location:    v.Location,
	}
}

func toResponses(catalog []Venue) []VenueResponse {
	responses := make([]VenueResponse, len(catalog))
	for i, v := range catalog {
		responses[i] = toResponse(v)
	}
	return responses
}

// toSchedulingCatalog converts the stored catalog into the shape the
// recommendation ladder walks. Ordering is preserved.
func toSchedulingCatalog(catalog []Venue) []scheduling.Venue {
	entries := make([]scheduling.Venue, len(catalog))
	for i, v := range catalog {
		entries[i] = scheduling.Venue{
			ID:          v.ID.String(),
			Name:        v.Name,
			Capacity:    v.Capacity,
			Description: v.Description,
		}
	}
	return entries
}
