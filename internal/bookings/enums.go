package bookings

// Event types offered by the booking form.
var validEventTypes = []string{
	"Seminar",
	"Workshop",
	"Club Event",
	"Lecture",
	"Cultural Event",
	"Tech Talk",
	"Conference",
}

func IsValidEventType(eventType string) bool {
	for _, t := range validEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// EventTypes returns the allowed event types in display order.
func EventTypes() []string {
	types := make([]string, len(validEventTypes))
	copy(types, validEventTypes)
	return types
}
