package assistant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"audease/internal/bookings"
	"audease/internal/scheduling"
	"audease/internal/shared/constants"
	"audease/internal/venues"
	"audease/pkg/cache"

	"github.com/google/uuid"
)

const historyLimit = 50

// Service interface for assistant operations
type Service interface {
	// GetSuggestions analyzes the user's approved bookings and returns
	// personalized hints plus the underlying patterns.
	GetSuggestions(ctx context.Context, userID uuid.UUID) (*SuggestionsResponse, error)
	// FindOptimalTime proposes free slots for a date, ranked by the
	// user's historical start-time preference.
	FindOptimalTime(ctx context.Context, userID uuid.UUID, req OptimalTimeRequest) (*OptimalTimeResponse, error)
	// Chat advances the guided booking wizard by one user message.
	Chat(ctx context.Context, userID uuid.UUID, userEmail, message string) (*ChatResponse, error)
	// ResetChat discards the user's wizard session.
	ResetChat(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	bookingService bookings.Service
	venueService   venues.Service
	sessions       sessionStore
	cacheService   cache.Service
}

// NewService creates a new assistant service. Chat sessions live in
// Redis for sessionTTL; suggestions are cached briefly.
func NewService(bookingService bookings.Service, venueService venues.Service, cacheService cache.Service, sessionTTL time.Duration) Service {
	return &service{
		bookingService: bookingService,
		venueService:   venueService,
		sessions:       &redisSessionStore{cache: cacheService, ttl: sessionTTL},
		cacheService:   cacheService,
	}
}

func (s *service) GetSuggestions(ctx context.Context, userID uuid.UUID) (*SuggestionsResponse, error) {
	cacheKey := constants.BuildSuggestionsKey(userID.String())
	if s.cacheService != nil {
		var cached SuggestionsResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	history, err := s.bookingService.ApprovedHistory(ctx, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking history: %w", err)
	}

	if len(history) == 0 {
		return &SuggestionsResponse{
			Suggestions: []Suggestion{},
			Message:     "No booking history found. Create your first booking to get personalized suggestions!",
		}, nil
	}

	patterns := s.analyzePatterns(ctx, history)
	response := &SuggestionsResponse{
		Suggestions: buildSuggestions(patterns),
		Patterns:    patterns,
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, response, constants.TTL_SUGGESTIONS); err != nil {
			fmt.Printf("Warning: failed to cache suggestions: %v\n", err)
		}
	}

	return response, nil
}

// analyzePatterns derives the user's habits from approved bookings:
// most-booked venue and event type, top three weekdays, daypart buckets
// and the average event duration.
func (s *service) analyzePatterns(ctx context.Context, history []bookings.Booking) *BookingPatterns {
	patterns := &BookingPatterns{
		TotalBookings:      len(history),
		PreferredDays:      []string{},
		PreferredTimeSlots: []string{},
	}

	venueCounts := newOrderedCounter()
	eventTypeCounts := newOrderedCounter()
	dayCounts := newOrderedCounter()
	slotCounts := newOrderedCounter()
	totalDuration := 0
	counted := 0

	for _, b := range history {
		venueCounts.Add(b.VenueID.String())
		eventTypeCounts.Add(b.EventType)

		if date, err := scheduling.ParseDateStamp(b.Date); err == nil {
			dayCounts.Add(date.Time().Weekday().String())
		}

		interval, err := b.Interval()
		if err != nil {
			continue
		}
		slotCounts.Add(daypart(interval.Start.Hour))
		totalDuration += interval.DurationMinutes()
		counted++
	}

	if counted > 0 {
		patterns.AverageDurationMinutes = totalDuration / counted
	}

	if favorite, ok := venueCounts.Top(); ok {
		patterns.FavoriteVenueID = favorite
		patterns.FavoriteVenueName = s.venueName(ctx, favorite)
	}
	if favorite, ok := eventTypeCounts.Top(); ok {
		patterns.FavoriteEventType = favorite
	}
	patterns.PreferredDays = dayCounts.TopN(3)
	patterns.PreferredTimeSlots = slotCounts.TopN(len(slotCounts.keys))

	return patterns
}

func (s *service) venueName(ctx context.Context, venueID string) string {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return venueID
	}
	venue, err := s.venueService.GetVenue(ctx, id)
	if err != nil {
		return venueID
	}
	return venue.Name
}

func buildSuggestions(patterns *BookingPatterns) []Suggestion {
	var suggestions []Suggestion

	if patterns.FavoriteVenueID != "" {
		suggestions = append(suggestions, Suggestion{
			Type:        "venue",
			Title:       "Your Favorite Venue",
			Description: fmt.Sprintf("You frequently book %s. Book it again for your next event.", patterns.FavoriteVenueName),
			Priority:    "high",
			VenueID:     patterns.FavoriteVenueID,
		})
	}

	if len(patterns.PreferredTimeSlots) > 0 {
		suggestions = append(suggestions, Suggestion{
			Type:        "time",
			Title:       "Your Preferred Time",
			Description: fmt.Sprintf("You usually book during the %s. Consider this time for maximum convenience.", patterns.PreferredTimeSlots[0]),
			Priority:    "medium",
			TimeSlot:    patterns.PreferredTimeSlots[0],
		})
	}

	if len(patterns.PreferredDays) > 0 {
		suggestions = append(suggestions, Suggestion{
			Type:        "day",
			Title:       "Your Preferred Days",
			Description: fmt.Sprintf("You typically book on %s. These days might work best for you.", joinDays(patterns.PreferredDays)),
			Priority:    "medium",
		})
	}

	if patterns.FavoriteEventType != "" {
		suggestions = append(suggestions, Suggestion{
			Type:        "event_type",
			Title:       "Similar Events",
			Description: fmt.Sprintf("Based on your history of %s events, we recommend similar venues and times.", patterns.FavoriteEventType),
			Priority:    "low",
			EventType:   patterns.FavoriteEventType,
		})
	}

	return suggestions
}

func joinDays(days []string) string {
	out := ""
	for i, d := range days {
		if i > 0 {
			out += ", "
		}
		out += d
	}
	return out
}

// daypart buckets an hour the way the suggestion copy names it.
func daypart(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}

func (s *service) FindOptimalTime(ctx context.Context, userID uuid.UUID, req OptimalTimeRequest) (*OptimalTimeResponse, error) {
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, errors.New("invalid venue id")
	}

	slots, err := s.bookingService.FreeSlots(ctx, &userID, venueID, req.Date, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	response := &OptimalTimeResponse{AvailableSlots: slots}
	if len(slots) > 0 {
		best := slots[0]
		response.OptimalSlot = &best
		response.Message = fmt.Sprintf("Found %d available time slot(s)", len(slots))
	} else {
		response.AvailableSlots = []bookings.SlotResponse{}
		response.Message = "No available slots for the selected date"
	}

	return response, nil
}

// orderedCounter counts string keys while remembering first-seen order,
// so "favorite" picks are deterministic on ties.
type orderedCounter struct {
	counts map[string]int
	keys   []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) Add(key string) {
	if key == "" {
		return
	}
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

func (c *orderedCounter) Top() (string, bool) {
	top := c.TopN(1)
	if len(top) == 0 {
		return "", false
	}
	return top[0], true
}

func (c *orderedCounter) TopN(n int) []string {
	ranked := make([]string, len(c.keys))
	copy(ranked, c.keys)
	sort.SliceStable(ranked, func(i, j int) bool {
		return c.counts[ranked[i]] > c.counts[ranked[j]]
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	out := make([]string, len(ranked))
	copy(out, ranked)
	return out
}
