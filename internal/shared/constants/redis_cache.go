package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the AudEase application
// Pattern: audease:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for the venue catalog
	TTL_STATIC_SHORT  = 6 * time.Hour  // 6 hours - for user profiles
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for booking listings
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for assistant suggestions
	TTL_DYNAMIC_QUICK  = 2 * time.Minute  // 2 minutes - for availability snapshots
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "audease"
)

// ================== VENUES MODULE ==================

// Venue Cache Keys
const (
	CACHE_KEY_VENUE_CATALOG = CACHE_PREFIX + ":venues:catalog"      // full ordered catalog
	CACHE_KEY_VENUE_DETAIL  = CACHE_PREFIX + ":venues:detail:uuid:" // + venue-id
)

// Venue Cache TTLs
const (
	TTL_VENUE_CATALOG = TTL_STATIC_MEDIUM // 12 hours
	TTL_VENUE_DETAIL  = TTL_STATIC_MEDIUM // 12 hours
)

// ================== BOOKINGS MODULE ==================

// Booking Cache Keys
const (
	CACHE_KEY_DAY_AVAILABILITY = CACHE_PREFIX + ":bookings:availability:" // + venue-id:date
)

// Booking Cache TTLs
const (
	TTL_DAY_AVAILABILITY = TTL_DYNAMIC_QUICK // 2 minutes
)

// ================== ASSISTANT MODULE ==================

// Assistant Cache Keys
const (
	CACHE_KEY_CHAT_SESSION = CACHE_PREFIX + ":assistant:chat:user:"        // + user-id
	CACHE_KEY_SUGGESTIONS  = CACHE_PREFIX + ":assistant:suggestions:user:" // + user-id
)

// Assistant Cache TTLs
const (
	TTL_SUGGESTIONS = TTL_DYNAMIC_SHORT // 5 minutes
)

// ================== KEY BUILDERS ==================

// BuildDayAvailabilityKey builds the cache key for a venue's reservation
// snapshot on one date.
func BuildDayAvailabilityKey(venueID, date string) string {
	return fmt.Sprintf("%s%s:%s", CACHE_KEY_DAY_AVAILABILITY, venueID, date)
}

// BuildChatSessionKey builds the cache key for a user's assistant chat session.
func BuildChatSessionKey(userID string) string {
	return CACHE_KEY_CHAT_SESSION + userID
}

// BuildSuggestionsKey builds the cache key for a user's assistant suggestions.
func BuildSuggestionsKey(userID string) string {
	return CACHE_KEY_SUGGESTIONS + userID
}
