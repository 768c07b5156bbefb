package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []Venue {
	return []Venue{
		{ID: "aud4", Name: "Conference Room", Capacity: 50},
		{ID: "aud3", Name: "Seminar Hall B", Capacity: 100},
		{ID: "aud2", Name: "Seminar Hall A", Capacity: 150},
		{ID: "aud1", Name: "Main Auditorium", Capacity: 500},
	}
}

func TestRecommendVenue(t *testing.T) {
	tests := []struct {
		name       string
		attendance int
		wantID     string
	}{
		{name: "tiny group", attendance: 10, wantID: "aud4"},
		{name: "exact fit smallest", attendance: 50, wantID: "aud4"},
		{name: "just over smallest", attendance: 51, wantID: "aud3"},
		{name: "mid-size audience", attendance: 120, wantID: "aud2"},
		{name: "large audience", attendance: 400, wantID: "aud1"},
		{name: "exact fit largest", attendance: 500, wantID: "aud1"},
		{name: "over capacity falls back to largest", attendance: 800, wantID: "aud1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venue, err := RecommendVenue(tt.attendance, testCatalog())
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, venue.ID)
		})
	}
}

// The recommended capacity never shrinks as attendance grows.
func TestRecommendVenueMonotone(t *testing.T) {
	catalog := testCatalog()
	prev := 0
	for n := 1; n <= 600; n += 7 {
		venue, err := RecommendVenue(n, catalog)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, venue.Capacity, prev, "capacity regressed at attendance %d", n)
		prev = venue.Capacity
	}
}

func TestRecommendVenueEmptyCatalog(t *testing.T) {
	_, err := RecommendVenue(100, nil)
	require.Error(t, err)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
}
