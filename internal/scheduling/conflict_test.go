package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability(t *testing.T) {
	// One existing reservation 10:00-11:00, as booked on 2025-06-01.
	existing := []Reservation{
		{ID: "bkg-1", Title: "Robotics Club Demo", Interval: mustInterval(t, "10:00", "11:00")},
	}

	tests := []struct {
		name          string
		proposed      Interval
		wantAvailable bool
	}{
		{name: "slot ending at existing start", proposed: mustInterval(t, "09:00", "10:00"), wantAvailable: true},
		{name: "slot starting at existing end", proposed: mustInterval(t, "11:00", "12:00"), wantAvailable: true},
		{name: "overlapping tail", proposed: mustInterval(t, "10:30", "11:30"), wantAvailable: false},
		{name: "overlapping head", proposed: mustInterval(t, "09:30", "10:30"), wantAvailable: false},
		{name: "fully inside existing", proposed: mustInterval(t, "10:15", "10:45"), wantAvailable: false},
		{name: "fully covering existing", proposed: mustInterval(t, "09:00", "12:00"), wantAvailable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CheckAvailability(existing, tt.proposed)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, result.Available)
			if tt.wantAvailable {
				assert.Empty(t, result.Conflicts)
			} else {
				require.Len(t, result.Conflicts, 1)
				assert.Equal(t, "bkg-1", result.Conflicts[0].ReservationID)
				assert.Equal(t, "Robotics Club Demo", result.Conflicts[0].Title)
			}
		})
	}
}

func TestCheckAvailabilityPreservesInputOrder(t *testing.T) {
	existing := []Reservation{
		{ID: "late", Interval: mustInterval(t, "15:00", "16:00")},
		{ID: "early", Interval: mustInterval(t, "09:00", "10:00")},
		{ID: "mid", Interval: mustInterval(t, "12:00", "13:00")},
	}

	result, err := CheckAvailability(existing, mustInterval(t, "08:00", "20:00"))
	require.NoError(t, err)
	assert.False(t, result.Available)
	require.Len(t, result.Conflicts, 3)
	assert.Equal(t, "late", result.Conflicts[0].ReservationID)
	assert.Equal(t, "early", result.Conflicts[1].ReservationID)
	assert.Equal(t, "mid", result.Conflicts[2].ReservationID)
}

func TestCheckAvailabilityEmptySnapshot(t *testing.T) {
	result, err := CheckAvailability(nil, mustInterval(t, "09:00", "10:00"))
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Empty(t, result.Conflicts)
}

func TestCheckAvailabilityRejectsDegenerateProposal(t *testing.T) {
	_, err := CheckAvailability(nil, Interval{Start: MustTimeOfDay("10:00"), End: MustTimeOfDay("09:00")})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

// A snapshot taken right after a commit must report the committed
// reservation as a conflict. This is the sequential-consistency property
// the caller's locking discipline relies on.
func TestCheckAvailabilityAfterCommit(t *testing.T) {
	proposed := mustInterval(t, "14:00", "15:00")

	before, err := CheckAvailability(nil, proposed)
	require.NoError(t, err)
	require.True(t, before.Available)

	committed := []Reservation{{ID: "bkg-new", Title: "Guest Lecture", Interval: proposed}}
	after, err := CheckAvailability(committed, proposed)
	require.NoError(t, err)
	assert.False(t, after.Available)
	require.Len(t, after.Conflicts, 1)
	assert.Equal(t, "bkg-new", after.Conflicts[0].ReservationID)
}
