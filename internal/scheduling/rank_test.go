package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotAt(t *testing.T, start, end string) FreeSlot {
	t.Helper()
	return FreeSlot{Interval: mustInterval(t, start, end)}
}

func TestRankByPreference(t *testing.T) {
	slots := []FreeSlot{
		slotAt(t, "09:00", "10:00"),
		slotAt(t, "14:00", "15:00"),
		slotAt(t, "18:00", "19:00"),
	}
	// User historically books 14:00 twice and 18:00 once.
	preferred := []TimeOfDay{
		MustTimeOfDay("14:00"),
		MustTimeOfDay("18:00"),
		MustTimeOfDay("14:00"),
	}

	ranked := RankByPreference(slots, preferred)
	require.Len(t, ranked, 3)
	assert.Equal(t, "14:00", ranked[0].Interval.Start.String())
	assert.Equal(t, "18:00", ranked[1].Interval.Start.String())
	assert.Equal(t, "09:00", ranked[2].Interval.Start.String())
}

func TestRankByPreferenceTiesKeepInputOrder(t *testing.T) {
	slots := []FreeSlot{
		slotAt(t, "09:00", "10:00"),
		slotAt(t, "10:00", "11:00"),
		slotAt(t, "11:00", "12:00"),
	}

	// No history at all: every score ties, order must be untouched.
	ranked := RankByPreference(slots, nil)
	require.Len(t, ranked, 3)
	for i := range slots {
		assert.Equal(t, slots[i], ranked[i])
	}

	// Equal non-zero scores also keep relative order.
	preferred := []TimeOfDay{MustTimeOfDay("10:00"), MustTimeOfDay("11:00")}
	ranked = RankByPreference(slots, preferred)
	assert.Equal(t, "10:00", ranked[0].Interval.Start.String())
	assert.Equal(t, "11:00", ranked[1].Interval.Start.String())
	assert.Equal(t, "09:00", ranked[2].Interval.Start.String())
}

func TestRankByPreferenceDeterministic(t *testing.T) {
	slots := []FreeSlot{
		slotAt(t, "09:00", "10:00"),
		slotAt(t, "13:00", "14:00"),
		slotAt(t, "15:00", "16:00"),
	}
	preferred := []TimeOfDay{MustTimeOfDay("13:00")}

	first := RankByPreference(slots, preferred)
	second := RankByPreference(slots, preferred)
	assert.Equal(t, first, second)
}

func TestRankByPreferenceDoesNotMutateInput(t *testing.T) {
	slots := []FreeSlot{
		slotAt(t, "09:00", "10:00"),
		slotAt(t, "14:00", "15:00"),
	}
	original := make([]FreeSlot, len(slots))
	copy(original, slots)

	RankByPreference(slots, []TimeOfDay{MustTimeOfDay("14:00")})
	assert.Equal(t, original, slots)
}
