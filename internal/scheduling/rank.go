package scheduling

import "sort"

// RankByPreference reorders slots so that start times the user has booked
// most often come first. Scoring is exact TimeOfDay equality against the
// user's historical start times; there is no fuzzy matching. The sort is
// stable, so slots with equal scores keep the earliest-gap-first order
// the slot finder produced. Inputs are not mutated.
func RankByPreference(slots []FreeSlot, preferredStartTimes []TimeOfDay) []FreeSlot {
	ranked := make([]FreeSlot, len(slots))
	copy(ranked, slots)

	counts := make(map[int]int, len(preferredStartTimes))
	for _, t := range preferredStartTimes {
		counts[t.Minutes()]++
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i].Interval.Start.Minutes()] > counts[ranked[j].Interval.Start.Minutes()]
	})

	return ranked
}
