package services

import (
	"slices"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// SuggestionsPerDay is the bucket list size targeted per trip day.
const SuggestionsPerDay = 4

// SuggestionsNeeded returns how many destinations are missing from a bucket
// list of size selected for a trip of numberOfDays.
func SuggestionsNeeded(selected, numberOfDays int) int {
	return max(0, numberOfDays*SuggestionsPerDay-selected)
}

// GenerateSuggestions tops the bucket list up to the per-day target.
//
// Missing entries are drawn uniformly without replacement from the region's
// activities that are not already selected. The existing selection keeps its
// order and the draws are appended.
func GenerateSuggestions(
	selected []domain.Activity,
	regionActivities []domain.Activity,
	numberOfDays int,
	rng ports.RandomSource,
) []domain.Activity {
	out := make([]domain.Activity, 0, len(selected))
	out = append(out, domain.CloneActivities(selected)...)

	needed := SuggestionsNeeded(len(selected), numberOfDays)
	if needed == 0 {
		return out
	}

	chosen := make(map[string]struct{}, len(selected))
	for _, a := range selected {
		chosen[a.ID] = struct{}{}
	}

	pool := make([]domain.Activity, 0, len(regionActivities))
	for _, a := range regionActivities {
		if _, ok := chosen[a.ID]; !ok {
			pool = append(pool, a)
		}
	}

	for i := 0; i < needed && len(pool) > 0; i++ {
		idx := rng.Intn(len(pool))
		out = append(out, pool[idx].Clone())
		pool = slices.Delete(pool, idx, idx+1)
	}

	return out
}
