package services

import "trip-planner-service/internal/domain"

// ItemsPerDay is the ceiling of routeLen/numberOfDays.
func ItemsPerDay(routeLen, numberOfDays int) int {
	if numberOfDays < 1 {
		return 0
	}
	return (routeLen + numberOfDays - 1) / numberOfDays
}

// DistributeRouteAcrossDays spreads an ordered route over days.
//
// The route is chunked into contiguous bands of ItemsPerDay activities; day i
// receives band i into its slots starting at slot 0, and each day is then
// recalculated. The split is deterministic but not load balanced: trailing
// days may be short or empty. Activities beyond a day's slot count are not
// placed. With no days the input is returned unchanged.
func DistributeRouteAcrossDays(route []domain.Activity, days []domain.DayItinerary) []domain.DayItinerary {
	out := domain.CloneDays(days)

	nDays := len(out)
	if nDays == 0 {
		return out
	}

	nItems := len(route)
	chunkSize := ItemsPerDay(nItems, nDays)

	for di := range out {
		start := di * chunkSize
		if start < nItems {
			end := min(start+chunkSize, nItems)

			slots := out[di].TimeSlots
			for si, a := range route[start:end] {
				if si >= len(slots) {
					break
				}
				placed := a.Clone()
				slots[si].Activity = &placed
			}
		}

		out[di].TimeSlots = RecalculateSlotTimes(out[di].TimeSlots)
	}

	return out
}

// PlacedCount returns how many slots across days hold an activity.
func PlacedCount(days []domain.DayItinerary) int {
	n := 0
	for _, d := range days {
		for _, s := range d.TimeSlots {
			if s.Activity != nil {
				n++
			}
		}
	}
	return n
}
