package services

import (
	"slices"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// Optimize orders destinations using a greedy nearest-neighbor heuristic.
//
// The route starts at the first destination as given (the one the traveller
// added first, not the geographic centre) and repeatedly moves to the closest
// unvisited destination. It does not attempt global optimization.
//
// The result is always a permutation of the input. Fewer than two
// destinations are returned unchanged. The input slice is never modified.
func Optimize(destinations []domain.Activity, metric ports.DistanceMetric) []domain.Activity {
	route := make([]domain.Activity, 0, len(destinations))
	if len(destinations) < 2 {
		return append(route, domain.CloneActivities(destinations)...)
	}

	remaining := domain.CloneActivities(destinations)

	current := remaining[0]
	route = append(route, current)
	remaining = remaining[1:]

	for len(remaining) > 0 {
		best := 0
		minDistance := metric.Distance(current.Location, remaining[0].Location)

		// Select next stop by minimum distance (greedy step). Strict comparison
		// keeps the first encountered candidate on ties.
		for i := 1; i < len(remaining); i++ {
			if d := metric.Distance(current.Location, remaining[i].Location); d < minDistance {
				minDistance = d
				best = i
			}
		}

		current = remaining[best]
		route = append(route, current)
		remaining = slices.Delete(remaining, best, best+1)
	}

	return route
}

// RouteDistance sums the leg distances of route in visiting order.
func RouteDistance(route []domain.Activity, metric ports.DistanceMetric) float64 {
	total := 0.0
	for i := 1; i < len(route); i++ {
		total += metric.Distance(route[i-1].Location, route[i].Location)
	}
	return total
}
