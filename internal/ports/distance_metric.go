package ports

import "trip-planner-service/internal/domain"

// Contract for measuring how far apart two locations are.
// Only the relative order of distances matters to the route optimizer,
// so implementations may use any unit.
type DistanceMetric interface {
	// Return the distance between two locations.
	Distance(a, b domain.Location) float64
}
