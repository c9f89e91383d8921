package distance

import (
	"fmt"
	"strings"
	"trip-planner-service/internal/ports"
)

// NewMetric returns the distance strategy registered under name.
// An empty name selects Planar.
func NewMetric(name string) (ports.DistanceMetric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "planar":
		return Planar{}, nil
	case "haversine":
		return Haversine{}, nil
	default:
		return nil, fmt.Errorf("new metric: unknown distance metric %q", name)
	}
}
