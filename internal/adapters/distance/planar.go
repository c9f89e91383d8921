package distance

import (
	"math"
	"trip-planner-service/internal/domain"
)

// Planar measures straight-line distance on raw latitude/longitude values.
//
// No spherical correction is applied. The approximation is acceptable at city
// scale and distorts at continental scale; it is the default because route
// orders computed by the optimizer are pinned to it.
type Planar struct{}

func (Planar) Distance(a, b domain.Location) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
}
