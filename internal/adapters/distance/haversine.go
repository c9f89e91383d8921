package distance

import (
	"math"
	"trip-planner-service/internal/domain"
)

const earthRadiusKm = 6371.0

// Haversine measures great-circle distance in kilometres.
// It is an opt-in alternative to Planar; switching metrics can change the
// order the optimizer produces.
type Haversine struct{}

func (Haversine) Distance(a, b domain.Location) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLng := (b.Lng - a.Lng) * math.Pi / 180.0

	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}
