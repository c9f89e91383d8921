package distance

import (
	"testing"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanarDistance(t *testing.T) {
	a := domain.Location{Lat: 0, Lng: 0}
	b := domain.Location{Lat: 3, Lng: 4}

	assert.InDelta(t, 5.0, Planar{}.Distance(a, b), 1e-9)
	assert.InDelta(t, 5.0, Planar{}.Distance(b, a), 1e-9)
	assert.Zero(t, Planar{}.Distance(a, a))
}

func TestHaversineDistance(t *testing.T) {
	// Tokyo Station to Kyoto Station, roughly 372 km.
	tokyo := domain.Location{Lat: 35.6812, Lng: 139.7671}
	kyoto := domain.Location{Lat: 34.9858, Lng: 135.7588}

	assert.InDelta(t, 372, Haversine{}.Distance(tokyo, kyoto), 5)
}

func TestNewMetric(t *testing.T) {
	m, err := NewMetric("")
	require.NoError(t, err)
	assert.IsType(t, Planar{}, m)

	m, err = NewMetric("Haversine")
	require.NoError(t, err)
	assert.IsType(t, Haversine{}, m)

	_, err = NewMetric("manhattan")
	assert.Error(t, err)
}

func TestMockDistanceMetricIsSymmetric(t *testing.T) {
	m := NewMockDistanceMetric([]MockPair{{From: "A", To: "B", Distance: 7}})

	assert.Equal(t, 7.0, m.Distance(domain.Location{Address: "A"}, domain.Location{Address: "B"}))
	assert.Equal(t, 7.0, m.Distance(domain.Location{Address: "B"}, domain.Location{Address: "A"}))
	assert.Equal(t, 0.0, m.Distance(domain.Location{Address: "A"}, domain.Location{Address: "A"}))
}
