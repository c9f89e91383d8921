package distance

import "trip-planner-service/internal/domain"

// MockPair is a fixed distance between two addresses.
type MockPair struct {
	From, To string
	Distance float64
}

// MockDistanceMetric looks distances up by address pair in either direction.
// Unknown pairs are infinitely far apart.
type MockDistanceMetric struct {
	m map[string]float64
}

func NewMockDistanceMetric(pairs []MockPair) *MockDistanceMetric {
	m := make(map[string]float64, len(pairs)*2)
	for _, p := range pairs {
		m[p.From+"|"+p.To] = p.Distance
		m[p.To+"|"+p.From] = p.Distance
	}
	return &MockDistanceMetric{m: m}
}

func (p *MockDistanceMetric) Distance(a, b domain.Location) float64 {
	if a.Address == b.Address {
		return 0
	}
	if d, ok := p.m[a.Address+"|"+b.Address]; ok {
		return d
	}
	return 1e18
}
