package services

import (
	"context"
	"errors"
	"slices"
	"sync"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// seqRandom replays fixed values. Exhausted sequences return 0 and 0.5.
type seqRandom struct {
	ints   []int
	floats []float64
}

func (r *seqRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func (r *seqRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func fixedRandom() ports.RandomSource { return &seqRandom{} }

var kyoto = domain.Region{
	ID:          "kyoto",
	Name:        "Kyoto",
	CountryID:   "jp",
	Coordinates: [2]float64{35.01, 135.76},
}

var japan = domain.Country{ID: "jp", Name: "Japan", Code: "JP", Flag: "JP", Regions: []domain.Region{kyoto}}

func act(id string, cat domain.Category, duration, priceLevel int, lat, lng float64) domain.Activity {
	return domain.Activity{
		ID:         id,
		Name:       id,
		Category:   cat,
		Duration:   duration,
		PriceLevel: priceLevel,
		Location:   domain.Location{Lat: lat, Lng: lng, Address: id},
		RegionID:   "kyoto",
	}
}

func kyotoActivities() []domain.Activity {
	return []domain.Activity{
		act("b1", domain.CategoryBreakfast, 45, 1, 35.00, 135.76),
		act("d1", domain.CategoryDinner, 90, 3, 35.01, 135.77),
		act("l1", domain.CategoryLunch, 60, 2, 35.02, 135.75),
		act("p1", domain.CategoryPark, 90, 1, 35.03, 135.74),
		act("t1", domain.CategoryTemple, 60, 2, 35.04, 135.73),
	}
}

type fakeCatalog struct {
	countries  map[string]domain.Country
	regions    map[string]domain.Region
	activities []domain.Activity
}

func newFakeCatalog(activities ...domain.Activity) *fakeCatalog {
	return &fakeCatalog{
		countries:  map[string]domain.Country{japan.ID: japan},
		regions:    map[string]domain.Region{kyoto.ID: kyoto},
		activities: activities,
	}
}

func (c *fakeCatalog) GetCountry(_ context.Context, id string) (*domain.Country, error) {
	country, ok := c.countries[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &country, nil
}

func (c *fakeCatalog) GetRegion(_ context.Context, id string) (*domain.Region, error) {
	region, ok := c.regions[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &region, nil
}

func (c *fakeCatalog) GetActivity(_ context.Context, id string) (*domain.Activity, error) {
	for _, a := range c.activities {
		if a.ID == id {
			out := a.Clone()
			return &out, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (c *fakeCatalog) ListActivities(_ context.Context, regionID string) ([]domain.Activity, error) {
	out := []domain.Activity{}
	for _, a := range c.activities {
		if a.RegionID == regionID {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

func (c *fakeCatalog) ListActivitiesByCategory(ctx context.Context, regionID string, categories []domain.Category) ([]domain.Activity, error) {
	all, _ := c.ListActivities(ctx, regionID)
	out := []domain.Activity{}
	for _, a := range all {
		if slices.Contains(categories, a.Category) {
			out = append(out, a)
		}
	}
	return out, nil
}

// memoryStore keeps encoded snapshots so loads exercise the snapshot codec.
type memoryStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (s *memoryStore) Load(_ context.Context, id string) (*domain.TripPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	plan, err := domain.DecodeSnapshot(b)
	if err != nil && !errors.Is(err, domain.ErrSnapshotMalformed) {
		return nil, err
	}
	return plan, nil
}

func (s *memoryStore) Save(_ context.Context, id string, plan *domain.TripPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	b, err := domain.EncodeSnapshot(plan)
	if err != nil {
		return err
	}
	s.data[id] = b
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func ids(list []domain.Activity) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func slotTimes(slots []domain.TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Time.String()
	}
	return out
}

func slotActivityIDs(slots []domain.TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		if s.Activity != nil {
			out[i] = s.Activity.ID
		}
	}
	return out
}
