package cache

import (
	"context"
	"testing"
	"time"
	"trip-planner-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RedisSnapshotStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSnapshotStore(client, ttl, nil), mr
}

func samplePlan() *domain.TripPlan {
	plan := domain.NewTripPlan()
	region := domain.Region{ID: "kyoto", Name: "Kyoto", CountryID: "jp", Coordinates: [2]float64{35.01, 135.76}}
	plan.SelectedRegion = &region
	plan.NumberOfDays = 1
	plan.Currency = "JPY"
	activity := domain.Activity{
		ID:         "kinkakuji",
		Name:       "Kinkaku-ji",
		Category:   domain.CategoryTemple,
		Duration:   60,
		PriceLevel: 1,
		RegionID:   "kyoto",
	}
	plan.DailyItineraries = []domain.DayItinerary{{
		DayNumber: 1,
		Region:    region,
		TimeSlots: []domain.TimeSlot{
			{ID: "slot-0", Time: domain.NewClockTime(9, 0), Activity: &activity},
			{ID: "slot-1", Time: domain.NewClockTime(10, 15)},
		},
	}}
	return plan
}

func TestRedisSnapshotStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	missing, err := store.Load(ctx, "trip-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	want := samplePlan()
	require.NoError(t, store.Save(ctx, "trip-1", want))
	assert.True(t, mr.Exists("trip:snapshot:trip-1"))
	assert.Zero(t, mr.TTL("trip:snapshot:trip-1"))

	got, err := store.Load(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Delete(ctx, "trip-1"))
	assert.False(t, mr.Exists("trip:snapshot:trip-1"))
}

func TestRedisSnapshotStoreTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, time.Hour)

	require.NoError(t, store.Save(ctx, "trip-1", samplePlan()))
	assert.Equal(t, time.Hour, mr.TTL("trip:snapshot:trip-1"))

	mr.FastForward(2 * time.Hour)

	got, err := store.Load(ctx, "trip-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSnapshotStoreMalformed(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)

	require.NoError(t, mr.Set("trip:snapshot:broken", "[]]"))

	got, err := store.Load(ctx, "broken")
	require.NoError(t, err)
	assert.Equal(t, domain.NewTripPlan(), got)
}

func TestRedisSnapshotStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 0)
	mr.Close()

	_, err := store.Load(ctx, "trip-1")
	assert.Error(t, err)
	assert.Error(t, store.Save(ctx, "trip-1", samplePlan()))
	assert.Error(t, store.Health(ctx))
}
