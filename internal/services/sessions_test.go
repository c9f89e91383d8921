package services

import (
	"context"
	"testing"
	"time"
	"trip-planner-service/internal/adapters/distance"
	"trip-planner-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSessions(store ports.SnapshotStore) *Sessions {
	return NewSessions(
		newFakeCatalog(kyotoActivities()...),
		store,
		PlannerOptions{Metric: distance.Planar{}, NewRandom: fixedRandom},
		zap.NewNop(),
	)
}

func TestSessionsCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	s := newTestSessions(store)

	planner, err := s.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)

	got, err := s.Get(ctx, planner.ID())
	require.NoError(t, err)
	assert.Same(t, planner, got)
	assert.Equal(t, 1, s.Len())
}

func TestSessionsReloadFromStore(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	s := newTestSessions(store)

	planner, err := s.Create(ctx)
	require.NoError(t, err)
	_, err = planner.SelectRegion(ctx, "kyoto")
	require.NoError(t, err)
	_, err = planner.SelectActivity(ctx, 1, "slot-0", "t1")
	require.NoError(t, err)
	want := planner.Snapshot()

	clock := time.Now()
	s.now = func() time.Time { return clock }
	clock = clock.Add(time.Hour)
	require.Equal(t, 1, s.EvictIdle(30*time.Minute))

	reloaded, err := s.Get(ctx, planner.ID())
	require.NoError(t, err)
	assert.NotSame(t, planner, reloaded)
	assert.Equal(t, want, reloaded.Snapshot())
}

func TestSessionsUnknownIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestSessions(newMemoryStore())

	_, err := s.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = s.Get(ctx, "6f1c2a4e-0d5b-4c43-9a8e-3b2f9f0e7a11")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = newTestSessions(nil).Get(ctx, "6f1c2a4e-0d5b-4c43-9a8e-3b2f9f0e7a11")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionsDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	s := newTestSessions(store)

	planner, err := s.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, planner.ID()))

	_, err = s.Get(ctx, planner.ID())
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.Empty(t, store.data)
}

func TestSessionsEvictIdle(t *testing.T) {
	ctx := context.Background()
	s := newTestSessions(newMemoryStore())

	clock := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	stale, err := s.Create(ctx)
	require.NoError(t, err)
	clock = clock.Add(20 * time.Minute)
	busy, err := s.Create(ctx)
	require.NoError(t, err)

	clock = clock.Add(15 * time.Minute)
	_, err = s.Get(ctx, busy.ID())
	require.NoError(t, err)

	assert.Equal(t, 1, s.EvictIdle(30*time.Minute))
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(ctx, busy.ID())
	require.NoError(t, err)
	assert.Same(t, busy, got)

	reloaded, err := s.Get(ctx, stale.ID())
	require.NoError(t, err)
	assert.NotSame(t, stale, reloaded)
	assert.Equal(t, 2, s.Len())
}

func TestSessionsEvictIdleKeepsTripsWithoutStore(t *testing.T) {
	ctx := context.Background()
	s := newTestSessions(nil)

	clock := time.Now()
	s.now = func() time.Time { return clock }
	_, err := s.Create(ctx)
	require.NoError(t, err)

	clock = clock.Add(24 * time.Hour)
	assert.Zero(t, s.EvictIdle(time.Minute))
	assert.Equal(t, 1, s.Len())
}

func TestSessionsRunEvictionStopsWithContext(t *testing.T) {
	s := newTestSessions(newMemoryStore())
	_, err := s.Create(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunEviction(ctx, time.Millisecond, -time.Hour)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("eviction loop did not stop")
	}
}
