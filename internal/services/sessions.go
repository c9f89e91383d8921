package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"trip-planner-service/internal/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sessions hands out one TripPlanner per trip id.
// Planners are created on demand and loaded lazily from the snapshot store.
// Idle planners are dropped by EvictIdle; the store stays the source of truth.
type Sessions struct {
	mu       sync.Mutex
	planners map[string]*session
	now      func() time.Time

	catalog ports.CatalogRepository
	store   ports.SnapshotStore
	opts    PlannerOptions
	logger  *zap.Logger
}

type session struct {
	planner  *TripPlanner
	lastUsed time.Time
}

func NewSessions(
	catalog ports.CatalogRepository,
	store ports.SnapshotStore,
	opts PlannerOptions,
	logger *zap.Logger,
) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{
		planners: make(map[string]*session),
		now:      time.Now,
		catalog:  catalog,
		store:    store,
		opts:     opts,
		logger:   logger,
	}
}

// Create starts a new empty trip and persists its initial snapshot.
func (s *Sessions) Create(ctx context.Context) (*TripPlanner, error) {
	id := uuid.NewString()

	planner, err := NewTripPlanner(id, nil, s.catalog, s.store, s.opts, s.logger)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	planner.Save(ctx)

	s.mu.Lock()
	s.planners[id] = &session{planner: planner, lastUsed: s.now()}
	s.mu.Unlock()

	s.logger.Info("trip created", zap.String("trip_id", id))
	return planner, nil
}

// Get returns the planner of id, loading its snapshot on first access.
// Unknown or malformed ids yield ports.ErrNotFound.
func (s *Sessions) Get(ctx context.Context, id string) (*TripPlanner, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get session %q: %w", id, ports.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.planners[id]; ok {
		sess.lastUsed = s.now()
		return sess.planner, nil
	}

	if s.store == nil {
		return nil, fmt.Errorf("get session %q: %w", id, ports.ErrNotFound)
	}

	plan, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session %q: load snapshot: %w", id, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("get session %q: %w", id, ports.ErrNotFound)
	}

	planner, err := NewTripPlanner(id, plan, s.catalog, s.store, s.opts, s.logger)
	if err != nil {
		return nil, fmt.Errorf("get session %q: %w", id, err)
	}
	s.planners[id] = &session{planner: planner, lastUsed: s.now()}
	return planner, nil
}

// Delete forgets a trip and removes its snapshot.
func (s *Sessions) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.planners, id)
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	return nil
}

// Len reports how many planners are held in memory.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.planners)
}

// EvictIdle drops every planner not used for longer than idle and reports
// how many were dropped. Without a store nothing is evicted, since the
// planner is then the only copy of its trip.
func (s *Sessions) EvictIdle(idle time.Duration) int {
	if s.store == nil {
		return 0
	}
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.planners {
		if sess.lastUsed.Before(cutoff) {
			delete(s.planners, id)
			n++
		}
	}
	return n
}

// RunEviction calls EvictIdle every interval until ctx is done.
func (s *Sessions) RunEviction(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(idle); n > 0 {
				s.logger.Debug("idle trips evicted",
					zap.Int("evicted", n),
					zap.Int("remaining", s.Len()),
				)
			}
		}
	}
}
