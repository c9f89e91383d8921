package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: persistence of whole trip plan snapshots.
//
// Load returns (nil, nil) when no snapshot exists for id. A snapshot that
// exists but cannot be parsed is returned as a default plan.
type SnapshotStore interface {
	Load(ctx context.Context, id string) (*domain.TripPlan, error)
	Save(ctx context.Context, id string, plan *domain.TripPlan) error
	Delete(ctx context.Context, id string) error
}
