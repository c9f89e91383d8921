package ports

import (
	"context"
	"errors"
	"trip-planner-service/internal/domain"
)

// ErrNotFound is returned when a catalog or snapshot lookup finds no record.
var ErrNotFound = errors.New("not found")

// Port: read-only access to the static country/region/activity catalog.
type CatalogRepository interface {
	GetCountry(ctx context.Context, id string) (*domain.Country, error)
	GetRegion(ctx context.Context, id string) (*domain.Region, error)
	GetActivity(ctx context.Context, id string) (*domain.Activity, error)
	// Return every activity of a region in catalog order.
	ListActivities(ctx context.Context, regionID string) ([]domain.Activity, error)
	// Return the activities of a region whose category is in categories.
	ListActivitiesByCategory(ctx context.Context, regionID string, categories []domain.Category) ([]domain.Activity, error)
}
