package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/jmoiron/sqlx"
)

// SQL-backed implementation of the CatalogRepository port. Queries are
// written with '?' placeholders and rebound for the connection's driver, so
// the same repository serves SQLite and Postgres.
type CatalogRepository struct{ DB *sqlx.DB }

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

type countryRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Code string `db:"code"`
	Flag string `db:"flag"`
}

type regionRow struct {
	ID                string  `db:"id"`
	CountryID         string  `db:"country_id"`
	Name              string  `db:"name"`
	Lat               float64 `db:"lat"`
	Lng               float64 `db:"lng"`
	PopularActivities string  `db:"popular_activities"`
}

func (r regionRow) toDomain() (domain.Region, error) {
	region := domain.Region{
		ID:          r.ID,
		Name:        r.Name,
		CountryID:   r.CountryID,
		Coordinates: [2]float64{r.Lat, r.Lng},
	}
	if err := json.Unmarshal([]byte(r.PopularActivities), &region.PopularActivities); err != nil {
		return domain.Region{}, fmt.Errorf("region %q: decode popular activities: %w", r.ID, err)
	}
	return region, nil
}

type activityRow struct {
	ID          string  `db:"id"`
	RegionID    string  `db:"region_id"`
	Name        string  `db:"name"`
	Category    string  `db:"category"`
	Duration    int     `db:"duration"`
	Rating      float64 `db:"rating"`
	PriceLevel  int     `db:"price_level"`
	ImageURL    string  `db:"image_url"`
	ExternalURL string  `db:"external_url"`
	Lat         float64 `db:"lat"`
	Lng         float64 `db:"lng"`
	Address     string  `db:"address"`
	Description string  `db:"description"`
	Tags        string  `db:"tags"`
}

func (r activityRow) toDomain() (domain.Activity, error) {
	a := domain.Activity{
		ID:          r.ID,
		Name:        r.Name,
		Category:    domain.Category(r.Category),
		Duration:    r.Duration,
		Rating:      r.Rating,
		PriceLevel:  r.PriceLevel,
		ImageURL:    r.ImageURL,
		ExternalURL: r.ExternalURL,
		Location:    domain.Location{Lat: r.Lat, Lng: r.Lng, Address: r.Address},
		Description: r.Description,
		RegionID:    r.RegionID,
	}
	if err := json.Unmarshal([]byte(r.Tags), &a.Tags); err != nil {
		return domain.Activity{}, fmt.Errorf("activity %q: decode tags: %w", r.ID, err)
	}
	return a, nil
}

const activityColumns = `
	id, region_id, name, category, duration, rating, price_level,
	image_url, external_url, lat, lng, address, description, tags
`

func (c *CatalogRepository) check() error {
	if c.DB == nil {
		return errors.New("catalog repository: DB is nil")
	}
	return nil
}

// Return a country together with its regions.
func (c *CatalogRepository) GetCountry(ctx context.Context, id string) (_ *domain.Country, err error) {
	defer obs.Time(ctx, "catalog.GetCountry")(&err)
	if err := c.check(); err != nil {
		return nil, err
	}

	var row countryRow
	q := c.DB.Rebind(`SELECT id, name, code, flag FROM countries WHERE id = ?;`)
	if err := c.DB.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get country %q: %w", id, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("get country %q: %w", id, err)
	}

	var rows []regionRow
	q = c.DB.Rebind(`
	SELECT id, country_id, name, lat, lng, popular_activities
	FROM regions
	WHERE country_id = ?
	ORDER BY position, id;
	`)
	if err := c.DB.SelectContext(ctx, &rows, q, id); err != nil {
		return nil, fmt.Errorf("get country %q: query regions: %w", id, err)
	}

	country := &domain.Country{
		ID:      row.ID,
		Name:    row.Name,
		Code:    row.Code,
		Flag:    row.Flag,
		Regions: make([]domain.Region, 0, len(rows)),
	}
	for _, r := range rows {
		region, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("get country %q: %w", id, err)
		}
		country.Regions = append(country.Regions, region)
	}

	return country, nil
}

func (c *CatalogRepository) GetRegion(ctx context.Context, id string) (*domain.Region, error) {
	if err := c.check(); err != nil {
		return nil, err
	}

	var row regionRow
	q := c.DB.Rebind(`
	SELECT id, country_id, name, lat, lng, popular_activities
	FROM regions
	WHERE id = ?;
	`)
	if err := c.DB.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get region %q: %w", id, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("get region %q: %w", id, err)
	}

	region, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("get region %q: %w", id, err)
	}
	return &region, nil
}

func (c *CatalogRepository) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	if err := c.check(); err != nil {
		return nil, err
	}

	var row activityRow
	q := c.DB.Rebind(`SELECT ` + activityColumns + ` FROM activities WHERE id = ?;`)
	if err := c.DB.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get activity %q: %w", id, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("get activity %q: %w", id, err)
	}

	a, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("get activity %q: %w", id, err)
	}
	return &a, nil
}

// Return every activity of a region in seed order.
func (c *CatalogRepository) ListActivities(ctx context.Context, regionID string) (_ []domain.Activity, err error) {
	defer obs.Time(ctx, "catalog.ListActivities")(&err)
	if err := c.check(); err != nil {
		return nil, err
	}

	q := c.DB.Rebind(`SELECT ` + activityColumns + ` FROM activities WHERE region_id = ? ORDER BY position, id;`)
	return c.selectActivities(ctx, "list activities", q, regionID)
}

// Return the activities of a region whose category is in categories.
// An empty category list matches nothing.
func (c *CatalogRepository) ListActivitiesByCategory(
	ctx context.Context,
	regionID string,
	categories []domain.Category,
) ([]domain.Activity, error) {
	if err := c.check(); err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		return []domain.Activity{}, nil
	}

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = string(cat)
	}

	q, args, err := sqlx.In(`
	SELECT `+activityColumns+`
	FROM activities
	WHERE region_id = ? AND category IN (?)
	ORDER BY position, id;
	`, regionID, names)
	if err != nil {
		return nil, fmt.Errorf("list activities by category: build query: %w", err)
	}

	return c.selectActivities(ctx, "list activities by category", c.DB.Rebind(q), args...)
}

func (c *CatalogRepository) selectActivities(ctx context.Context, op, q string, args ...any) ([]domain.Activity, error) {
	var rows []activityRow
	if err := c.DB.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("%s: query activities table: %w", op, err)
	}

	out := make([]domain.Activity, 0, len(rows))
	for _, r := range rows {
		a, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, a)
	}
	return out, nil
}
