package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"trip-planner-service/internal/domain"

	"github.com/jmoiron/sqlx"
)

// CatalogSeed is the layout of the catalog seed file.
type CatalogSeed struct {
	Countries  []domain.Country  `json:"countries"`
	Regions    []domain.Region   `json:"regions"`
	Activities []domain.Activity `json:"activities"`
}

// Populate the catalog tables from a JSON seed file.
func SeedCatalogFromJSON(conn *sqlx.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed catalog: read %q: %w", jsonPath, err)
	}

	var data CatalogSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed catalog: parse json: %w", err)
	}

	return SeedCatalog(conn, data)
}

// SeedCatalog validates data and upserts it in a single transaction.
func SeedCatalog(conn *sqlx.DB, data CatalogSeed) error {
	if err := data.validate(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	tx, err := conn.Beginx()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	countryQuery := tx.Rebind(`
	INSERT INTO countries (id, name, code, flag, position)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET name = excluded.name,
		code = excluded.code,
		flag = excluded.flag,
		position = excluded.position;
	`)
	for i, c := range data.Countries {
		if _, err := tx.Exec(countryQuery, c.ID, c.Name, c.Code, c.Flag, i); err != nil {
			return fmt.Errorf("seed catalog: insert country id=%q: %w", c.ID, err)
		}
	}

	regionQuery := tx.Rebind(`
	INSERT INTO regions (id, country_id, name, lat, lng, popular_activities, position)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET country_id = excluded.country_id,
		name = excluded.name,
		lat = excluded.lat,
		lng = excluded.lng,
		popular_activities = excluded.popular_activities,
		position = excluded.position;
	`)
	for i, r := range data.Regions {
		popular, err := encodeList(r.PopularActivities)
		if err != nil {
			return fmt.Errorf("seed catalog: region id=%q: %w", r.ID, err)
		}
		if _, err := tx.Exec(regionQuery, r.ID, r.CountryID, r.Name, r.Coordinates[0], r.Coordinates[1], popular, i); err != nil {
			return fmt.Errorf("seed catalog: insert region id=%q: %w", r.ID, err)
		}
	}

	activityQuery := tx.Rebind(`
	INSERT INTO activities (
		id, region_id, name, category, duration, rating, price_level,
		image_url, external_url, lat, lng, address, description, tags, position
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET region_id = excluded.region_id,
		name = excluded.name,
		category = excluded.category,
		duration = excluded.duration,
		rating = excluded.rating,
		price_level = excluded.price_level,
		image_url = excluded.image_url,
		external_url = excluded.external_url,
		lat = excluded.lat,
		lng = excluded.lng,
		address = excluded.address,
		description = excluded.description,
		tags = excluded.tags,
		position = excluded.position;
	`)
	for i, a := range data.Activities {
		tags, err := encodeList(a.Tags)
		if err != nil {
			return fmt.Errorf("seed catalog: activity id=%q: %w", a.ID, err)
		}
		if _, err := tx.Exec(activityQuery,
			a.ID, a.RegionID, a.Name, string(a.Category), a.Duration, a.Rating, a.PriceLevel,
			a.ImageURL, a.ExternalURL, a.Location.Lat, a.Location.Lng, a.Location.Address,
			a.Description, tags, i,
		); err != nil {
			return fmt.Errorf("seed catalog: insert activity id=%q: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}

func (s CatalogSeed) validate() error {
	countries := make(map[string]struct{}, len(s.Countries))
	for i, c := range s.Countries {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("country at index %d: id cannot be empty", i+1)
		}
		countries[c.ID] = struct{}{}
	}

	regions := make(map[string]struct{}, len(s.Regions))
	for i, r := range s.Regions {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("region at index %d: id cannot be empty", i+1)
		}
		if _, ok := countries[r.CountryID]; !ok {
			return fmt.Errorf("region %q: unknown country %q", r.ID, r.CountryID)
		}
		regions[r.ID] = struct{}{}
	}

	for i, a := range s.Activities {
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("activity at index %d: id cannot be empty", i+1)
		}
		if _, ok := regions[a.RegionID]; !ok {
			return fmt.Errorf("activity %q: unknown region %q", a.ID, a.RegionID)
		}
		if !a.Category.Valid() {
			return fmt.Errorf("activity %q: invalid category %q", a.ID, a.Category)
		}
		if a.Duration <= 0 {
			return fmt.Errorf("activity %q: duration must be positive", a.ID)
		}
		if a.PriceLevel < 1 || a.PriceLevel > 4 {
			return fmt.Errorf("activity %q: price level %d out of range 1-4", a.ID, a.PriceLevel)
		}
	}

	return nil
}

func encodeList[T any](list []T) (string, error) {
	if list == nil {
		list = []T{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
