package repositories

import (
	"errors"
	"fmt"
	"trip-planner-service/internal/platform/db"

	"github.com/jmoiron/sqlx"
)

// Initialize the catalog and snapshot schema for the given dialect.
func InitSchema(conn *sqlx.DB, dialect string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	payloadType := "TEXT"
	switch dialect {
	case db.DialectPostgres:
		payloadType = "JSONB"
	case db.DialectSqlite:
	default:
		return fmt.Errorf("init schema: unknown dialect %q", dialect)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCountriesQuery := `
	CREATE TABLE IF NOT EXISTS countries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL,
		flag TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	);
	`

	createRegionsQuery := `
	CREATE TABLE IF NOT EXISTS regions (
		id TEXT PRIMARY KEY,
		country_id TEXT NOT NULL REFERENCES countries(id),
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		popular_activities TEXT NOT NULL DEFAULT '[]',
		position INTEGER NOT NULL DEFAULT 0
	);
	`

	createActivitiesQuery := `
	CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		region_id TEXT NOT NULL REFERENCES regions(id),
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		duration INTEGER NOT NULL,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		price_level INTEGER NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		external_url TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		position INTEGER NOT NULL DEFAULT 0
	);
	`

	createActivityIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_activities_region_category
	ON activities(region_id, category);
	`

	createSnapshotsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS trip_snapshots (
		trip_id TEXT PRIMARY KEY,
		payload %s NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`, payloadType)

	statements := []string{
		createCountriesQuery,
		createRegionsQuery,
		createActivitiesQuery,
		createActivityIndexQuery,
		createSnapshotsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
