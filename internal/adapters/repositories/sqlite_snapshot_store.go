package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// SQLite backed store of trip snapshots, one JSON payload per trip.
type SqliteSnapshotStore struct {
	DB *sql.DB
}

func NewSqliteSnapshotStore(db *sql.DB) *SqliteSnapshotStore {
	return &SqliteSnapshotStore{DB: db}
}

func (s *SqliteSnapshotStore) Load(ctx context.Context, id string) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "snapshot.sqlite.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("snapshot store: db is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("load snapshot: id must not be empty")
	}

	var payload string
	err = s.DB.QueryRowContext(ctx, `
	SELECT payload
	FROM trip_snapshots
	WHERE trip_id = ?;
	`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: query trip_snapshots table: %w", id, err)
	}

	return decodeStored(id, []byte(payload))
}

func (s *SqliteSnapshotStore) Save(ctx context.Context, id string, plan *domain.TripPlan) (err error) {
	defer obs.Time(ctx, "snapshot.sqlite.Save")(&err)

	if s.DB == nil {
		return errors.New("snapshot store: db is nil")
	}
	if strings.TrimSpace(id) == "" {
		return errors.New("save snapshot: id must not be empty")
	}

	payload, err := domain.EncodeSnapshot(plan)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", id, err)
	}

	if _, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO trip_snapshots (
		trip_id,
		payload,
		updated_at
	)
	VALUES (?, ?, CURRENT_TIMESTAMP);
	`, id, string(payload)); err != nil {
		return fmt.Errorf("save snapshot %q: %w", id, err)
	}

	return nil
}

func (s *SqliteSnapshotStore) Delete(ctx context.Context, id string) error {
	if s.DB == nil {
		return errors.New("snapshot store: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM trip_snapshots WHERE trip_id = ?;`, id); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", id, err)
	}
	return nil
}
