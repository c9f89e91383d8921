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

// SQLSnapshotStore keeps trip snapshots in Postgres.
type SQLSnapshotStore struct {
	DB *sql.DB
}

func NewSQLSnapshotStore(db *sql.DB) *SQLSnapshotStore {
	return &SQLSnapshotStore{DB: db}
}

func (s *SQLSnapshotStore) Load(ctx context.Context, id string) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "snapshot.sql.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("snapshot store: db is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("load snapshot: id must not be empty")
	}

	var payload []byte
	err = s.DB.QueryRowContext(ctx, `
	SELECT payload
	FROM trip_snapshots
	WHERE trip_id = $1;
	`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: query trip_snapshots table: %w", id, err)
	}

	return decodeStored(id, payload)
}

func (s *SQLSnapshotStore) Save(ctx context.Context, id string, plan *domain.TripPlan) (err error) {
	defer obs.Time(ctx, "snapshot.sql.Save")(&err)

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
	INSERT INTO trip_snapshots (trip_id, payload, updated_at)
	VALUES ($1, $2, CURRENT_TIMESTAMP)
	ON CONFLICT (trip_id) DO UPDATE
	SET payload = EXCLUDED.payload,
		updated_at = EXCLUDED.updated_at;
	`, id, string(payload)); err != nil {
		return fmt.Errorf("save snapshot %q: %w", id, err)
	}

	return nil
}

func (s *SQLSnapshotStore) Delete(ctx context.Context, id string) error {
	if s.DB == nil {
		return errors.New("snapshot store: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM trip_snapshots WHERE trip_id = $1;`, id); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", id, err)
	}
	return nil
}
