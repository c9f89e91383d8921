package repositories

import (
	"context"
	"os"
	"testing"
	"trip-planner-service/internal/platform/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres when TEST_DATABASE_URL is set.
func TestSQLSnapshotStoreRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, InitSchema(conn, db.DialectPostgres))

	ctx := context.Background()
	store := NewSQLSnapshotStore(conn.DB)
	id := uuid.NewString()
	defer func() { _ = store.Delete(ctx, id) }()

	missing, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, missing)

	want := samplePlan()
	require.NoError(t, store.Save(ctx, id, want))
	require.NoError(t, store.Save(ctx, id, want))

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
