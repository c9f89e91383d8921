package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("test")
	b := NewCollector("test")

	a.CommandApplied("select_region", nil)

	assert.Contains(t, scrape(t, a), `test_planner_commands_total{command="select_region",status="ok"} 1`)
	assert.NotContains(t, scrape(t, b), "select_region")
}

func TestObserveRequest(t *testing.T) {
	c := NewCollector("test")

	c.ObserveRequest(http.MethodGet, "GET /trips/{id}", http.StatusOK, 20*time.Millisecond)
	c.ObserveRequest(http.MethodGet, "GET /trips/{id}", http.StatusOK, 10*time.Millisecond)
	c.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	out := scrape(t, c)
	assert.Contains(t, out, `test_http_requests_total{method="GET",route="GET /trips/{id}",status="200"} 2`)
	assert.Contains(t, out, `test_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, out, `test_http_request_duration_seconds_count{method="GET",route="GET /trips/{id}"} 2`)
}

func TestCommandOutcomes(t *testing.T) {
	c := NewCollector("test")

	c.CommandApplied("set_budget", nil)
	c.CommandApplied("set_budget", errors.New("invalid budget"))
	c.SnapshotSaveFailed("set_budget")

	out := scrape(t, c)
	assert.Contains(t, out, `test_planner_commands_total{command="set_budget",status="ok"} 1`)
	assert.Contains(t, out, `test_planner_commands_total{command="set_budget",status="error"} 1`)
	assert.Contains(t, out, `test_snapshot_save_failures_total{command="set_budget"} 1`)
}

func TestTrackActiveTrips(t *testing.T) {
	c := NewCollector("test")
	n := 3
	c.TrackActiveTrips(func() int { return n })

	assert.Contains(t, scrape(t, c), "test_active_trips 3")
	n = 5
	assert.Contains(t, scrape(t, c), "test_active_trips 5")
}
