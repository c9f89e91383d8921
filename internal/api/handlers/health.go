package handlers

import (
	"context"
	"net/http"
	"time"
)

// Checker reports whether a backing dependency is reachable.
type Checker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	// Named dependencies probed on every call; may be empty.
	Checks map[string]Checker
}

// Health is a liveness check that also probes the configured dependencies.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	res := map[string]string{"status": "ok"}
	for name, c := range h.Checks {
		if err := c.Health(ctx); err != nil {
			status = http.StatusServiceUnavailable
			res["status"] = "degraded"
			res[name] = err.Error()
			continue
		}
		res[name] = "ok"
	}

	writeJSON(w, r, status, res)
}

// CheckFunc adapts a ping function to Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Health(ctx context.Context) error { return f(ctx) }
