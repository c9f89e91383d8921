package api

import (
	"net/http"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/platform/metrics"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP API is built from.
type Deps struct {
	Sessions      *services.Sessions
	Catalog       ports.CatalogRepository
	DefaultMetric string
	ResolveMetric func(name string) (ports.DistanceMetric, error)
	Checks        map[string]handlers.Checker
	Logger        *zap.Logger
	// Metrics, when set, instruments every route and serves GET /metrics.
	Metrics *metrics.Collector
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	health := &handlers.HealthHandler{Checks: d.Checks}
	catalog := &handlers.CatalogHandler{Catalog: d.Catalog}
	routes := &handlers.RouteHandler{DefaultMetric: d.DefaultMetric, ResolveMetric: d.ResolveMetric}
	trips := &handlers.TripHandler{Sessions: d.Sessions}

	mux.HandleFunc("GET /health", health.Health)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}
	mux.HandleFunc("GET /regions/{regionID}/activities", catalog.ListActivities)

	mux.HandleFunc("POST /routes/optimize", routes.Optimize)
	mux.HandleFunc("POST /schedule/recalculate", routes.Recalculate)

	mux.HandleFunc("POST /trips", trips.Create)
	mux.HandleFunc("GET /trips/{id}", trips.Get)
	mux.HandleFunc("DELETE /trips/{id}", trips.Delete)
	mux.HandleFunc("POST /trips/{id}/clear", trips.Clear)
	mux.HandleFunc("GET /trips/{id}/stats", trips.Stats)

	mux.HandleFunc("PUT /trips/{id}/country", trips.SelectCountry)
	mux.HandleFunc("PUT /trips/{id}/region", trips.SelectRegion)
	mux.HandleFunc("PUT /trips/{id}/days", trips.SetDays)
	mux.HandleFunc("PUT /trips/{id}/start-date", trips.SetStartDate)
	mux.HandleFunc("PUT /trips/{id}/current-day", trips.SetCurrentDay)
	mux.HandleFunc("PUT /trips/{id}/budget", trips.SetBudget)
	mux.HandleFunc("PUT /trips/{id}/currency", trips.SetCurrency)

	mux.HandleFunc("PUT /trips/{id}/days/{day}/slots/{slotID}", trips.PlaceActivity)
	mux.HandleFunc("DELETE /trips/{id}/days/{day}/slots/{slotID}", trips.RemoveActivity)
	mux.HandleFunc("PUT /trips/{id}/days/{day}/slots/{slotID}/cost", trips.UpdateCost)

	mux.HandleFunc("POST /trips/{id}/destinations", trips.AddDestination)
	mux.HandleFunc("DELETE /trips/{id}/destinations/{activityID}", trips.RemoveDestination)

	mux.HandleFunc("POST /trips/{id}/optimize", trips.Optimize)
	mux.HandleFunc("PUT /trips/{id}/route", trips.SetRoute)
	mux.HandleFunc("POST /trips/{id}/suggestions", trips.Suggestions)
	mux.HandleFunc("POST /trips/{id}/import", trips.Import)
	mux.HandleFunc("POST /trips/{id}/autopopulate", trips.AutoPopulate)

	return requestIDMiddleware(loggingMiddleware(logger, metricsMiddleware(d.Metrics, recoveryMiddleware(logger, mux))))
}
