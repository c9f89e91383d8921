package handlers

import (
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/platform/apperr"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// RouteHandler exposes the route optimizer and the slot recalculation
// without touching any trip.
type RouteHandler struct {
	DefaultMetric string
	// ResolveMetric looks a distance metric up by name.
	ResolveMetric func(name string) (ports.DistanceMetric, error)
}

func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRouteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	name := req.Metric
	if name == "" {
		name = h.DefaultMetric
	}
	metric, err := h.ResolveMetric(name)
	if err != nil {
		writeError(w, r, apperr.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	route := services.Optimize(dto.ActivitiesToDomain(req.Destinations), metric)
	writeJSON(w, r, http.StatusOK, dto.OptimizeRouteResponse{
		Route:         route,
		TotalDistance: services.RouteDistance(route, metric),
		Metric:        name,
	})
}

func (h *RouteHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req dto.RecalculateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RecalculateResponse{
		TimeSlots: services.RecalculateSlotTimes(dto.SlotsToDomain(req.TimeSlots)),
	})
}
