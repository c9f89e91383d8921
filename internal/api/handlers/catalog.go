package handlers

import (
	"net/http"
	"strings"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/apperr"
	"trip-planner-service/internal/ports"
)

type CatalogHandler struct {
	Catalog ports.CatalogRepository
}

// ListActivities returns the activities of a region, optionally narrowed to
// a comma separated list of categories.
func (h *CatalogHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	regionID := r.PathValue("regionID")

	if _, err := h.Catalog.GetRegion(r.Context(), regionID); err != nil {
		writeError(w, r, err)
		return
	}

	var (
		activities []domain.Activity
		err        error
	)
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		var categories []domain.Category
		for _, part := range strings.Split(raw, ",") {
			c := domain.Category(strings.TrimSpace(part))
			if !c.Valid() {
				writeError(w, r, apperr.ErrInvalidRequest.WithMessage("unknown category "+string(c)))
				return
			}
			categories = append(categories, c)
		}
		activities, err = h.Catalog.ListActivitiesByCategory(r.Context(), regionID, categories)
	} else {
		activities, err = h.Catalog.ListActivities(r.Context(), regionID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListActivitiesResponse{RegionID: regionID, Activities: activities})
}
