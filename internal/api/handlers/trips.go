package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/apperr"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

type TripHandler struct {
	Sessions *services.Sessions
}

type tripCommand func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error)

func writeTrip(w http.ResponseWriter, r *http.Request, status int, id string, plan *domain.TripPlan) {
	payload, err := domain.EncodeSnapshot(plan)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, status, dto.TripResponse{ID: id, Plan: payload})
}

func (h *TripHandler) planner(ctx context.Context, id string) (*services.TripPlanner, error) {
	p, err := h.Sessions.Get(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, apperr.ErrTripNotFound
	}
	return p, err
}

// run resolves the trip of the request and applies cmd to it.
func (h *TripHandler) run(w http.ResponseWriter, r *http.Request, cmd tripCommand) {
	id := r.PathValue("id")

	p, err := h.planner(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	plan, err := cmd(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeTrip(w, r, http.StatusOK, id, plan)
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := h.Sessions.Create(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeTrip(w, r, http.StatusCreated, p.ID(), p.Snapshot())
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(_ context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.Snapshot(), nil
	})
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.planner(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Sessions.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TripHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.Clear(ctx)
	})
}

func (h *TripHandler) Stats(w http.ResponseWriter, r *http.Request) {
	p, err := h.planner(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	plan := p.Snapshot()
	budget := services.SummarizeBudget(plan)
	shares := services.CategoryBreakdown(plan)

	res := dto.TripStatsResponse{
		Budget: dto.BudgetResponse{
			TotalSpent:    budget.TotalSpent,
			TotalBudget:   budget.TotalBudget,
			Currency:      budget.Currency,
			Percentage:    budget.Percentage,
			Status:        string(budget.Status),
			ActivityCount: budget.ActivityCount,
			AveragePerDay: budget.AveragePerDay,
		},
		Categories: make([]dto.CategoryShareResponse, 0, len(shares)),
	}
	for _, s := range shares {
		res.Categories = append(res.Categories, dto.CategoryShareResponse{
			Key:        s.Key,
			Count:      s.Count,
			Percentage: s.Percentage,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) SelectCountry(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectCountryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.SelectCountry(ctx, req.CountryID)
	})
}

func (h *TripHandler) SelectRegion(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectRegionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.SelectRegion(ctx, req.RegionID)
	})
}

func (h *TripHandler) SetDays(w http.ResponseWriter, r *http.Request) {
	var req dto.SetDaysRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.SetNumberOfDays(ctx, req.NumberOfDays)
	})
}

func (h *TripHandler) SetStartDate(w http.ResponseWriter, r *http.Request) {
	var req dto.SetStartDateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var start *time.Time
	if req.StartDate != nil {
		t, err := time.Parse(domain.DateLayout, *req.StartDate)
		if err != nil {
			writeError(w, r, apperr.ErrInvalidRequest.WithMessage("startDate must be YYYY-MM-DD"))
			return
		}
		start = &t
	}

	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.SetStartDate(ctx, start)
	})
}

func (h *TripHandler) SetCurrentDay(w http.ResponseWriter, r *http.Request) {
	var req dto.SetCurrentDayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.SetCurrentDay(ctx, req.CurrentDay)
	})
}

func (h *TripHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req dto.SetBudgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		if req.Currency == "" {
			return p.SetTotalBudget(ctx, *req.TotalBudget)
		}
		return p.SetBudget(ctx, *req.TotalBudget, req.Currency)
	})
}

func (h *TripHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	var req dto.SetCurrencyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.SetCurrency(ctx, req.Currency)
	})
}

func (h *TripHandler) PlaceActivity(w http.ResponseWriter, r *http.Request) {
	day, err := pathInt(r, "day")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.PlaceActivityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.SelectActivity(ctx, day, r.PathValue("slotID"), req.ActivityID)
	})
}

func (h *TripHandler) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	day, err := pathInt(r, "day")
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.RemoveActivity(ctx, day, r.PathValue("slotID"))
	})
}

func (h *TripHandler) UpdateCost(w http.ResponseWriter, r *http.Request) {
	day, err := pathInt(r, "day")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.UpdateCostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.UpdateActivityCost(ctx, day, r.PathValue("slotID"), *req.Cost)
	})
}

func (h *TripHandler) AddDestination(w http.ResponseWriter, r *http.Request) {
	var req dto.AddDestinationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.AddDestination(ctx, req.ActivityID)
	})
}

func (h *TripHandler) RemoveDestination(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.RemoveDestination(ctx, r.PathValue("activityID"))
	})
}

func (h *TripHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.Optimize(ctx)
	})
}

// SetRoute stores a route ordered by the caller in place of the optimized one.
func (h *TripHandler) SetRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.SetRouteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.SetOptimizedRoute(ctx, dto.ActivitiesToDomain(req.Route))
	})
}

func (h *TripHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.GenerateSuggestions(ctx)
	})
}

func (h *TripHandler) Import(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.ImportOptimizedRoute(ctx)
	})
}

func (h *TripHandler) AutoPopulate(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, func(ctx context.Context, p *services.TripPlanner) (*domain.TripPlan, error) {
		return p.AutoPopulate(ctx)
	})
}
