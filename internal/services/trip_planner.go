package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

var (
	ErrSlotNotFound  = errors.New("time slot not found")
	ErrInvalidBudget = errors.New("budget must be a non-negative number")
	ErrInvalidCost   = errors.New("cost must be a non-negative number")
)

// PlannerOptions tunes the heuristics of a TripPlanner.
type PlannerOptions struct {
	Metric  ports.DistanceMetric
	Buckets BucketPolicy
	// NewRandom creates the random source of one planner. Defaults to a
	// time-seeded math/rand source.
	NewRandom func() ports.RandomSource
	// Observer, when set, is told the outcome of every command.
	Observer ports.CommandObserver
}

func defaultRandom() ports.RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// TripPlanner owns one TripPlan and is the only way to change it.
//
// Every mutation is a named command executed through apply, which holds the
// planner lock for the whole read-modify-write, recalculates every day's
// slot times and persists the resulting snapshot. The planner is safe for
// concurrent use.
type TripPlanner struct {
	mu   sync.Mutex
	id   string
	plan *domain.TripPlan

	catalog  ports.CatalogRepository
	store    ports.SnapshotStore
	metric   ports.DistanceMetric
	buckets  BucketPolicy
	rng      ports.RandomSource
	observer ports.CommandObserver
	logger   *zap.Logger
}

// NewTripPlanner wraps plan, or a fresh plan when nil. The plan is normalized
// first: missing days are regenerated for the selected region and every slot
// time is recalculated.
func NewTripPlanner(
	id string,
	plan *domain.TripPlan,
	catalog ports.CatalogRepository,
	store ports.SnapshotStore,
	opts PlannerOptions,
	logger *zap.Logger,
) (*TripPlanner, error) {
	if catalog == nil {
		return nil, errors.New("new trip planner: catalog is nil")
	}
	if opts.Metric == nil {
		return nil, errors.New("new trip planner: distance metric is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	newRandom := opts.NewRandom
	if newRandom == nil {
		newRandom = defaultRandom
	}

	if plan == nil {
		plan = domain.NewTripPlan()
	}
	plan = plan.Clone()
	normalize(plan)

	return &TripPlanner{
		id:       id,
		plan:     plan,
		catalog:  catalog,
		store:    store,
		metric:   opts.Metric,
		buckets:  opts.Buckets,
		rng:      newRandom(),
		observer: opts.Observer,
		logger:   logger.With(zap.String("trip_id", id)),
	}, nil
}

func (p *TripPlanner) ID() string { return p.id }

// normalize restores the plan invariants after loading a snapshot.
func normalize(plan *domain.TripPlan) {
	plan.NumberOfDays = domain.ClampDays(plan.NumberOfDays)
	want := plan.NumberOfDays
	if plan.SelectedRegion == nil {
		want = 0
	}
	if len(plan.DailyItineraries) != want {
		regenerateDays(plan)
	}
	if plan.CurrentDay < 1 || plan.CurrentDay > plan.NumberOfDays {
		plan.CurrentDay = 1
	}
	recalculateDays(plan.DailyItineraries)
}

// regenerateDays rebuilds the itinerary from scratch, dropping placements.
// Without a selected region the plan has no days.
func regenerateDays(plan *domain.TripPlan) {
	plan.CurrentDay = 1
	if plan.SelectedRegion == nil {
		plan.DailyItineraries = []domain.DayItinerary{}
		return
	}
	plan.DailyItineraries = InitializeDays(*plan.SelectedRegion, plan.NumberOfDays, plan.StartDate)
}

// apply runs one named command against the plan.
//
// After the mutation every day is recalculated and the snapshot is saved.
// Saving is best effort: a failed save is logged and never fails or reverts
// the command.
func (p *TripPlanner) apply(
	ctx context.Context,
	command string,
	mutate func(plan *domain.TripPlan) error,
) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "planner."+command)(&err)
	if p.observer != nil {
		defer func() { p.observer.CommandApplied(command, err) }()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := mutate(p.plan); err != nil {
		return nil, fmt.Errorf("%s: %w", command, err)
	}

	recalculateDays(p.plan.DailyItineraries)
	p.persist(ctx, command)

	return p.plan.Clone(), nil
}

func (p *TripPlanner) persist(ctx context.Context, command string) {
	if p.store == nil {
		return
	}
	if err := p.store.Save(ctx, p.id, p.plan); err != nil {
		p.logger.Warn("snapshot save failed",
			zap.String("command", command),
			zap.Error(err),
		)
		if p.observer != nil {
			p.observer.SnapshotSaveFailed(command)
		}
	}
}

// Snapshot returns a deep copy of the current plan.
func (p *TripPlanner) Snapshot() *domain.TripPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan.Clone()
}

// Save persists the current plan without changing it.
func (p *TripPlanner) Save(ctx context.Context) *domain.TripPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.persist(ctx, "save")
	return p.plan.Clone()
}

// SelectCountry sets the country and clears the region selection.
// An empty id clears both.
func (p *TripPlanner) SelectCountry(ctx context.Context, countryID string) (*domain.TripPlan, error) {
	var country *domain.Country
	if countryID != "" {
		c, err := p.catalog.GetCountry(ctx, countryID)
		if err != nil {
			return nil, fmt.Errorf("select country: %w", err)
		}
		country = c
	}

	return p.apply(ctx, "select_country", func(plan *domain.TripPlan) error {
		plan.SelectedCountry = country
		plan.SelectedRegion = nil
		regenerateDays(plan)
		return nil
	})
}

// SelectRegion sets the region (and its country) and regenerates the days.
func (p *TripPlanner) SelectRegion(ctx context.Context, regionID string) (*domain.TripPlan, error) {
	region, err := p.catalog.GetRegion(ctx, regionID)
	if err != nil {
		return nil, fmt.Errorf("select region: %w", err)
	}

	country, err := p.catalog.GetCountry(ctx, region.CountryID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, fmt.Errorf("select region: country %q: %w", region.CountryID, err)
	}

	return p.apply(ctx, "select_region", func(plan *domain.TripPlan) error {
		if country != nil {
			plan.SelectedCountry = country
		}
		plan.SelectedRegion = region
		regenerateDays(plan)
		return nil
	})
}

// SetNumberOfDays clamps n to the supported range and regenerates the days.
func (p *TripPlanner) SetNumberOfDays(ctx context.Context, n int) (*domain.TripPlan, error) {
	return p.apply(ctx, "set_number_of_days", func(plan *domain.TripPlan) error {
		plan.NumberOfDays = domain.ClampDays(n)
		regenerateDays(plan)
		return nil
	})
}

// SetStartDate sets or clears the trip start date and regenerates the days
// so every date label is derived from it.
func (p *TripPlanner) SetStartDate(ctx context.Context, start *time.Time) (*domain.TripPlan, error) {
	return p.apply(ctx, "set_start_date", func(plan *domain.TripPlan) error {
		if start == nil {
			plan.StartDate = nil
		} else {
			d := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
			plan.StartDate = &d
		}
		regenerateDays(plan)
		return nil
	})
}

func (p *TripPlanner) SetCurrentDay(ctx context.Context, day int) (*domain.TripPlan, error) {
	return p.apply(ctx, "set_current_day", func(plan *domain.TripPlan) error {
		plan.CurrentDay = max(1, min(day, plan.NumberOfDays))
		return nil
	})
}

func validBudget(amount float64) bool {
	return amount >= 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

func (p *TripPlanner) SetTotalBudget(ctx context.Context, amount float64) (*domain.TripPlan, error) {
	return p.apply(ctx, "set_total_budget", func(plan *domain.TripPlan) error {
		if !validBudget(amount) {
			return ErrInvalidBudget
		}
		plan.TotalBudget = amount
		return nil
	})
}

// SetBudget sets the total budget and, when currency is not empty, the
// currency in one command. An invalid amount changes neither.
func (p *TripPlanner) SetBudget(ctx context.Context, amount float64, currency string) (*domain.TripPlan, error) {
	return p.apply(ctx, "set_budget", func(plan *domain.TripPlan) error {
		if !validBudget(amount) {
			return ErrInvalidBudget
		}
		plan.TotalBudget = amount
		if currency != "" {
			plan.Currency = domain.NormalizeCurrency(currency)
		}
		return nil
	})
}

func (p *TripPlanner) SetCurrency(ctx context.Context, currency string) (*domain.TripPlan, error) {
	return p.apply(ctx, "set_currency", func(plan *domain.TripPlan) error {
		plan.Currency = domain.NormalizeCurrency(currency)
		return nil
	})
}

// slot resolves a day/slot pair of plan.
func slot(plan *domain.TripPlan, dayNumber int, slotID string) (*domain.TimeSlot, error) {
	day := plan.Day(dayNumber)
	if day == nil {
		return nil, fmt.Errorf("%w: day %d", ErrSlotNotFound, dayNumber)
	}
	idx := day.SlotIndex(slotID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: day %d slot %q", ErrSlotNotFound, dayNumber, slotID)
	}
	return &day.TimeSlots[idx], nil
}

// SelectActivity places a copy of a catalog activity into a slot, replacing
// whatever the slot held.
func (p *TripPlanner) SelectActivity(ctx context.Context, dayNumber int, slotID, activityID string) (*domain.TripPlan, error) {
	activity, err := p.catalog.GetActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("select activity: %w", err)
	}

	return p.apply(ctx, "select_activity", func(plan *domain.TripPlan) error {
		s, err := slot(plan, dayNumber, slotID)
		if err != nil {
			return err
		}
		placed := activity.Clone()
		s.Activity = &placed
		return nil
	})
}

func (p *TripPlanner) RemoveActivity(ctx context.Context, dayNumber int, slotID string) (*domain.TripPlan, error) {
	return p.apply(ctx, "remove_activity", func(plan *domain.TripPlan) error {
		s, err := slot(plan, dayNumber, slotID)
		if err != nil {
			return err
		}
		s.Activity = nil
		return nil
	})
}

// UpdateActivityCost overrides the cost of the activity placed in a slot.
// The override applies to that placement only. Empty slots are left alone.
func (p *TripPlanner) UpdateActivityCost(ctx context.Context, dayNumber int, slotID string, cost float64) (*domain.TripPlan, error) {
	return p.apply(ctx, "update_activity_cost", func(plan *domain.TripPlan) error {
		if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
			return ErrInvalidCost
		}
		s, err := slot(plan, dayNumber, slotID)
		if err != nil {
			return err
		}
		if s.Activity != nil {
			placed := s.Activity.WithCost(cost)
			s.Activity = &placed
		}
		return nil
	})
}

// AddDestination appends an activity to the bucket list unless already there.
func (p *TripPlanner) AddDestination(ctx context.Context, activityID string) (*domain.TripPlan, error) {
	activity, err := p.catalog.GetActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("add destination: %w", err)
	}

	return p.apply(ctx, "add_destination", func(plan *domain.TripPlan) error {
		if !plan.HasDestination(activity.ID) {
			plan.SelectedDestinations = append(plan.SelectedDestinations, activity.Clone())
		}
		return nil
	})
}

func (p *TripPlanner) RemoveDestination(ctx context.Context, activityID string) (*domain.TripPlan, error) {
	return p.apply(ctx, "remove_destination", func(plan *domain.TripPlan) error {
		kept := make([]domain.Activity, 0, len(plan.SelectedDestinations))
		for _, d := range plan.SelectedDestinations {
			if d.ID != activityID {
				kept = append(kept, d)
			}
		}
		plan.SelectedDestinations = kept
		return nil
	})
}

// Optimize orders the bucket list into the optimized route. With fewer than
// two destinations there is nothing to order and the plan is unchanged.
func (p *TripPlanner) Optimize(ctx context.Context) (*domain.TripPlan, error) {
	return p.apply(ctx, "optimize", func(plan *domain.TripPlan) error {
		if len(plan.SelectedDestinations) < 2 {
			return nil
		}
		plan.OptimizedRoute = Optimize(plan.SelectedDestinations, p.metric)
		p.logger.Info("route optimized",
			zap.Int("destinations", len(plan.OptimizedRoute)),
			zap.Float64("distance", RouteDistance(plan.OptimizedRoute, p.metric)),
		)
		return nil
	})
}

// SetOptimizedRoute replaces the optimized route with a caller-ordered copy
// of route, e.g. after the traveller reorders stops by hand.
func (p *TripPlanner) SetOptimizedRoute(ctx context.Context, route []domain.Activity) (*domain.TripPlan, error) {
	return p.apply(ctx, "set_optimized_route", func(plan *domain.TripPlan) error {
		plan.OptimizedRoute = domain.CloneActivities(route)
		if plan.OptimizedRoute == nil {
			plan.OptimizedRoute = []domain.Activity{}
		}
		return nil
	})
}

// GenerateSuggestions extends the bucket list with random region activities
// and invalidates the optimized route.
func (p *TripPlanner) GenerateSuggestions(ctx context.Context) (*domain.TripPlan, error) {
	return p.apply(ctx, "generate_suggestions", func(plan *domain.TripPlan) error {
		if plan.SelectedRegion == nil {
			return nil
		}
		if SuggestionsNeeded(len(plan.SelectedDestinations), plan.NumberOfDays) == 0 {
			return nil
		}

		available, err := p.catalog.ListActivities(ctx, plan.SelectedRegion.ID)
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}

		plan.SelectedDestinations = GenerateSuggestions(plan.SelectedDestinations, available, plan.NumberOfDays, p.rng)
		plan.OptimizedRoute = []domain.Activity{}
		return nil
	})
}

// ImportOptimizedRoute rebuilds the days from the optimized route.
// Without a route or a region the plan is unchanged.
func (p *TripPlanner) ImportOptimizedRoute(ctx context.Context) (*domain.TripPlan, error) {
	return p.apply(ctx, "import_optimized_route", func(plan *domain.TripPlan) error {
		if len(plan.OptimizedRoute) == 0 || plan.SelectedRegion == nil {
			return nil
		}

		regenerateDays(plan)
		plan.DailyItineraries = DistributeRouteAcrossDays(plan.OptimizedRoute, plan.DailyItineraries)

		if placed := PlacedCount(plan.DailyItineraries); placed < len(plan.OptimizedRoute) {
			p.logger.Warn("optimized route exceeds day capacity",
				zap.Int("route", len(plan.OptimizedRoute)),
				zap.Int("placed", placed),
				zap.Int("items_per_day", ItemsPerDay(len(plan.OptimizedRoute), plan.NumberOfDays)),
			)
		}
		return nil
	})
}

// AutoPopulate backfills empty slots with activities of the selected region.
func (p *TripPlanner) AutoPopulate(ctx context.Context) (*domain.TripPlan, error) {
	return p.apply(ctx, "auto_populate", func(plan *domain.TripPlan) error {
		if plan.SelectedRegion == nil {
			return nil
		}

		candidates, err := p.catalog.ListActivities(ctx, plan.SelectedRegion.ID)
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}

		plan.DailyItineraries = AutoPopulate(plan.DailyItineraries, candidates, p.rng, p.buckets)
		return nil
	})
}

// Clear resets the plan to its defaults. The currency is kept.
func (p *TripPlanner) Clear(ctx context.Context) (*domain.TripPlan, error) {
	return p.apply(ctx, "clear", func(plan *domain.TripPlan) error {
		currency := plan.Currency
		*plan = *domain.NewTripPlan()
		plan.Currency = currency
		return nil
	})
}
