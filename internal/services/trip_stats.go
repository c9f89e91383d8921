package services

import (
	"math"
	"slices"
	"trip-planner-service/internal/domain"
)

type BudgetStatus string

const (
	BudgetOK      BudgetStatus = "ok"
	BudgetWarning BudgetStatus = "warning"
	BudgetOver    BudgetStatus = "over"
)

// Spending of a plan against its budget.
type BudgetSummary struct {
	TotalSpent    float64
	TotalBudget   float64
	Currency      string
	Percentage    float64 // capped at 100
	Status        BudgetStatus
	ActivityCount int
	AveragePerDay float64
}

// Share of placed activities falling into one display group.
type CategoryShare struct {
	Key        string
	Count      int
	Percentage float64
}

// SummarizeBudget totals the estimated costs of every placed activity.
func SummarizeBudget(plan *domain.TripPlan) BudgetSummary {
	s := BudgetSummary{
		TotalBudget: plan.TotalBudget,
		Currency:    plan.Currency,
		Status:      BudgetOK,
	}

	for _, d := range plan.DailyItineraries {
		for _, a := range d.Activities() {
			s.TotalSpent += a.Cost()
			s.ActivityCount++
		}
	}

	if plan.TotalBudget > 0 {
		s.Percentage = math.Min(s.TotalSpent/plan.TotalBudget*100, 100)
	}
	switch {
	case s.Percentage >= 100:
		s.Status = BudgetOver
	case s.Percentage >= 80:
		s.Status = BudgetWarning
	}

	if n := len(plan.DailyItineraries); n > 0 {
		s.AveragePerDay = math.Round(s.TotalSpent / float64(n))
	}

	return s
}

// categoryGroup maps an activity category onto its statistics group.
func categoryGroup(c domain.Category) string {
	switch c {
	case domain.CategoryBreakfast, domain.CategoryLunch, domain.CategoryDinner, domain.CategoryCafe:
		return "food"
	case domain.CategoryTemple, domain.CategoryAttraction:
		return "temple"
	case domain.CategoryMuseum, domain.CategoryCulture:
		return "culture"
	case domain.CategoryPark:
		return "nature"
	case domain.CategoryShopping:
		return "shopping"
	case domain.CategoryNightlife:
		return "nightlife"
	default:
		return "other"
	}
}

// CategoryBreakdown groups placed activities for the trip statistics view,
// largest group first. It is empty when nothing is placed.
func CategoryBreakdown(plan *domain.TripPlan) []CategoryShare {
	counts := map[string]int{}
	total := 0
	for _, d := range plan.DailyItineraries {
		for _, a := range d.Activities() {
			counts[categoryGroup(a.Category)]++
			total++
		}
	}

	out := make([]CategoryShare, 0, len(counts))
	for key, n := range counts {
		out = append(out, CategoryShare{
			Key:        key,
			Count:      n,
			Percentage: float64(n) / float64(total) * 100,
		})
	}

	slices.SortFunc(out, func(a, b CategoryShare) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if a.Key < b.Key {
			return -1
		}
		if a.Key > b.Key {
			return 1
		}
		return 0
	})

	return out
}
