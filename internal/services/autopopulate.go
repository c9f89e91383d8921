package services

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// BucketPolicy selects which slot time decides the category of a backfilled slot.
type BucketPolicy int

const (
	// BucketStale uses the slot time as it was before the day was filled.
	// Earlier placements may shift a slot out of the bucket it was matched to.
	BucketStale BucketPolicy = iota
	// BucketFresh recalculates the day after every placement, so each lookup
	// sees the time the slot will actually start at.
	BucketFresh
)

func (b BucketPolicy) String() string {
	if b == BucketFresh {
		return "fresh"
	}
	return "stale"
}

// ParseBucketPolicy parses "stale" or "fresh". Empty means stale.
func ParseBucketPolicy(s string) (BucketPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stale":
		return BucketStale, nil
	case "fresh":
		return BucketFresh, nil
	default:
		return BucketStale, fmt.Errorf("parse bucket policy: unknown policy %q", s)
	}
}

// Base cost per price level; index 0 is unused by valid activities.
var priceLevelBaseCost = [...]float64{0, 15, 45, 90, 200}

// CategoriesForHour returns the categories suited to a slot starting at hour.
func CategoriesForHour(hour int) []domain.Category {
	switch {
	case hour >= 9 && hour < 10:
		return []domain.Category{domain.CategoryBreakfast, domain.CategoryCafe}
	case hour >= 10 && hour < 12:
		return []domain.Category{domain.CategoryTemple, domain.CategoryMuseum, domain.CategoryAttraction, domain.CategoryCulture}
	case hour >= 12 && hour < 14:
		return []domain.Category{domain.CategoryLunch}
	case hour >= 14 && hour < 18:
		return []domain.Category{domain.CategoryShopping, domain.CategoryPark, domain.CategoryAttraction}
	case hour >= 18 && hour < 20:
		return []domain.Category{domain.CategoryDinner}
	default:
		return []domain.Category{domain.CategoryNightlife, domain.CategoryCafe}
	}
}

// EstimateCost draws a cost for priceLevel: the level's base cost scaled by a
// uniform factor in [0.8, 1.2), rounded to a whole unit.
func EstimateCost(priceLevel int, rng ports.RandomSource) float64 {
	level := max(0, min(priceLevel, len(priceLevelBaseCost)-1))
	variation := rng.Float64()*0.4 + 0.8
	return math.Round(priceLevelBaseCost[level] * variation)
}

// AutoPopulate fills the empty slots of every day with random activities.
//
// For each empty slot the candidates are narrowed to the day's region and the
// categories of the slot's hour bucket; one match is picked uniformly and
// placed with a freshly estimated cost. Slots without a match stay empty.
// Occupied slots are never replaced. Every day is recalculated afterwards.
func AutoPopulate(
	days []domain.DayItinerary,
	candidates []domain.Activity,
	rng ports.RandomSource,
	policy BucketPolicy,
) []domain.DayItinerary {
	out := domain.CloneDays(days)

	for di := range out {
		day := &out[di]
		slots := day.TimeSlots

		for si := 0; si < len(slots); si++ {
			if !slots[si].Empty() {
				continue
			}

			matches := filterCandidates(candidates, day.Region.ID, CategoriesForHour(slots[si].Time.Hour()))
			if len(matches) == 0 {
				continue
			}

			chosen := matches[rng.Intn(len(matches))]
			pick := chosen.WithCost(EstimateCost(chosen.PriceLevel, rng))
			slots[si].Activity = &pick

			if policy == BucketFresh {
				slots = RecalculateSlotTimes(slots)
			}
		}

		day.TimeSlots = RecalculateSlotTimes(slots)
	}

	return out
}

func filterCandidates(candidates []domain.Activity, regionID string, categories []domain.Category) []domain.Activity {
	out := []domain.Activity{}
	for _, a := range candidates {
		if a.RegionID == regionID && slices.Contains(categories, a.Category) {
			out = append(out, a)
		}
	}
	return out
}
