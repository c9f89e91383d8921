package domain

import (
	"strings"
	"time"
)

const (
	MinDays         = 1
	MaxDays         = 7
	DefaultDays     = 3
	DefaultCurrency = "USD"

	// DateLayout is the persisted form of a trip start date.
	DateLayout = "2006-01-02"
	// DayLabelLayout renders a day's date for display, e.g. "Tue, Oct 20".
	DayLabelLayout = "Mon, Jan 2"
)

// TripPlan is the aggregate root of a planning session.
//
// DailyItineraries always has NumberOfDays entries once a region is selected
// and is empty while none is.
// It is regenerated, never patched, when the region, day count or start date
// changes, which discards prior placements. SelectedDestinations is the
// traveller's unordered bucket list; OptimizedRoute is the last computed order
// and is empty until an optimization runs.
type TripPlan struct {
	SelectedCountry      *Country
	SelectedRegion       *Region
	NumberOfDays         int
	DailyItineraries     []DayItinerary
	CurrentDay           int
	StartDate            *time.Time
	TotalBudget          float64
	Currency             string
	SelectedDestinations []Activity
	OptimizedRoute       []Activity
}

// NewTripPlan returns an empty plan with default settings.
func NewTripPlan() *TripPlan {
	return &TripPlan{
		NumberOfDays:         DefaultDays,
		DailyItineraries:     []DayItinerary{},
		CurrentDay:           1,
		Currency:             DefaultCurrency,
		SelectedDestinations: []Activity{},
		OptimizedRoute:       []Activity{},
	}
}

// Clone returns a deep copy of p.
func (p *TripPlan) Clone() *TripPlan {
	if p == nil {
		return nil
	}
	out := *p
	if p.SelectedCountry != nil {
		c := *p.SelectedCountry
		c.Regions = make([]Region, len(p.SelectedCountry.Regions))
		for i, r := range p.SelectedCountry.Regions {
			c.Regions[i] = r.Clone()
		}
		out.SelectedCountry = &c
	}
	if p.SelectedRegion != nil {
		r := p.SelectedRegion.Clone()
		out.SelectedRegion = &r
	}
	if p.StartDate != nil {
		d := *p.StartDate
		out.StartDate = &d
	}
	out.DailyItineraries = CloneDays(p.DailyItineraries)
	out.SelectedDestinations = CloneActivities(p.SelectedDestinations)
	out.OptimizedRoute = CloneActivities(p.OptimizedRoute)
	return &out
}

// Day returns a pointer to the itinerary of dayNumber, or nil.
func (p *TripPlan) Day(dayNumber int) *DayItinerary {
	if dayNumber < 1 || dayNumber > len(p.DailyItineraries) {
		return nil
	}
	d := &p.DailyItineraries[dayNumber-1]
	if d.DayNumber != dayNumber {
		return nil
	}
	return d
}

// HasDestination reports whether an activity with id is in the bucket list.
func (p *TripPlan) HasDestination(id string) bool {
	for _, d := range p.SelectedDestinations {
		if d.ID == id {
			return true
		}
	}
	return false
}

// ClampDays bounds a requested day count to the supported range.
func ClampDays(n int) int {
	if n < MinDays {
		return MinDays
	}
	if n > MaxDays {
		return MaxDays
	}
	return n
}

// NormalizeCurrency upper-cases a currency code, falling back to the default.
func NormalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return DefaultCurrency
	}
	return c
}

// DayLabel formats the display date of the day at offset from start.
func DayLabel(start time.Time, offset int) string {
	return start.AddDate(0, 0, offset).Format(DayLabelLayout)
}
