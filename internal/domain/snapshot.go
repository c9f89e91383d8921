package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrSnapshotMalformed reports a persisted snapshot that could not be parsed
// as a whole. The plan returned alongside it holds defaults.
var ErrSnapshotMalformed = errors.New("snapshot malformed")

// snapshot is the persisted layout of a TripPlan.
type snapshot struct {
	SelectedCountry      *Country       `json:"selectedCountry"`
	SelectedRegion       *Region        `json:"selectedRegion"`
	NumberOfDays         int            `json:"numberOfDays"`
	DailyItineraries     []DayItinerary `json:"dailyItineraries"`
	CurrentDay           int            `json:"currentDay"`
	StartDate            *string        `json:"startDate"`
	TotalBudget          float64        `json:"totalBudget"`
	Currency             string         `json:"currency"`
	SelectedDestinations []Activity     `json:"selectedDestinations"`
	OptimizedRoute       []Activity     `json:"optimizedRoute"`
}

// rawSnapshot defers decoding of each field so one bad field cannot discard
// the rest of the snapshot.
type rawSnapshot struct {
	SelectedCountry      json.RawMessage `json:"selectedCountry"`
	SelectedRegion       json.RawMessage `json:"selectedRegion"`
	NumberOfDays         json.RawMessage `json:"numberOfDays"`
	DailyItineraries     json.RawMessage `json:"dailyItineraries"`
	CurrentDay           json.RawMessage `json:"currentDay"`
	StartDate            json.RawMessage `json:"startDate"`
	TotalBudget          json.RawMessage `json:"totalBudget"`
	Currency             json.RawMessage `json:"currency"`
	SelectedDestinations json.RawMessage `json:"selectedDestinations"`
	OptimizedRoute       json.RawMessage `json:"optimizedRoute"`
}

// EncodeSnapshot serializes p into its persisted JSON form.
func EncodeSnapshot(p *TripPlan) ([]byte, error) {
	if p == nil {
		return nil, errors.New("encode snapshot: plan is nil")
	}

	s := snapshot{
		SelectedCountry:      p.SelectedCountry,
		SelectedRegion:       p.SelectedRegion,
		NumberOfDays:         p.NumberOfDays,
		DailyItineraries:     p.DailyItineraries,
		CurrentDay:           p.CurrentDay,
		TotalBudget:          p.TotalBudget,
		Currency:             p.Currency,
		SelectedDestinations: p.SelectedDestinations,
		OptimizedRoute:       p.OptimizedRoute,
	}
	if p.StartDate != nil {
		d := p.StartDate.Format(DateLayout)
		s.StartDate = &d
	}

	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot rebuilds a TripPlan from persisted JSON.
//
// Decoding never fails hard: every field that is missing or invalid falls
// back to its default. Unparseable input yields a default plan together with
// ErrSnapshotMalformed. Slot times are not trusted here; callers recalculate
// them after loading.
func DecodeSnapshot(data []byte) (*TripPlan, error) {
	p := NewTripPlan()

	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return p, fmt.Errorf("decode snapshot: %w: %v", ErrSnapshotMalformed, err)
	}

	var country Country
	if decodeField(raw.SelectedCountry, &country) && country.ID != "" {
		p.SelectedCountry = &country
	}

	var region Region
	if decodeField(raw.SelectedRegion, &region) && region.ID != "" {
		p.SelectedRegion = &region
	}

	var days int
	if decodeField(raw.NumberOfDays, &days) && days >= MinDays && days <= MaxDays {
		p.NumberOfDays = days
	}

	var itineraries []DayItinerary
	if decodeField(raw.DailyItineraries, &itineraries) && validDays(itineraries) {
		p.DailyItineraries = itineraries
	}

	var current int
	if decodeField(raw.CurrentDay, &current) && current >= 1 && current <= p.NumberOfDays {
		p.CurrentDay = current
	}

	var start string
	if decodeField(raw.StartDate, &start) {
		if t, err := time.Parse(DateLayout, start); err == nil {
			p.StartDate = &t
		}
	}

	var budget float64
	if decodeField(raw.TotalBudget, &budget) && budget >= 0 {
		p.TotalBudget = budget
	}

	var currency string
	if decodeField(raw.Currency, &currency) {
		p.Currency = NormalizeCurrency(currency)
	}

	var selected []Activity
	if decodeField(raw.SelectedDestinations, &selected) && selected != nil {
		p.SelectedDestinations = selected
	}

	var route []Activity
	if decodeField(raw.OptimizedRoute, &route) && route != nil {
		p.OptimizedRoute = route
	}

	return p, nil
}

func decodeField(raw json.RawMessage, dst any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// validDays checks that day numbers are contiguous from 1 and that slot ids
// are unique within each day.
func validDays(days []DayItinerary) bool {
	for i, d := range days {
		if d.DayNumber != i+1 {
			return false
		}
		seen := make(map[string]struct{}, len(d.TimeSlots))
		for _, s := range d.TimeSlots {
			if s.ID == "" {
				return false
			}
			if _, dup := seen[s.ID]; dup {
				return false
			}
			seen[s.ID] = struct{}{}
		}
	}
	return true
}
