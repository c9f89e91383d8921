package dto

import "trip-planner-service/internal/domain"

// ActivityInput is an activity supplied by a client rather than the catalog.
type ActivityInput struct {
	ID            string        `json:"id" validate:"required"`
	Name          string        `json:"name"`
	Category      string        `json:"category" validate:"required,oneof=hotel breakfast lunch dinner cafe temple museum park shopping nightlife attraction culture"`
	Duration      int           `json:"duration" validate:"gt=0,lte=1440"` // minutes
	Rating        float64       `json:"rating" validate:"gte=0,lte=5"`
	PriceLevel    int           `json:"priceLevel" validate:"min=1,max=4"`
	EstimatedCost *float64      `json:"estimatedCost" validate:"omitempty,gte=0"`
	ImageURL      string        `json:"imageUrl"`
	ExternalURL   string        `json:"externalUrl"`
	Location      LocationInput `json:"location"`
	Description   string        `json:"description"`
	RegionID      string        `json:"regionId"`
	Tags          []string      `json:"tags"`
}

type LocationInput struct {
	Lat     float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng     float64 `json:"lng" validate:"gte=-180,lte=180"`
	Address string  `json:"address"`
}

func (a ActivityInput) ToDomain() domain.Activity {
	out := domain.Activity{
		ID:          a.ID,
		Name:        a.Name,
		Category:    domain.Category(a.Category),
		Duration:    a.Duration,
		Rating:      a.Rating,
		PriceLevel:  a.PriceLevel,
		ImageURL:    a.ImageURL,
		ExternalURL: a.ExternalURL,
		Location: domain.Location{
			Lat:     a.Location.Lat,
			Lng:     a.Location.Lng,
			Address: a.Location.Address,
		},
		Description: a.Description,
		RegionID:    a.RegionID,
		Tags:        a.Tags,
	}
	if a.EstimatedCost != nil {
		cost := *a.EstimatedCost
		out.EstimatedCost = &cost
	}
	return out
}

// ActivitiesToDomain converts a validated input list.
func ActivitiesToDomain(in []ActivityInput) []domain.Activity {
	out := make([]domain.Activity, len(in))
	for i, a := range in {
		out[i] = a.ToDomain()
	}
	return out
}

// TimeSlotInput is a slot to recalculate. Its time is ignored and derived.
type TimeSlotInput struct {
	ID       string         `json:"id" validate:"required"`
	Time     string         `json:"time"`
	Activity *ActivityInput `json:"activity"`
}

func SlotsToDomain(in []TimeSlotInput) []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(in))
	for i, s := range in {
		out[i] = domain.TimeSlot{ID: s.ID}
		if s.Activity != nil {
			a := s.Activity.ToDomain()
			out[i].Activity = &a
		}
	}
	return out
}
