package dto

import "encoding/json"

// TripResponse carries the trip id and its plan in snapshot form.
type TripResponse struct {
	ID   string          `json:"id"`
	Plan json.RawMessage `json:"plan"`
}

type SelectCountryRequest struct {
	CountryID string `json:"countryId"`
}

type SelectRegionRequest struct {
	RegionID string `json:"regionId" validate:"required"`
}

// Out of range values are clamped, not rejected.
type SetDaysRequest struct {
	NumberOfDays int `json:"numberOfDays"`
}

// A null or missing startDate clears the date.
type SetStartDateRequest struct {
	StartDate *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
}

type SetCurrentDayRequest struct {
	CurrentDay int `json:"currentDay" validate:"gte=1"`
}

type SetBudgetRequest struct {
	TotalBudget *float64 `json:"totalBudget" validate:"required,gte=0"`
	Currency    string   `json:"currency" validate:"omitempty,len=3,alpha"`
}

type SetCurrencyRequest struct {
	Currency string `json:"currency" validate:"required,len=3,alpha"`
}

type PlaceActivityRequest struct {
	ActivityID string `json:"activityId" validate:"required"`
}

type UpdateCostRequest struct {
	Cost *float64 `json:"cost" validate:"required,gte=0"`
}

type AddDestinationRequest struct {
	ActivityID string `json:"activityId" validate:"required"`
}

type BudgetResponse struct {
	TotalSpent    float64 `json:"totalSpent"`
	TotalBudget   float64 `json:"totalBudget"`
	Currency      string  `json:"currency"`
	Percentage    float64 `json:"percentage"`
	Status        string  `json:"status"`
	ActivityCount int     `json:"activityCount"`
	AveragePerDay float64 `json:"averagePerDay"`
}

type CategoryShareResponse struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type TripStatsResponse struct {
	Budget     BudgetResponse          `json:"budget"`
	Categories []CategoryShareResponse `json:"categories"`
}
