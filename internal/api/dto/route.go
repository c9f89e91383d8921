package dto

import "trip-planner-service/internal/domain"

type OptimizeRouteRequest struct {
	Destinations []ActivityInput `json:"destinations" validate:"required,min=1,dive"`
	Metric       string          `json:"metric" validate:"omitempty,oneof=planar haversine"`
}

type OptimizeRouteResponse struct {
	Route         []domain.Activity `json:"route"`
	TotalDistance float64           `json:"totalDistance"`
	Metric        string            `json:"metric"`
}

type RecalculateRequest struct {
	TimeSlots []TimeSlotInput `json:"timeSlots" validate:"required,max=64,dive"`
}

type RecalculateResponse struct {
	TimeSlots []domain.TimeSlot `json:"timeSlots"`
}

type SetRouteRequest struct {
	Route []ActivityInput `json:"route" validate:"required,dive"`
}
