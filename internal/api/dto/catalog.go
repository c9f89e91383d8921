package dto

import "trip-planner-service/internal/domain"

type ListActivitiesResponse struct {
	RegionID   string            `json:"regionId"`
	Activities []domain.Activity `json:"activities"`
}
