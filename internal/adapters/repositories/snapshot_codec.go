package repositories

import (
	"errors"
	"trip-planner-service/internal/domain"

	"go.uber.org/zap"
)

// decodeStored turns a stored payload into a plan. A malformed payload is not
// an error for callers: it loads as a default plan and is logged.
func decodeStored(id string, payload []byte) (*domain.TripPlan, error) {
	plan, err := domain.DecodeSnapshot(payload)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotMalformed) {
			zap.L().Warn("snapshot malformed, using defaults", zap.String("trip_id", id), zap.Error(err))
			return plan, nil
		}
		return nil, err
	}
	return plan, nil
}
