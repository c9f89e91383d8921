package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"trip-planner-service/internal/platform/apperr"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Request bodies are capped at 1 MiB.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

type errorResponse struct {
	Error *apperr.AppError `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := toAppError(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, r, appErr.StatusCode, errorResponse{Error: appErr})
}

// toAppError maps service and port errors onto their API representation.
// Anything unrecognised is an internal error and its text is not exposed.
func toAppError(err error) *apperr.AppError {
	var appErr *apperr.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, services.ErrSlotNotFound):
		return apperr.ErrSlotNotFound.WithMessage(err.Error())
	case errors.Is(err, ports.ErrNotFound):
		return apperr.ErrNotFound.WithMessage(err.Error())
	case errors.Is(err, services.ErrInvalidBudget), errors.Is(err, services.ErrInvalidCost):
		return apperr.ErrInvalidAmount
	default:
		return apperr.ErrInternalServer
	}
}

// decodeJSON reads exactly one JSON object into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return apperr.ErrInvalidRequest.WithMessage("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return apperr.ErrInvalidRequest.WithMessage("body must contain only one JSON object")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]any, len(verrs))
			for _, fe := range verrs {
				details[fieldPath(fe)] = fe.Tag()
			}
			return apperr.ErrInvalidRequest.WithMessage("validation failed").WithDetails(details)
		}
		return apperr.ErrInvalidRequest.WithMessage(err.Error())
	}

	return nil
}

// fieldPath is the namespace of fe without the root struct name,
// e.g. "TimeSlots[1].Activity.Duration".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// pathInt parses a positive integer path value.
func pathInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil || n < 1 {
		return 0, apperr.ErrInvalidRequest.WithMessage(name + " must be a positive integer")
	}
	return n, nil
}
