package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"hrerp/internal/domain/org"
	"hrerp/internal/domain/payroll"
	"hrerp/internal/domain/stats"
	"hrerp/internal/platform/datastore"
)

// FailError maps domain and data store errors onto the response envelope.
// Anything unrecognised is logged and reported as a 500.
func FailError(w http.ResponseWriter, err error, requestID string) {
	var validation *datastore.ValidationError
	var cycle *org.CycleError
	switch {
	case errors.As(err, &validation):
		FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed", map[string]any{"fields": validation.Fields}, requestID)
	case errors.As(err, &cycle):
		FailWithDetails(w, http.StatusUnprocessableEntity, "cycle_detected", "manager references form a cycle", cycle, requestID)
	case errors.Is(err, org.ErrCycleDetected):
		Fail(w, http.StatusConflict, "cycle_detected", "manager assignment would create a cycle", requestID)
	case errors.Is(err, datastore.ErrNotFound), errors.Is(err, org.ErrEmployeeNotFound):
		Fail(w, http.StatusNotFound, "not_found", "resource not found", requestID)
	case errors.Is(err, datastore.ErrConflict):
		Fail(w, http.StatusConflict, "conflict", "resource already exists", requestID)
	case errors.Is(err, datastore.ErrMissingReference):
		Fail(w, http.StatusUnprocessableEntity, "missing_reference", "referenced resource does not exist", requestID)
	case errors.Is(err, stats.ErrInvalidRange):
		Fail(w, http.StatusBadRequest, "invalid_range", err.Error(), requestID)
	case errors.Is(err, stats.ErrInvalidPeriod), errors.Is(err, payroll.ErrInvalidPeriod):
		Fail(w, http.StatusBadRequest, "invalid_period", err.Error(), requestID)
	case errors.Is(err, datastore.ErrUnknownColumn), errors.Is(err, datastore.ErrEmptyPatch), errors.Is(err, datastore.ErrInvalidValue):
		Fail(w, http.StatusBadRequest, "invalid_request", err.Error(), requestID)
	case errors.Is(err, context.DeadlineExceeded):
		Fail(w, http.StatusGatewayTimeout, "timeout", "data store did not answer in time", requestID)
	default:
		slog.Error("request failed", "err", err, "requestId", requestID)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal error", requestID)
	}
}
