// Package handlers contains the HTTP surface of smartcrm-engine. Handlers
// decode and validate requests, delegate to services, and map service
// errors to status codes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/apperrors"
)

// ApiResponse is the envelope for all JSON responses.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// parseUUIDField validates a UUID carried in a request body field.
// Returns the parsed UUID and true on success, or uuid.Nil and false after
// writing an error response.
func parseUUIDField(w http.ResponseWriter, value, field string, logger *zap.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil || id == uuid.Nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_"+field, "Invalid or missing "+field); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps a service error to a status code. Missing rows are
// 404, everything else is 500 with the error message passed through.
func writeServiceError(w http.ResponseWriter, err error, errorCode string, logger *zap.Logger) {
	status := http.StatusInternalServerError
	code := errorCode
	if errors.Is(err, apperrors.ErrNotFound) {
		status = http.StatusNotFound
		code = "not_found"
	}
	if werr := ErrorResponse(w, status, code, err.Error()); werr != nil {
		logger.Error("Failed to write error response", zap.Error(werr))
	}
}
