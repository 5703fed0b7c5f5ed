package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/apperrors"
	"github.com/smartcrm/engine/pkg/services"
)

// TriggersHandler serves the Zapier-style polling endpoints.
type TriggersHandler struct {
	triggerService services.TriggerService
	logger         *zap.Logger
}

// NewTriggersHandler creates a new triggers handler.
func NewTriggersHandler(triggerService services.TriggerService, logger *zap.Logger) *TriggersHandler {
	return &TriggersHandler{
		triggerService: triggerService,
		logger:         logger,
	}
}

// RegisterRoutes registers the trigger handler's routes on the given mux.
func (h *TriggersHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/triggers/{trigger}", h.Poll)
}

// Poll handles GET /api/triggers/{trigger}?cursor=&limit=
func (h *TriggersHandler) Poll(w http.ResponseWriter, r *http.Request) {
	trigger := r.PathValue("trigger")
	cursor := r.URL.Query().Get("cursor")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		limit = parsed
	}

	page, err := h.triggerService.Poll(r.Context(), trigger, cursor, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownTrigger) {
			msg := "Unknown trigger type; known triggers: " + strings.Join(services.KnownTriggers(), ", ")
			if err := ErrorResponse(w, http.StatusBadRequest, "unknown_trigger", msg); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Trigger poll failed",
			zap.String("trigger", trigger),
			zap.Error(err))
		writeServiceError(w, err, "trigger_poll_failed", h.logger)
		return
	}

	if err := WriteSuccess(w, page); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
