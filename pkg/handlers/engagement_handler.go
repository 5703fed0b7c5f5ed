package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/models"
	"github.com/smartcrm/engine/pkg/services"
)

// ScoreEngagementRequest for POST /api/engagement/score
type ScoreEngagementRequest struct {
	ContactID string              `json:"contact_id"`
	Metrics   models.EmailMetrics `json:"metrics"`
}

// EngagementHandler handles engagement scoring HTTP requests.
type EngagementHandler struct {
	engagementService services.EngagementService
	logger            *zap.Logger
}

// NewEngagementHandler creates a new engagement handler.
func NewEngagementHandler(engagementService services.EngagementService, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
		logger:            logger,
	}
}

// RegisterRoutes registers the engagement handler's routes on the given mux.
func (h *EngagementHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/engagement/score", h.Score)
}

// Score handles POST /api/engagement/score
func (h *EngagementHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreEngagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	contactID, ok := parseUUIDField(w, req.ContactID, "contact_id", h.logger)
	if !ok {
		return
	}

	result, err := h.engagementService.Apply(r.Context(), contactID, &req.Metrics)
	if err != nil {
		h.logger.Error("Engagement scoring failed",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, err, "engagement_score_failed", h.logger)
		return
	}

	if err := WriteSuccess(w, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
