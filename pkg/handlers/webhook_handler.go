package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/services"
)

// WebhookHandler handles inbound webhook HTTP requests.
type WebhookHandler struct {
	dispatchService services.DispatchService
	logger          *zap.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(dispatchService services.DispatchService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatchService: dispatchService,
		logger:          logger,
	}
}

// RegisterRoutes registers the webhook handler's routes on the given mux.
func (h *WebhookHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/webhooks/inbound-email", h.InboundEmail)
}

// InboundEmail handles POST /api/webhooks/inbound-email.
// Always answers 200 once the payload decodes: email providers retry
// aggressively on non-2xx, and a failed agent run is not their problem.
func (h *WebhookHandler) InboundEmail(w http.ResponseWriter, r *http.Request) {
	var email services.InboundEmail
	if err := json.NewDecoder(r.Body).Decode(&email); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result := h.dispatchService.HandleInboundEmail(&email)

	if err := WriteSuccess(w, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
