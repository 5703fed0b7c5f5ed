package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/services"
)

// RunAutomationRequest for POST /api/automation/run
type RunAutomationRequest struct {
	ContactID string `json:"contact_id"`
}

// RunAutomationResponse summarizes the rule evaluation.
type RunAutomationResponse struct {
	Outcomes []services.RuleOutcome `json:"outcomes"`
	Applied  int                    `json:"applied"`
}

// AutomationHandler handles automation rule HTTP requests.
type AutomationHandler struct {
	automationService services.AutomationService
	logger            *zap.Logger
}

// NewAutomationHandler creates a new automation handler.
func NewAutomationHandler(automationService services.AutomationService, logger *zap.Logger) *AutomationHandler {
	return &AutomationHandler{
		automationService: automationService,
		logger:            logger,
	}
}

// RegisterRoutes registers the automation handler's routes on the given mux.
func (h *AutomationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/automation/run", h.Run)
}

// Run handles POST /api/automation/run
func (h *AutomationHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunAutomationRequest
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

	outcomes, err := h.automationService.Run(r.Context(), contactID)
	if err != nil {
		h.logger.Error("Automation run failed",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, err, "automation_run_failed", h.logger)
		return
	}

	applied := 0
	for _, o := range outcomes {
		if o.Applied {
			applied++
		}
	}

	response := RunAutomationResponse{Outcomes: outcomes, Applied: applied}
	if err := WriteSuccess(w, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
