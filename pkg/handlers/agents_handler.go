package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/services"
)

// ColdEmailRequest for POST /api/agents/cold-email
type ColdEmailRequest struct {
	ContactID string `json:"contact_id"`
}

// FollowUpRequest for POST /api/agents/follow-up
type FollowUpRequest struct {
	ContactID string `json:"contact_id"`
	Step      int    `json:"step"`
}

// ReactivationRequest for POST /api/agents/reactivation
type ReactivationRequest struct {
	ContactID string `json:"contact_id"`
}

// NegotiationCoachRequest for POST /api/agents/negotiation-coach
type NegotiationCoachRequest struct {
	DealID    string `json:"deal_id"`
	Situation string `json:"situation"`
}

// VideoScriptRequest for POST /api/agents/video-script
type VideoScriptRequest struct {
	ContactID string `json:"contact_id"`
	Topic     string `json:"topic"`
}

// SummarizeRequest for POST /api/agents/document-summarizer
type SummarizeRequest struct {
	Text string `json:"text"`
}

// EnrichRequest for POST /api/agents/enrich
type EnrichRequest struct {
	ContactID string `json:"contact_id"`
}

// AgentsHandler handles the AI agent HTTP requests.
type AgentsHandler struct {
	agentService      services.AgentService
	enrichmentService services.EnrichmentService
	logger            *zap.Logger
}

// NewAgentsHandler creates a new agents handler.
func NewAgentsHandler(
	agentService services.AgentService,
	enrichmentService services.EnrichmentService,
	logger *zap.Logger,
) *AgentsHandler {
	return &AgentsHandler{
		agentService:      agentService,
		enrichmentService: enrichmentService,
		logger:            logger,
	}
}

// RegisterRoutes registers the agent handler's routes on the given mux.
func (h *AgentsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/agents/cold-email", h.ColdEmail)
	mux.HandleFunc("POST /api/agents/follow-up", h.FollowUp)
	mux.HandleFunc("POST /api/agents/reactivation", h.Reactivation)
	mux.HandleFunc("POST /api/agents/negotiation-coach", h.NegotiationCoach)
	mux.HandleFunc("POST /api/agents/video-script", h.VideoScript)
	mux.HandleFunc("POST /api/agents/document-summarizer", h.Summarize)
	mux.HandleFunc("POST /api/agents/enrich", h.Enrich)
	mux.HandleFunc("GET /api/agents/history/{contactId}", h.History)
}

// ColdEmail handles POST /api/agents/cold-email
func (h *AgentsHandler) ColdEmail(w http.ResponseWriter, r *http.Request) {
	var req ColdEmailRequest
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

	draft, err := h.agentService.ColdEmail(r.Context(), contactID)
	if err != nil {
		h.logger.Error("Cold email agent failed",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, err, "cold_email_failed", h.logger)
		return
	}

	if err := WriteSuccess(w, draft); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// FollowUp handles POST /api/agents/follow-up
func (h *AgentsHandler) FollowUp(w http.ResponseWriter, r *http.Request) {
	var req FollowUpRequest
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

	draft, err := h.agentService.FollowUp(r.Context(), contactID, req.Step)
	if err != nil {
		h.logger.Error("Follow-up agent failed",
			zap.String("contact_id", contactID.String()),
			zap.Int("step", req.Step),
			zap.Error(err))
		writeServiceError(w, err, "follow_up_failed", h.logger)
		return
	}

	if err := WriteSuccess(w, draft); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Reactivation handles POST /api/agents/reactivation
func (h *AgentsHandler) Reactivation(w http.ResponseWriter, r *http.Request) {
	var req ReactivationRequest
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

	draft, err := h.agentService.Reactivation(r.Context(), contactID)
	if err != nil {
		h.logger.Error("Reactivation agent failed",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, err, "reactivation_failed", h.logger)
		return
	}

	if err := WriteSuccess(w, draft); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// NegotiationCoach handles POST /api/agents/negotiation-coach
func (h *AgentsHandler) NegotiationCoach(w http.ResponseWriter, r *http.Request) {
	var req NegotiationCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dealID, ok := parseUUIDField(w, req.DealID, "deal_id", h.logger)
	if !ok {
		return
	}
	if req.Situation == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "situation is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	advice, err := h.agentService.NegotiationCoach(r.Context(), dealID, req.Situation)
	if err != nil {
		h.logger.Error("Negotiation coach failed",
			zap.String("deal_id", dealID.String()),
			zap.Error(err))
		writeServiceError(w, err, "negotiation_coach_failed", h.logger)
		return
	}

	if err := WriteSuccess(w, advice); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// VideoScript handles POST /api/agents/video-script
func (h *AgentsHandler) VideoScript(w http.ResponseWriter, r *http.Request) {
	var req VideoScriptRequest
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

	result, err := h.agentService.VideoScript(r.Context(), contactID, req.Topic)
	if err != nil {
		h.logger.Error("Video script agent failed",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, err, "video_script_failed", h.logger)
		return
	}

	if err := WriteSuccess(w, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Summarize handles POST /api/agents/document-summarizer
func (h *AgentsHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.Text == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "text is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	summary, err := h.agentService.SummarizeDocument(r.Context(), req.Text)
	if err != nil {
		h.logger.Error("Document summarizer failed", zap.Error(err))
		writeServiceError(w, err, "summarize_failed", h.logger)
		return
	}

	if err := WriteSuccess(w, summary); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Enrich handles POST /api/agents/enrich. Enrichment never fails: internal
// errors degrade to a fallback payload behind a 200.
func (h *AgentsHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	var req EnrichRequest
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

	result := h.enrichmentService.Enrich(r.Context(), contactID)

	if err := WriteSuccess(w, result); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// History handles GET /api/agents/history/{contactId}?limit=
func (h *AgentsHandler) History(w http.ResponseWriter, r *http.Request) {
	contactID, ok := parseUUIDField(w, r.PathValue("contactId"), "contact_id", h.logger)
	if !ok {
		return
	}

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

	logs, err := h.agentService.History(r.Context(), contactID, limit)
	if err != nil {
		h.logger.Error("Agent history lookup failed",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, err, "history_failed", h.logger)
		return
	}

	if err := WriteSuccess(w, logs); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
