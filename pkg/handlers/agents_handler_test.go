package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/apperrors"
	"github.com/smartcrm/engine/pkg/models"
	"github.com/smartcrm/engine/pkg/services"
)

func newAgentsMux(agents *mockAgentService, enrichment *mockEnrichmentService) *http.ServeMux {
	mux := http.NewServeMux()
	NewAgentsHandler(agents, enrichment, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func postJSON(t *testing.T, mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestAgentsHandler_ColdEmail_Success(t *testing.T) {
	agents := &mockAgentService{draft: &services.EmailDraft{Subject: "Intro", Body: "Hi Dana"}}
	mux := newAgentsMux(agents, &mockEnrichmentService{})

	body := fmt.Sprintf(`{"contact_id": %q}`, uuid.New())
	rec := postJSON(t, mux, "/api/agents/cold-email", body)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]any)
	assert.Equal(t, "Intro", data["subject"])
}

func TestAgentsHandler_ColdEmail_InvalidBody(t *testing.T) {
	mux := newAgentsMux(&mockAgentService{}, &mockEnrichmentService{})

	rec := postJSON(t, mux, "/api/agents/cold-email", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentsHandler_ColdEmail_InvalidContactID(t *testing.T) {
	mux := newAgentsMux(&mockAgentService{}, &mockEnrichmentService{})

	rec := postJSON(t, mux, "/api/agents/cold-email", `{"contact_id": "not-a-uuid"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, mux, "/api/agents/cold-email", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentsHandler_ColdEmail_MissingContactIs404(t *testing.T) {
	agents := &mockAgentService{err: fmt.Errorf("contact: %w", apperrors.ErrNotFound)}
	mux := newAgentsMux(agents, &mockEnrichmentService{})

	body := fmt.Sprintf(`{"contact_id": %q}`, uuid.New())
	rec := postJSON(t, mux, "/api/agents/cold-email", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAgentsHandler_ColdEmail_ProviderFailureIs500(t *testing.T) {
	agents := &mockAgentService{err: fmt.Errorf("openai: %w", apperrors.ErrMissingAPIKey)}
	mux := newAgentsMux(agents, &mockEnrichmentService{})

	body := fmt.Sprintf(`{"contact_id": %q}`, uuid.New())
	rec := postJSON(t, mux, "/api/agents/cold-email", body)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Contains(t, envelope["message"], "API key")
}

func TestAgentsHandler_FollowUp_PassesStep(t *testing.T) {
	agents := &mockAgentService{draft: &services.EmailDraft{Subject: "s", Body: "b"}}
	mux := newAgentsMux(agents, &mockEnrichmentService{})

	body := fmt.Sprintf(`{"contact_id": %q, "step": 3}`, uuid.New())
	rec := postJSON(t, mux, "/api/agents/follow-up", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, agents.lastStep)
}

func TestAgentsHandler_NegotiationCoach_RequiresSituation(t *testing.T) {
	mux := newAgentsMux(&mockAgentService{}, &mockEnrichmentService{})

	body := fmt.Sprintf(`{"deal_id": %q}`, uuid.New())
	rec := postJSON(t, mux, "/api/agents/negotiation-coach", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentsHandler_NegotiationCoach_Success(t *testing.T) {
	agents := &mockAgentService{advice: &services.NegotiationAdvice{Assessment: "Anchoring low"}}
	mux := newAgentsMux(agents, &mockEnrichmentService{})

	body := fmt.Sprintf(`{"deal_id": %q, "situation": "asked for 30%% off"}`, uuid.New())
	rec := postJSON(t, mux, "/api/agents/negotiation-coach", body)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "Anchoring low", data["assessment"])
}

func TestAgentsHandler_Summarize_RequiresText(t *testing.T) {
	mux := newAgentsMux(&mockAgentService{}, &mockEnrichmentService{})

	rec := postJSON(t, mux, "/api/agents/document-summarizer", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentsHandler_Enrich_FallbackStillReturns200(t *testing.T) {
	enrichment := &mockEnrichmentService{result: &services.EnrichmentResult{
		Industry: "unknown",
		Fallback: true,
	}}
	mux := newAgentsMux(&mockAgentService{}, enrichment)

	body := fmt.Sprintf(`{"contact_id": %q}`, uuid.New())
	rec := postJSON(t, mux, "/api/agents/enrich", body)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, true, data["fallback"])
}

func TestAgentsHandler_History_Success(t *testing.T) {
	agents := &mockAgentService{logs: []*models.AgentLog{
		{ID: uuid.New(), Agent: models.AgentColdEmail, Status: models.AgentRunCompleted},
		{ID: uuid.New(), Agent: models.AgentFollowUp, Status: models.AgentRunFailed},
	}}
	mux := newAgentsMux(agents, &mockEnrichmentService{})

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/agents/history/%s?limit=5", uuid.New()), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, agents.lastLimit)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].([]any)
	assert.Len(t, data, 2)
}

func TestAgentsHandler_History_InvalidLimit(t *testing.T) {
	mux := newAgentsMux(&mockAgentService{}, &mockEnrichmentService{})

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/agents/history/%s?limit=abc", uuid.New()), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentsHandler_History_InvalidContactID(t *testing.T) {
	mux := newAgentsMux(&mockAgentService{}, &mockEnrichmentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/agents/history/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentsHandler_MethodNotAllowed(t *testing.T) {
	mux := newAgentsMux(&mockAgentService{}, &mockEnrichmentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/agents/cold-email", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
