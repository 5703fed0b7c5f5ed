package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/models"
	"github.com/smartcrm/engine/pkg/services"
)

func newWebhookMux(svc *mockDispatchService) *http.ServeMux {
	mux := http.NewServeMux()
	NewWebhookHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestWebhookHandler_InboundEmail_Matched(t *testing.T) {
	svc := &mockDispatchService{result: &services.DispatchResult{
		Received: true,
		Matched:  true,
		Agent:    models.AgentColdEmail,
	}}
	mux := newWebhookMux(svc)

	body := `{"to": "sdr@smartcrm.test", "from": "dana@acme.test", "subject": "hi", "body": "intro please"}`
	rec := postJSON(t, mux, "/api/webhooks/inbound-email", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.last)
	assert.Equal(t, "sdr@smartcrm.test", svc.last.To)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, true, data["matched"])
	assert.Equal(t, "cold_email", data["agent"])
}

func TestWebhookHandler_InboundEmail_UnmatchedStill200(t *testing.T) {
	svc := &mockDispatchService{result: &services.DispatchResult{Received: true}}
	mux := newWebhookMux(svc)

	body := `{"to": "billing@smartcrm.test", "from": "dana@acme.test"}`
	rec := postJSON(t, mux, "/api/webhooks/inbound-email", body)

	// Unmatched recipients are acknowledged, never rejected: the provider
	// must not retry.
	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, true, data["received"])
	assert.Equal(t, false, data["matched"])
}

func TestWebhookHandler_InboundEmail_InvalidBody(t *testing.T) {
	mux := newWebhookMux(&mockDispatchService{})

	rec := postJSON(t, mux, "/api/webhooks/inbound-email", `{{{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
