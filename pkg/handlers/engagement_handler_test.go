package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/apperrors"
	"github.com/smartcrm/engine/pkg/services"
)

func newEngagementMux(svc *mockEngagementService) *http.ServeMux {
	mux := http.NewServeMux()
	NewEngagementHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestEngagementHandler_Score_Success(t *testing.T) {
	contactID := uuid.New()
	svc := &mockEngagementService{result: &services.EngagementResult{
		ContactID:       contactID,
		Score:           100,
		Status:          "hot_prospect",
		Recommendations: []string{"high_engagement_followup", "upgrade_sequence"},
		ActionsCreated:  2,
	}}
	mux := newEngagementMux(svc)

	body := fmt.Sprintf(`{
		"contact_id": %q,
		"metrics": {
			"openRate": 0.6,
			"clickRate": 0.2,
			"responseRate": 0.15,
			"lastActivity": "2026-08-21T10:00:00Z"
		}
	}`, contactID)

	rec := postJSON(t, mux, "/api/engagement/score", body)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.lastMetrics)
	assert.InDelta(t, 0.6, svc.lastMetrics.OpenRate, 1e-9)
	assert.NotNil(t, svc.lastMetrics.LastActivity)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, float64(100), data["score"])
	assert.Len(t, data["recommendations"], 2)
}

func TestEngagementHandler_Score_InvalidBody(t *testing.T) {
	mux := newEngagementMux(&mockEngagementService{})

	rec := postJSON(t, mux, "/api/engagement/score", `not json at all`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEngagementHandler_Score_MissingContactID(t *testing.T) {
	mux := newEngagementMux(&mockEngagementService{})

	rec := postJSON(t, mux, "/api/engagement/score", `{"metrics": {"openRate": 0.5}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEngagementHandler_Score_UnknownContactIs404(t *testing.T) {
	svc := &mockEngagementService{err: apperrors.ErrNotFound}
	mux := newEngagementMux(svc)

	body := fmt.Sprintf(`{"contact_id": %q, "metrics": {}}`, uuid.New())
	rec := postJSON(t, mux, "/api/engagement/score", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
