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

func newAutomationMux(svc *mockAutomationService) *http.ServeMux {
	mux := http.NewServeMux()
	NewAutomationHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestAutomationHandler_Run_Success(t *testing.T) {
	svc := &mockAutomationService{outcomes: []services.RuleOutcome{
		{Rule: "hot-lead-call", Matched: true, Applied: true},
		{Rule: "cold-nurture", Matched: false},
		{Rule: "broken-rule", Matched: true, Error: "insert failed"},
	}}
	mux := newAutomationMux(svc)

	body := fmt.Sprintf(`{"contact_id": %q}`, uuid.New())
	rec := postJSON(t, mux, "/api/automation/run", body)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, float64(1), data["applied"])
	assert.Len(t, data["outcomes"], 3)
}

func TestAutomationHandler_Run_MissingContactIs404(t *testing.T) {
	svc := &mockAutomationService{err: apperrors.ErrNotFound}
	mux := newAutomationMux(svc)

	body := fmt.Sprintf(`{"contact_id": %q}`, uuid.New())
	rec := postJSON(t, mux, "/api/automation/run", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAutomationHandler_Run_InvalidContactID(t *testing.T) {
	mux := newAutomationMux(&mockAutomationService{})

	rec := postJSON(t, mux, "/api/automation/run", `{"contact_id": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
