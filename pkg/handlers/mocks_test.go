package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartcrm/engine/pkg/models"
	"github.com/smartcrm/engine/pkg/services"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockAgentService implements services.AgentService for handler tests.
type mockAgentService struct {
	draft     *services.EmailDraft
	advice    *services.NegotiationAdvice
	video     *services.VideoScriptResult
	summary   *services.DocumentSummary
	logs      []*models.AgentLog
	err       error
	lastStep  int
	lastLimit int
}

func (m *mockAgentService) ColdEmail(ctx context.Context, contactID uuid.UUID) (*services.EmailDraft, error) {
	return m.draft, m.err
}

func (m *mockAgentService) FollowUp(ctx context.Context, contactID uuid.UUID, step int) (*services.EmailDraft, error) {
	m.lastStep = step
	return m.draft, m.err
}

func (m *mockAgentService) Reactivation(ctx context.Context, contactID uuid.UUID) (*services.EmailDraft, error) {
	return m.draft, m.err
}

func (m *mockAgentService) NegotiationCoach(ctx context.Context, dealID uuid.UUID, situation string) (*services.NegotiationAdvice, error) {
	return m.advice, m.err
}

func (m *mockAgentService) VideoScript(ctx context.Context, contactID uuid.UUID, topic string) (*services.VideoScriptResult, error) {
	return m.video, m.err
}

func (m *mockAgentService) SummarizeDocument(ctx context.Context, text string) (*services.DocumentSummary, error) {
	return m.summary, m.err
}

func (m *mockAgentService) History(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.AgentLog, error) {
	m.lastLimit = limit
	return m.logs, m.err
}

var _ services.AgentService = (*mockAgentService)(nil)

// mockEnrichmentService implements services.EnrichmentService for handler tests.
type mockEnrichmentService struct {
	result *services.EnrichmentResult
}

func (m *mockEnrichmentService) Enrich(ctx context.Context, contactID uuid.UUID) *services.EnrichmentResult {
	return m.result
}

var _ services.EnrichmentService = (*mockEnrichmentService)(nil)

// mockEngagementService implements services.EngagementService for handler tests.
type mockEngagementService struct {
	result      *services.EngagementResult
	err         error
	lastMetrics *models.EmailMetrics
}

func (m *mockEngagementService) Apply(ctx context.Context, contactID uuid.UUID, metrics *models.EmailMetrics) (*services.EngagementResult, error) {
	m.lastMetrics = metrics
	return m.result, m.err
}

var _ services.EngagementService = (*mockEngagementService)(nil)

// mockDispatchService implements services.DispatchService for handler tests.
type mockDispatchService struct {
	result *services.DispatchResult
	last   *services.InboundEmail
}

func (m *mockDispatchService) HandleInboundEmail(email *services.InboundEmail) *services.DispatchResult {
	m.last = email
	return m.result
}

var _ services.DispatchService = (*mockDispatchService)(nil)

// mockTriggerService implements services.TriggerService for handler tests.
type mockTriggerService struct {
	page       *services.TriggerPage
	err        error
	lastName   string
	lastCursor string
	lastLimit  int
}

func (m *mockTriggerService) Poll(ctx context.Context, trigger, cursor string, limit int) (*services.TriggerPage, error) {
	m.lastName = trigger
	m.lastCursor = cursor
	m.lastLimit = limit
	return m.page, m.err
}

var _ services.TriggerService = (*mockTriggerService)(nil)

// mockAutomationService implements services.AutomationService for handler tests.
type mockAutomationService struct {
	outcomes []services.RuleOutcome
	err      error
}

func (m *mockAutomationService) Run(ctx context.Context, contactID uuid.UUID) ([]services.RuleOutcome, error) {
	return m.outcomes, m.err
}

var _ services.AutomationService = (*mockAutomationService)(nil)
