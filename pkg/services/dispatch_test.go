package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/models"
)

// recordingAgentService counts agent invocations for dispatch tests.
type recordingAgentService struct {
	mu           sync.Mutex
	coldEmails   int
	followUps    int
	reactivation int
	done         chan struct{}
}

func newRecordingAgentService() *recordingAgentService {
	return &recordingAgentService{done: make(chan struct{}, 8)}
}

func (r *recordingAgentService) ColdEmail(ctx context.Context, contactID uuid.UUID) (*EmailDraft, error) {
	r.mu.Lock()
	r.coldEmails++
	r.mu.Unlock()
	r.done <- struct{}{}
	return &EmailDraft{Subject: "s", Body: "b"}, nil
}

func (r *recordingAgentService) FollowUp(ctx context.Context, contactID uuid.UUID, step int) (*EmailDraft, error) {
	r.mu.Lock()
	r.followUps++
	r.mu.Unlock()
	r.done <- struct{}{}
	return &EmailDraft{Subject: "s", Body: "b"}, nil
}

func (r *recordingAgentService) Reactivation(ctx context.Context, contactID uuid.UUID) (*EmailDraft, error) {
	r.mu.Lock()
	r.reactivation++
	r.mu.Unlock()
	r.done <- struct{}{}
	return &EmailDraft{Subject: "s", Body: "b"}, nil
}

func (r *recordingAgentService) NegotiationCoach(ctx context.Context, dealID uuid.UUID, situation string) (*NegotiationAdvice, error) {
	return nil, nil
}

func (r *recordingAgentService) VideoScript(ctx context.Context, contactID uuid.UUID, topic string) (*VideoScriptResult, error) {
	return nil, nil
}

func (r *recordingAgentService) SummarizeDocument(ctx context.Context, text string) (*DocumentSummary, error) {
	return nil, nil
}

func (r *recordingAgentService) History(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.AgentLog, error) {
	return nil, nil
}

var _ AgentService = (*recordingAgentService)(nil)

func waitForDispatch(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatched agent did not run")
	}
}

func TestDispatch_RoutesMailboxesToAgents(t *testing.T) {
	tests := []struct {
		to   string
		want models.AgentKind
	}{
		{"sdr@smartcrm.test", models.AgentColdEmail},
		{"outreach@smartcrm.test", models.AgentColdEmail},
		{"followup@smartcrm.test", models.AgentFollowUp},
		{"winback@smartcrm.test", models.AgentReactivation},
		{"SDR@SmartCRM.Test", models.AgentColdEmail}, // case-insensitive
	}

	for _, tt := range tests {
		t.Run(tt.to, func(t *testing.T) {
			agents := newRecordingAgentService()
			svc := NewDispatchService(agents, &mockContactRepo{contact: testContact()}, time.Second, zap.NewNop())

			result := svc.HandleInboundEmail(&InboundEmail{To: tt.to, From: "dana@acme.test"})

			assert.True(t, result.Received)
			assert.True(t, result.Matched)
			assert.Equal(t, tt.want, result.Agent)
			waitForDispatch(t, agents.done)
		})
	}
}

func TestDispatch_UnknownMailboxIsAcknowledged(t *testing.T) {
	agents := newRecordingAgentService()
	svc := NewDispatchService(agents, &mockContactRepo{}, time.Second, zap.NewNop())

	result := svc.HandleInboundEmail(&InboundEmail{To: "billing@smartcrm.test", From: "dana@acme.test"})

	assert.True(t, result.Received)
	assert.False(t, result.Matched)
	assert.Empty(t, result.Agent)
}

func TestDispatch_UnknownSenderStillSucceeds(t *testing.T) {
	agents := newRecordingAgentService()
	svc := NewDispatchService(agents, &mockContactRepo{getByEmailErr: assert.AnError}, time.Second, zap.NewNop())

	// The sender has no contact row; dispatch still reports a match because
	// the response never waits on the agent.
	result := svc.HandleInboundEmail(&InboundEmail{To: "sdr@smartcrm.test", From: "stranger@nowhere.test"})
	require.True(t, result.Matched)

	// Give the goroutine a beat, then confirm no agent ran.
	time.Sleep(50 * time.Millisecond)
	agents.mu.Lock()
	defer agents.mu.Unlock()
	assert.Zero(t, agents.coldEmails)
}

func TestLocalPart(t *testing.T) {
	assert.Equal(t, "sdr", localPart("sdr@smartcrm.test"))
	assert.Equal(t, "sdr", localPart("  SDR@SmartCRM.test "))
	assert.Equal(t, "noatsign", localPart("noatsign"))
}
