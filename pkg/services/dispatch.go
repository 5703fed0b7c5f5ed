package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/models"
	"github.com/smartcrm/engine/pkg/repositories"
)

// InboundEmail is the normalized shape of an inbound email webhook event.
type InboundEmail struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// emailToAgentMap routes a recipient mailbox (local part) to an agent.
// Static by design; unknown recipients are acknowledged and dropped.
var emailToAgentMap = map[string]models.AgentKind{
	"sdr":      models.AgentColdEmail,
	"outreach": models.AgentColdEmail,
	"followup": models.AgentFollowUp,
	"winback":  models.AgentReactivation,
}

// DispatchResult reports what the router decided. The downstream agent's
// outcome is never part of it: the webhook response must not wait on the
// agent, so success or failure lands only in agent_logs.
type DispatchResult struct {
	Received bool             `json:"received"`
	Matched  bool             `json:"matched"`
	Agent    models.AgentKind `json:"agent,omitempty"`
}

// DispatchService routes inbound email webhooks to agents.
type DispatchService interface {
	// HandleInboundEmail matches the recipient against the agent map and,
	// on a match, runs the agent in a detached goroutine. It never returns
	// an error: webhook sources must always see success.
	HandleInboundEmail(email *InboundEmail) *DispatchResult
}

type dispatchService struct {
	agents      AgentService
	contactRepo repositories.ContactRepository
	timeout     time.Duration
	logger      *zap.Logger
}

// NewDispatchService creates a new DispatchService. timeout bounds each
// detached agent run.
func NewDispatchService(
	agents AgentService,
	contactRepo repositories.ContactRepository,
	timeout time.Duration,
	logger *zap.Logger,
) DispatchService {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &dispatchService{
		agents:      agents,
		contactRepo: contactRepo,
		timeout:     timeout,
		logger:      logger.Named("dispatch"),
	}
}

var _ DispatchService = (*dispatchService)(nil)

// localPart extracts the mailbox name before the @.
func localPart(address string) string {
	addr := strings.TrimSpace(strings.ToLower(address))
	if i := strings.IndexByte(addr, '@'); i >= 0 {
		return addr[:i]
	}
	return addr
}

func (s *dispatchService) HandleInboundEmail(email *InboundEmail) *DispatchResult {
	agent, ok := emailToAgentMap[localPart(email.To)]
	if !ok {
		s.logger.Info("inbound email did not match an agent mailbox",
			zap.String("to", email.To))
		return &DispatchResult{Received: true}
	}

	// Fire-and-forget: the HTTP response never reflects the agent outcome.
	// The context is detached from the request so an abandoned webhook
	// connection cannot cancel the run.
	sender := email.From
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.runAgentForSender(ctx, agent, sender)
	}()

	return &DispatchResult{Received: true, Matched: true, Agent: agent}
}

func (s *dispatchService) runAgentForSender(ctx context.Context, agent models.AgentKind, sender string) {
	contact, err := s.contactRepo.GetByEmail(ctx, sender)
	if err != nil {
		s.logger.Warn("dispatched agent: no contact for sender",
			zap.String("agent", string(agent)),
			zap.String("from", sender),
			zap.Error(err))
		return
	}

	switch agent {
	case models.AgentColdEmail:
		_, err = s.agents.ColdEmail(ctx, contact.ID)
	case models.AgentFollowUp:
		_, err = s.agents.FollowUp(ctx, contact.ID, 1)
	case models.AgentReactivation:
		_, err = s.agents.Reactivation(ctx, contact.ID)
	default:
		return
	}

	if err != nil {
		s.logger.Error("dispatched agent run failed",
			zap.String("agent", string(agent)),
			zap.String("contact_id", contact.ID.String()),
			zap.Error(err))
	}
}
