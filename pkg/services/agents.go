// Package services implements the CRM agent behaviors: prompt construction,
// the LLM round trip, best-effort parsing, and persistence of results.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/jsonutil"
	"github.com/smartcrm/engine/pkg/llm"
	"github.com/smartcrm/engine/pkg/logging"
	"github.com/smartcrm/engine/pkg/models"
	"github.com/smartcrm/engine/pkg/prompts"
	"github.com/smartcrm/engine/pkg/repositories"
)

// EmailDraft is the result of the email-writing agents. Degraded marks a
// draft salvaged from a reply the model did not format as JSON; it is a
// deliberate fallback, not an error.
type EmailDraft struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Degraded bool   `json:"degraded,omitempty"`
}

// NegotiationAdvice is the negotiation-coach result.
type NegotiationAdvice struct {
	Assessment        string   `json:"assessment"`
	Tactics           []string `json:"tactics"`
	Risks             []string `json:"risks"`
	SuggestedResponse string   `json:"suggested_response"`
	Degraded          bool     `json:"degraded,omitempty"`
}

// VideoScriptResult is the video-script agent result. JobID references the
// pending video job handed to the external generation service.
type VideoScriptResult struct {
	Hook         string    `json:"hook"`
	Script       string    `json:"script"`
	CallToAction string    `json:"call_to_action"`
	JobID        uuid.UUID `json:"job_id"`
	Degraded     bool      `json:"degraded,omitempty"`
}

// DocumentSummary is the document-summarizer result.
type DocumentSummary struct {
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	Degraded    bool     `json:"degraded,omitempty"`
}

// AgentService runs the prompt-building agents.
type AgentService interface {
	ColdEmail(ctx context.Context, contactID uuid.UUID) (*EmailDraft, error)
	FollowUp(ctx context.Context, contactID uuid.UUID, step int) (*EmailDraft, error)
	Reactivation(ctx context.Context, contactID uuid.UUID) (*EmailDraft, error)
	NegotiationCoach(ctx context.Context, dealID uuid.UUID, situation string) (*NegotiationAdvice, error)
	VideoScript(ctx context.Context, contactID uuid.UUID, topic string) (*VideoScriptResult, error)
	SummarizeDocument(ctx context.Context, text string) (*DocumentSummary, error)
	History(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.AgentLog, error)
}

type agentService struct {
	contactRepo  repositories.ContactRepository
	dealRepo     repositories.DealRepository
	activityRepo repositories.ActivityRepository
	agentLogRepo repositories.AgentLogRepository
	videoJobRepo repositories.VideoJobRepository
	llmFactory   llm.ClientFactory
	logger       *zap.Logger
	now          func() time.Time
}

// NewAgentService creates a new AgentService.
func NewAgentService(
	contactRepo repositories.ContactRepository,
	dealRepo repositories.DealRepository,
	activityRepo repositories.ActivityRepository,
	agentLogRepo repositories.AgentLogRepository,
	videoJobRepo repositories.VideoJobRepository,
	llmFactory llm.ClientFactory,
	logger *zap.Logger,
) AgentService {
	return &agentService{
		contactRepo:  contactRepo,
		dealRepo:     dealRepo,
		activityRepo: activityRepo,
		agentLogRepo: agentLogRepo,
		videoJobRepo: videoJobRepo,
		llmFactory:   llmFactory,
		logger:       logger.Named("agents"),
		now:          time.Now,
	}
}

var _ AgentService = (*agentService)(nil)

// complete runs one single-shot completion against the given provider.
// There is no retry; upstream failures surface to the handler.
func (s *agentService) complete(ctx context.Context, provider llm.Provider, prompt, system string, temperature float64, maxTokens int) (string, error) {
	client, err := s.llmFactory.ForProvider(provider)
	if err != nil {
		return "", err
	}

	result, err := client.Complete(ctx, prompt, system, temperature, maxTokens)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// recordRun appends the agent log. Log failures never fail the agent run.
func (s *agentService) recordRun(ctx context.Context, agent models.AgentKind, contactID *uuid.UUID, input, output string, degraded bool, runErr error) {
	entry := &models.AgentLog{
		ContactID: contactID,
		Agent:     agent,
		Status:    models.AgentRunCompleted,
		Degraded:  degraded,
		Input:     logging.TruncateString(input, 2000),
		Output:    logging.TruncateString(output, 4000),
	}
	if runErr != nil {
		entry.Status = models.AgentRunFailed
		entry.Error = logging.SanitizeError(runErr)
	}

	if err := s.agentLogRepo.Insert(ctx, entry); err != nil {
		s.logger.Error("failed to insert agent log",
			zap.String("agent", string(agent)),
			zap.Error(err))
	}
}

// rawEmailDraft defers field decoding: models occasionally type-flip the
// subject or body (numbers, booleans), and a type mismatch must not discard
// an otherwise usable draft.
type rawEmailDraft struct {
	Subject json.RawMessage `json:"subject"`
	Body    json.RawMessage `json:"body"`
}

// parseEmailDraft parses a reply the model should have formatted as JSON.
// When it didn't, the raw text becomes the body and the subject is
// synthesized from the contact - degraded, never an error.
func parseEmailDraft(content string, contact *models.Contact) *EmailDraft {
	raw, err := llm.ParseJSONResponse[rawEmailDraft](content)
	if err != nil {
		return &EmailDraft{
			Subject:  synthesizeSubject(contact),
			Body:     content,
			Degraded: true,
		}
	}

	draft := EmailDraft{
		Subject: jsonutil.FlexibleStringValue(raw.Subject),
		Body:    jsonutil.FlexibleStringValue(raw.Body),
	}
	if draft.Body == "" {
		return &EmailDraft{
			Subject:  synthesizeSubject(contact),
			Body:     content,
			Degraded: true,
		}
	}
	if draft.Subject == "" {
		draft.Subject = synthesizeSubject(contact)
		draft.Degraded = true
	}
	return &draft
}

func synthesizeSubject(contact *models.Contact) string {
	if contact != nil && contact.Company != "" {
		return fmt.Sprintf("Quick question for %s", contact.Company)
	}
	if contact != nil && contact.FirstName != "" {
		return fmt.Sprintf("Quick question, %s", contact.FirstName)
	}
	return "Quick question"
}

func (s *agentService) emailAgent(ctx context.Context, agent models.AgentKind, contactID uuid.UUID, buildPrompt func(*models.Contact, []*models.Activity) string, system string) (*EmailDraft, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListRecent(ctx, contactID, 5)
	if err != nil {
		// Activity context is optional; the prompt still works without it.
		s.logger.Warn("failed to load activities for prompt",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
	}

	prompt := buildPrompt(contact, activities)

	content, err := s.complete(ctx, llm.ProviderOpenAI, prompt, system, 0.7, 600)
	if err != nil {
		s.recordRun(ctx, agent, &contactID, prompt, "", false, err)
		return nil, err
	}

	draft := parseEmailDraft(content, contact)
	s.recordRun(ctx, agent, &contactID, prompt, content, draft.Degraded, nil)
	return draft, nil
}

// ColdEmail drafts a first-touch outreach email.
func (s *agentService) ColdEmail(ctx context.Context, contactID uuid.UUID) (*EmailDraft, error) {
	return s.emailAgent(ctx, models.AgentColdEmail, contactID, prompts.BuildColdEmail, prompts.ColdEmailSystem)
}

// FollowUp drafts the email for one step of a follow-up sequence. The
// template directive is selected by the step number.
func (s *agentService) FollowUp(ctx context.Context, contactID uuid.UUID, step int) (*EmailDraft, error) {
	if step < 1 {
		step = 1
	}
	return s.emailAgent(ctx, models.AgentFollowUp, contactID,
		func(c *models.Contact, acts []*models.Activity) string {
			return prompts.BuildFollowUp(c, acts, step)
		},
		prompts.FollowUpSystem)
}

// Reactivation drafts a win-back email whose tone depends on how long the
// contact has been inactive.
func (s *agentService) Reactivation(ctx context.Context, contactID uuid.UUID) (*EmailDraft, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildReactivation(contact, contact.DaysInactive(s.now()))

	content, err := s.complete(ctx, llm.ProviderOpenAI, prompt, prompts.ReactivationSystem, 0.7, 600)
	if err != nil {
		s.recordRun(ctx, models.AgentReactivation, &contactID, prompt, "", false, err)
		return nil, err
	}

	draft := parseEmailDraft(content, contact)
	s.recordRun(ctx, models.AgentReactivation, &contactID, prompt, content, draft.Degraded, nil)
	return draft, nil
}

// NegotiationCoach analyzes a deal and coaches the rep. Uses the Anthropic
// provider.
func (s *agentService) NegotiationCoach(ctx context.Context, dealID uuid.UUID, situation string) (*NegotiationAdvice, error) {
	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	contact, err := s.contactRepo.GetByID(ctx, deal.ContactID)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildNegotiationCoach(deal, contact, situation)

	content, err := s.complete(ctx, llm.ProviderAnthropic, prompt, prompts.NegotiationCoachSystem, 0.4, 900)
	if err != nil {
		s.recordRun(ctx, models.AgentNegotiationCoach, &deal.ContactID, prompt, "", false, err)
		return nil, err
	}

	advice, parseErr := llm.ParseJSONResponse[NegotiationAdvice](content)
	if parseErr != nil || advice.Assessment == "" {
		advice = NegotiationAdvice{
			Assessment: content,
			Degraded:   true,
		}
	}

	s.recordRun(ctx, models.AgentNegotiationCoach, &deal.ContactID, prompt, content, advice.Degraded, nil)
	return &advice, nil
}

// VideoScript writes a personalized video script and files a pending video
// job for the external generation service.
func (s *agentService) VideoScript(ctx context.Context, contactID uuid.UUID, topic string) (*VideoScriptResult, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildVideoScript(contact, topic)

	content, err := s.complete(ctx, llm.ProviderOpenAI, prompt, prompts.VideoScriptSystem, 0.8, 700)
	if err != nil {
		s.recordRun(ctx, models.AgentVideoScript, &contactID, prompt, "", false, err)
		return nil, err
	}

	result, parseErr := llm.ParseJSONResponse[VideoScriptResult](content)
	if parseErr != nil || result.Script == "" {
		result = VideoScriptResult{
			Script:   content,
			Degraded: true,
		}
	}

	job := &models.VideoJob{
		ContactID: contactID,
		Script:    result.Script,
		Status:    models.VideoJobPending,
	}
	if err := s.videoJobRepo.Insert(ctx, job); err != nil {
		// The script is still usable without a queued job.
		s.logger.Error("failed to insert video job",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
	} else {
		result.JobID = job.ID
	}

	s.recordRun(ctx, models.AgentVideoScript, &contactID, prompt, content, result.Degraded, nil)
	return &result, nil
}

// SummarizeDocument summarizes free text. Not tied to a contact row.
func (s *agentService) SummarizeDocument(ctx context.Context, text string) (*DocumentSummary, error) {
	prompt := prompts.BuildDocumentSummary(text)

	content, err := s.complete(ctx, llm.ProviderOpenAI, prompt, prompts.SummarizerSystem, 0.2, 800)
	if err != nil {
		s.recordRun(ctx, models.AgentDocumentSummarizer, nil, prompt, "", false, err)
		return nil, err
	}

	summary, parseErr := llm.ParseJSONResponse[DocumentSummary](content)
	if parseErr != nil || summary.Summary == "" {
		summary = DocumentSummary{
			Summary:  content,
			Degraded: true,
		}
	}

	s.recordRun(ctx, models.AgentDocumentSummarizer, nil, prompt, content, summary.Degraded, nil)
	return &summary, nil
}

// History lists the most recent agent runs recorded for a contact.
func (s *agentService) History(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.AgentLog, error) {
	return s.agentLogRepo.ListByContact(ctx, contactID, limit)
}
