package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/llm"
	"github.com/smartcrm/engine/pkg/logging"
	"github.com/smartcrm/engine/pkg/models"
	"github.com/smartcrm/engine/pkg/prompts"
	"github.com/smartcrm/engine/pkg/repositories"
)

// EnrichmentResult is the research payload for a contact. Fallback marks a
// static payload substituted after an internal failure: the enrichment
// path never fails visibly.
type EnrichmentResult struct {
	Industry      string   `json:"industry"`
	CompanySize   string   `json:"company_size"`
	Persona       string   `json:"persona"`
	TalkingPoints []string `json:"talking_points"`
	Fallback      bool     `json:"fallback,omitempty"`
	Cached        bool     `json:"cached,omitempty"`
}

// EnrichmentService researches contacts with Gemini, caching results.
type EnrichmentService interface {
	// Enrich always returns a usable payload. Internal failures - missing
	// contact, provider error, unparseable reply - degrade to a fallback
	// payload rather than an error, so callers always see success.
	Enrich(ctx context.Context, contactID uuid.UUID) *EnrichmentResult
}

type enrichmentService struct {
	contactRepo  repositories.ContactRepository
	agentLogRepo repositories.AgentLogRepository
	llmFactory   llm.ClientFactory
	cache        *redis.Client // nil means no cache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewEnrichmentService creates a new EnrichmentService. cache may be nil.
func NewEnrichmentService(
	contactRepo repositories.ContactRepository,
	agentLogRepo repositories.AgentLogRepository,
	llmFactory llm.ClientFactory,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) EnrichmentService {
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	return &enrichmentService{
		contactRepo:  contactRepo,
		agentLogRepo: agentLogRepo,
		llmFactory:   llmFactory,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger.Named("enrichment"),
	}
}

var _ EnrichmentService = (*enrichmentService)(nil)

func enrichmentCacheKey(contactID uuid.UUID) string {
	return "enrichment:" + contactID.String()
}

// fallbackEnrichment is the payload substituted on any internal failure.
func fallbackEnrichment() *EnrichmentResult {
	return &EnrichmentResult{
		Industry:      "unknown",
		CompanySize:   "unknown",
		Persona:       "unknown",
		TalkingPoints: []string{},
		Fallback:      true,
	}
}

func (s *enrichmentService) Enrich(ctx context.Context, contactID uuid.UUID) *EnrichmentResult {
	if cached := s.cacheGet(ctx, contactID); cached != nil {
		return cached
	}

	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		s.logger.Warn("enrichment: contact lookup failed, using fallback",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		return fallbackEnrichment()
	}

	result := s.research(ctx, contact)
	if !result.Fallback {
		s.cacheSet(ctx, contactID, result)
	}
	return result
}

func (s *enrichmentService) research(ctx context.Context, contact *models.Contact) *EnrichmentResult {
	client, err := s.llmFactory.ForProvider(llm.ProviderGemini)
	if err != nil {
		s.logger.Warn("enrichment: no gemini client, using fallback", zap.Error(err))
		return fallbackEnrichment()
	}

	prompt := prompts.BuildEnrichment(contact)

	completion, err := client.Complete(ctx, prompt, prompts.EnrichmentSystem, 0.3, 500)
	if err != nil {
		// Gemini transport errors echo the request URL, API key included.
		s.logger.Warn("enrichment: provider call failed, using fallback",
			zap.String("contact_id", contact.ID.String()),
			zap.String("error", logging.SanitizeError(err)))
		s.recordRun(ctx, contact.ID, prompt, "", err)
		return fallbackEnrichment()
	}

	result, parseErr := llm.ParseJSONResponse[EnrichmentResult](completion.Content)
	if parseErr != nil {
		s.logger.Warn("enrichment: unparseable reply, using fallback",
			zap.String("contact_id", contact.ID.String()),
			zap.Error(parseErr))
		s.recordRun(ctx, contact.ID, prompt, completion.Content, parseErr)
		return fallbackEnrichment()
	}

	s.recordRun(ctx, contact.ID, prompt, completion.Content, nil)
	return &result
}

func (s *enrichmentService) recordRun(ctx context.Context, contactID uuid.UUID, input, output string, runErr error) {
	entry := &models.AgentLog{
		ContactID: &contactID,
		Agent:     models.AgentEnrichment,
		Status:    models.AgentRunCompleted,
		Input:     input,
		Output:    output,
	}
	if runErr != nil {
		entry.Status = models.AgentRunFailed
		entry.Error = logging.SanitizeError(runErr)
	}
	if err := s.agentLogRepo.Insert(ctx, entry); err != nil {
		s.logger.Error("failed to insert enrichment log", zap.Error(err))
	}
}

func (s *enrichmentService) cacheGet(ctx context.Context, contactID uuid.UUID) *EnrichmentResult {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, enrichmentCacheKey(contactID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("enrichment cache read failed", zap.Error(err))
		}
		return nil
	}

	var result EnrichmentResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	result.Cached = true
	return &result
}

func (s *enrichmentService) cacheSet(ctx context.Context, contactID uuid.UUID, result *EnrichmentResult) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, enrichmentCacheKey(contactID), raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("enrichment cache write failed", zap.Error(err))
	}
}
