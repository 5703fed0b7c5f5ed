package services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartcrm/engine/pkg/models"
	"github.com/smartcrm/engine/pkg/repositories"
)

// Recommendation keys produced by the scorer's threshold bands.
const (
	RecHighEngagementFollowup = "high_engagement_followup"
	RecUpgradeSequence        = "upgrade_sequence"
	RecMaintainCadence        = "maintain_cadence"
	RecNurtureSequence        = "nurture_sequence"
	RecRePermissionCampaign   = "re_permission_campaign"
	RecDisengage              = "disengage"
	RecSuppressSends          = "suppress_sends"
)

// ScoreEmailEngagement maps email metrics to a 0-100 score via fixed
// additive point bands, clamped to [0,100]. Pure function.
func ScoreEmailEngagement(m *models.EmailMetrics, now time.Time) int {
	score := 50

	switch {
	case m.OpenRate >= 0.5:
		score += 30
	case m.OpenRate >= 0.25:
		score += 15
	}

	switch {
	case m.ClickRate >= 0.15:
		score += 25
	case m.ClickRate >= 0.05:
		score += 10
	}

	switch {
	case m.ResponseRate >= 0.1:
		score += 20
	case m.ResponseRate >= 0.02:
		score += 10
	}

	if m.LastActivity != nil {
		days := now.Sub(*m.LastActivity).Hours() / 24
		switch {
		case days <= 7:
			score += 15
		case days <= 30:
			score += 5
		case days > 90:
			score -= 20
		}
	}

	if m.Unsubscribed {
		score -= 50
	}
	if m.SpamComplaints >= 1 {
		score -= 60
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// RecommendationsForScore maps a score to the discrete recommendation set.
func RecommendationsForScore(score int) []string {
	switch {
	case score >= 80:
		return []string{RecHighEngagementFollowup, RecUpgradeSequence}
	case score >= 60:
		return []string{RecMaintainCadence}
	case score >= 40:
		return []string{RecNurtureSequence, RecRePermissionCampaign}
	default:
		return []string{RecDisengage, RecSuppressSends}
	}
}

// statusForScore maps a score band to the contact status written back.
func statusForScore(score int) string {
	switch {
	case score >= 80:
		return models.ContactStatusHotProspect
	case score >= 40:
		return models.ContactStatusNurture
	default:
		return models.ContactStatusDisengaged
	}
}

// EngagementResult is returned to the caller after scoring and dispatch.
type EngagementResult struct {
	ContactID       uuid.UUID `json:"contact_id"`
	Score           int       `json:"score"`
	Status          string    `json:"status"`
	Recommendations []string  `json:"recommendations"`
	ActionsCreated  int       `json:"actions_created"`
}

// EngagementService scores email engagement and dispatches the resulting
// side effects.
type EngagementService interface {
	// Apply scores the metrics, updates the contact, and dispatches one
	// side effect per recommendation. Each insert is independent; partial
	// failure of one insert does not roll back the others.
	Apply(ctx context.Context, contactID uuid.UUID, metrics *models.EmailMetrics) (*EngagementResult, error)
}

type engagementService struct {
	contactRepo repositories.ContactRepository
	actionRepo  repositories.ActionRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(
	contactRepo repositories.ContactRepository,
	actionRepo repositories.ActionRepository,
	logger *zap.Logger,
) EngagementService {
	return &engagementService{
		contactRepo: contactRepo,
		actionRepo:  actionRepo,
		logger:      logger.Named("engagement"),
		now:         time.Now,
	}
}

var _ EngagementService = (*engagementService)(nil)

func (s *engagementService) Apply(ctx context.Context, contactID uuid.UUID, metrics *models.EmailMetrics) (*EngagementResult, error) {
	// Ensure the contact exists before any writes; missing contact is 404.
	if _, err := s.contactRepo.GetByID(ctx, contactID); err != nil {
		return nil, err
	}

	now := s.now()
	score := ScoreEmailEngagement(metrics, now)
	recs := RecommendationsForScore(score)
	status := statusForScore(score)

	if err := s.contactRepo.UpdateEngagement(ctx, contactID, score, status); err != nil {
		return nil, err
	}

	created := 0
	for _, rec := range recs {
		if err := s.dispatchRecommendation(ctx, contactID, rec, score, now); err != nil {
			// Independent inserts: log and keep going.
			s.logger.Error("recommendation side effect failed",
				zap.String("contact_id", contactID.String()),
				zap.String("recommendation", rec),
				zap.Error(err))
			continue
		}
		created++
	}

	s.logger.Info("engagement scored",
		zap.String("contact_id", contactID.String()),
		zap.Int("score", score),
		zap.Strings("recommendations", recs))

	return &EngagementResult{
		ContactID:       contactID,
		Score:           score,
		Status:          status,
		Recommendations: recs,
		ActionsCreated:  created,
	}, nil
}

func (s *engagementService) dispatchRecommendation(ctx context.Context, contactID uuid.UUID, rec string, score int, now time.Time) error {
	reason := "engagement score " + strconv.Itoa(score)

	switch rec {
	case RecHighEngagementFollowup:
		return s.actionRepo.InsertScheduledAction(ctx, &models.ScheduledAction{
			ContactID:    contactID,
			ActionType:   "priority_followup",
			Reason:       reason,
			ScheduledFor: now.Add(24 * time.Hour),
		})
	case RecUpgradeSequence:
		return s.actionRepo.InsertCampaignTrigger(ctx, &models.CampaignTrigger{
			ContactID: contactID,
			Campaign:  "upgrade_sequence",
			Reason:    reason,
		})
	case RecMaintainCadence:
		return s.actionRepo.InsertScheduledAction(ctx, &models.ScheduledAction{
			ContactID:    contactID,
			ActionType:   "standard_followup",
			Reason:       reason,
			ScheduledFor: now.Add(72 * time.Hour),
		})
	case RecNurtureSequence:
		return s.actionRepo.InsertCampaignTrigger(ctx, &models.CampaignTrigger{
			ContactID: contactID,
			Campaign:  "nurture_sequence",
			Reason:    reason,
		})
	case RecRePermissionCampaign:
		return s.actionRepo.InsertCampaignTrigger(ctx, &models.CampaignTrigger{
			ContactID: contactID,
			Campaign:  "re_permission",
			Reason:    reason,
		})
	case RecDisengage:
		return s.actionRepo.InsertComplianceAction(ctx, &models.ComplianceAction{
			ContactID: contactID,
			Action:    "mark_disengaged",
			Reason:    reason,
		})
	case RecSuppressSends:
		return s.actionRepo.InsertComplianceAction(ctx, &models.ComplianceAction{
			ContactID: contactID,
			Action:    "suppress_sends",
			Reason:    reason,
		})
	}
	return nil
}
