package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/smartcrm/engine/pkg/models"
	"github.com/smartcrm/engine/pkg/repositories"
)

// Rule actions.
const (
	RuleActionSchedule     = "schedule_action"
	RuleActionCampaign     = "trigger_campaign"
	RuleActionRunAgent     = "run_agent"
	RuleActionUpdateStatus = "update_status"
)

// RuleCondition matches contact fields. Nil numeric fields are wildcards.
type RuleCondition struct {
	MinEngagementScore *int   `yaml:"min_engagement_score"`
	MaxEngagementScore *int   `yaml:"max_engagement_score"`
	Status             string `yaml:"status"`
	InterestLevel      string `yaml:"interest_level"`
	MinInactiveDays    *int   `yaml:"min_inactive_days"`
	MinOpenDeals       *int   `yaml:"min_open_deals"`
}

// RuleAction is the side effect dispatched when a rule matches.
type RuleAction struct {
	Action     string `yaml:"action"` // schedule_action | trigger_campaign | run_agent | update_status
	ActionType string `yaml:"action_type,omitempty"`
	Campaign   string `yaml:"campaign,omitempty"`
	Agent      string `yaml:"agent,omitempty"` // cold_email | follow_up | reactivation
	Status     string `yaml:"status,omitempty"`
	DelayHours int    `yaml:"delay_hours,omitempty"`
}

// Rule is one automation rule.
type Rule struct {
	Name string        `yaml:"name"`
	When RuleCondition `yaml:"when"`
	Then RuleAction    `yaml:"then"`
}

// RuleSet is the automation rules file.
type RuleSet struct {
	Rules []Rule `yaml:"rules"`
}

// needsDeals reports whether any rule condition reads the contact's deals.
func (rs *RuleSet) needsDeals() bool {
	for _, rule := range rs.Rules {
		if rule.When.MinOpenDeals != nil {
			return true
		}
	}
	return false
}

// LoadRules reads the automation rules from a YAML file.
func LoadRules(path string) (*RuleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var set RuleSet
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	return &set, nil
}

// RuleOutcome reports what one rule did for a contact.
type RuleOutcome struct {
	Rule    string `json:"rule"`
	Matched bool   `json:"matched"`
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}

// AutomationService evaluates the rule set against one contact.
type AutomationService interface {
	Run(ctx context.Context, contactID uuid.UUID) ([]RuleOutcome, error)
}

type automationService struct {
	rules       *RuleSet
	contactRepo repositories.ContactRepository
	dealRepo    repositories.DealRepository
	actionRepo  repositories.ActionRepository
	agents      AgentService
	logger      *zap.Logger
	now         func() time.Time
}

// NewAutomationService creates a new AutomationService.
func NewAutomationService(
	rules *RuleSet,
	contactRepo repositories.ContactRepository,
	dealRepo repositories.DealRepository,
	actionRepo repositories.ActionRepository,
	agents AgentService,
	logger *zap.Logger,
) AutomationService {
	return &automationService{
		rules:       rules,
		contactRepo: contactRepo,
		dealRepo:    dealRepo,
		actionRepo:  actionRepo,
		agents:      agents,
		logger:      logger.Named("automation"),
		now:         time.Now,
	}
}

var _ AutomationService = (*automationService)(nil)

// matches evaluates a rule condition against a contact and its open-deal
// count.
func (c *RuleCondition) matches(contact *models.Contact, openDeals int, now time.Time) bool {
	if c.MinEngagementScore != nil && contact.EngagementScore < *c.MinEngagementScore {
		return false
	}
	if c.MaxEngagementScore != nil && contact.EngagementScore > *c.MaxEngagementScore {
		return false
	}
	if c.Status != "" && contact.Status != c.Status {
		return false
	}
	if c.InterestLevel != "" && contact.InterestLevel != c.InterestLevel {
		return false
	}
	if c.MinInactiveDays != nil {
		days := contact.DaysInactive(now)
		if days < 0 || days < *c.MinInactiveDays {
			return false
		}
	}
	if c.MinOpenDeals != nil && openDeals < *c.MinOpenDeals {
		return false
	}
	return true
}

func (s *automationService) Run(ctx context.Context, contactID uuid.UUID) ([]RuleOutcome, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	// Deals are fetched once, and only when some rule conditions on them.
	openDeals := 0
	if s.rules.needsDeals() {
		deals, err := s.dealRepo.ListByContact(ctx, contactID)
		if err != nil {
			s.logger.Warn("automation: deal lookup failed, treating as zero open deals",
				zap.String("contact_id", contactID.String()),
				zap.Error(err))
		}
		for _, d := range deals {
			if d.Stage != models.DealStageClosedWon && d.Stage != models.DealStageClosedLost {
				openDeals++
			}
		}
	}

	now := s.now()
	outcomes := make([]RuleOutcome, 0, len(s.rules.Rules))

	for _, rule := range s.rules.Rules {
		outcome := RuleOutcome{Rule: rule.Name}

		if !rule.When.matches(contact, openDeals, now) {
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.Matched = true

		if err := s.apply(ctx, contact, &rule, now); err != nil {
			// Rules are independent; one failure does not stop the rest.
			outcome.Error = err.Error()
			s.logger.Error("automation rule failed",
				zap.String("rule", rule.Name),
				zap.String("contact_id", contactID.String()),
				zap.Error(err))
		} else {
			outcome.Applied = true
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

func (s *automationService) apply(ctx context.Context, contact *models.Contact, rule *Rule, now time.Time) error {
	reason := "automation rule " + rule.Name

	switch rule.Then.Action {
	case RuleActionSchedule:
		return s.actionRepo.InsertScheduledAction(ctx, &models.ScheduledAction{
			ContactID:    contact.ID,
			ActionType:   rule.Then.ActionType,
			Reason:       reason,
			ScheduledFor: now.Add(time.Duration(rule.Then.DelayHours) * time.Hour),
		})

	case RuleActionCampaign:
		return s.actionRepo.InsertCampaignTrigger(ctx, &models.CampaignTrigger{
			ContactID: contact.ID,
			Campaign:  rule.Then.Campaign,
			Reason:    reason,
		})

	case RuleActionRunAgent:
		switch models.AgentKind(rule.Then.Agent) {
		case models.AgentColdEmail:
			_, err := s.agents.ColdEmail(ctx, contact.ID)
			return err
		case models.AgentFollowUp:
			_, err := s.agents.FollowUp(ctx, contact.ID, 1)
			return err
		case models.AgentReactivation:
			_, err := s.agents.Reactivation(ctx, contact.ID)
			return err
		default:
			return fmt.Errorf("rule %q references unknown agent %q", rule.Name, rule.Then.Agent)
		}

	case RuleActionUpdateStatus:
		if rule.Then.Status == "" {
			return fmt.Errorf("rule %q sets no status", rule.Name)
		}
		return s.contactRepo.UpdateStatus(ctx, contact.ID, rule.Then.Status)

	default:
		return fmt.Errorf("rule %q has unknown action %q", rule.Name, rule.Then.Action)
	}
}
