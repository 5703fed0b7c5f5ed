package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartcrm/engine/pkg/models"
	"github.com/smartcrm/engine/pkg/repositories"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockContactRepo implements repositories.ContactRepository for service tests.
type mockContactRepo struct {
	contact       *models.Contact
	getErr        error
	getByEmailErr error

	updatedScore  int
	updatedStatus string
	updateErr     error
	updateCalls   int
	statusCalls   int
}

func (m *mockContactRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.contact, nil
}

func (m *mockContactRepo) GetByEmail(ctx context.Context, email string) (*models.Contact, error) {
	if m.getByEmailErr != nil {
		return nil, m.getByEmailErr
	}
	return m.contact, nil
}

func (m *mockContactRepo) UpdateEngagement(ctx context.Context, id uuid.UUID, score int, status string) error {
	m.updateCalls++
	m.updatedScore = score
	m.updatedStatus = status
	return m.updateErr
}

func (m *mockContactRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	m.statusCalls++
	m.updatedStatus = status
	return m.updateErr
}

var _ repositories.ContactRepository = (*mockContactRepo)(nil)

// mockDealRepo implements repositories.DealRepository for service tests.
type mockDealRepo struct {
	deal    *models.Deal
	deals   []*models.Deal
	getErr  error
	listErr error
}

func (m *mockDealRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Deal, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.deal, nil
}

func (m *mockDealRepo) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Deal, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.deals != nil {
		return m.deals, nil
	}
	if m.deal == nil {
		return nil, nil
	}
	return []*models.Deal{m.deal}, nil
}

var _ repositories.DealRepository = (*mockDealRepo)(nil)

// mockActivityRepo implements repositories.ActivityRepository for service tests.
type mockActivityRepo struct {
	activities []*models.Activity
	listErr    error
}

func (m *mockActivityRepo) ListRecent(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.Activity, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.activities, nil
}

var _ repositories.ActivityRepository = (*mockActivityRepo)(nil)

// mockAgentLogRepo implements repositories.AgentLogRepository for service tests.
type mockAgentLogRepo struct {
	inserted  []*models.AgentLog
	insertErr error
}

func (m *mockAgentLogRepo) Insert(ctx context.Context, log *models.AgentLog) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, log)
	return nil
}

func (m *mockAgentLogRepo) ListByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.AgentLog, error) {
	return m.inserted, nil
}

var _ repositories.AgentLogRepository = (*mockAgentLogRepo)(nil)

// mockActionRepo implements repositories.ActionRepository for service tests.
type mockActionRepo struct {
	scheduled  []*models.ScheduledAction
	campaigns  []*models.CampaignTrigger
	compliance []*models.ComplianceAction

	scheduledErr  error
	campaignErr   error
	complianceErr error
}

func (m *mockActionRepo) InsertScheduledAction(ctx context.Context, action *models.ScheduledAction) error {
	if m.scheduledErr != nil {
		return m.scheduledErr
	}
	m.scheduled = append(m.scheduled, action)
	return nil
}

func (m *mockActionRepo) InsertCampaignTrigger(ctx context.Context, trigger *models.CampaignTrigger) error {
	if m.campaignErr != nil {
		return m.campaignErr
	}
	m.campaigns = append(m.campaigns, trigger)
	return nil
}

func (m *mockActionRepo) InsertComplianceAction(ctx context.Context, action *models.ComplianceAction) error {
	if m.complianceErr != nil {
		return m.complianceErr
	}
	m.compliance = append(m.compliance, action)
	return nil
}

var _ repositories.ActionRepository = (*mockActionRepo)(nil)

// mockVideoJobRepo implements repositories.VideoJobRepository for service tests.
type mockVideoJobRepo struct {
	inserted  []*models.VideoJob
	insertErr error
}

func (m *mockVideoJobRepo) Insert(ctx context.Context, job *models.VideoJob) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	job.ID = uuid.New()
	m.inserted = append(m.inserted, job)
	return nil
}

var _ repositories.VideoJobRepository = (*mockVideoJobRepo)(nil)

// mockTriggerRepo implements repositories.TriggerRepository for service tests.
type mockTriggerRepo struct {
	items      []map[string]any
	nextCursor string
	pollErr    error

	lastQuery  repositories.TriggerQuery
	lastCursor string
	lastLimit  int
}

func (m *mockTriggerRepo) Poll(ctx context.Context, q repositories.TriggerQuery, cursor string, limit int) ([]map[string]any, string, error) {
	m.lastQuery = q
	m.lastCursor = cursor
	m.lastLimit = limit
	if m.pollErr != nil {
		return nil, "", m.pollErr
	}
	return m.items, m.nextCursor, nil
}

var _ repositories.TriggerRepository = (*mockTriggerRepo)(nil)
