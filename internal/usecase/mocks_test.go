package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/quotedesk/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// copy so the service can mutate its lead without touching the fixture
	lead := *args.Get(0).(*entity.Lead)
	return &lead, args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entity.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) UpdateAssignment(ctx context.Context, leadID string, agentID *string, onlyIfUnassigned bool) (bool, error) {
	args := m.Called(ctx, leadID, agentID, onlyIfUnassigned)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) ReassignAgentLeads(ctx context.Context, fromAgentID string, toAgentID *string) (int64, error) {
	args := m.Called(ctx, fromAgentID, toAgentID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockLeadRepository) CountByAgent(ctx context.Context, agentID string) (entity.LeadStats, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).(entity.LeadStats), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockAgentRepository
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	return m.Called(ctx, agent).Error(0)
}

func (m *MockAgentRepository) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	agent := *args.Get(0).(*entity.Agent)
	return &agent, args.Error(1)
}

func (m *MockAgentRepository) List(ctx context.Context, filter entity.AgentFilter) ([]entity.Agent, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]entity.Agent), args.Int(1), args.Error(2)
}

func (m *MockAgentRepository) FindByLine(ctx context.Context, line string) ([]entity.Agent, error) {
	args := m.Called(ctx, line)
	return args.Get(0).([]entity.Agent), args.Error(1)
}

func (m *MockAgentRepository) Update(ctx context.Context, agent *entity.Agent) error {
	return m.Called(ctx, agent).Error(0)
}

func (m *MockAgentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockNoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id string) (*entity.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Note), args.Error(1)
}

func (m *MockNoteRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Note, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).([]entity.Note), args.Error(1)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNoteRepository) DeleteByLead(ctx context.Context, leadID string) (int64, error) {
	args := m.Called(ctx, leadID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockNoteRepository) DeleteByAgent(ctx context.Context, agentID string) (int64, error) {
	args := m.Called(ctx, agentID)
	return int64(args.Int(0)), args.Error(1)
}

// MockDocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByLead(ctx context.Context, leadID string) ([]entity.Document, error) {
	args := m.Called(ctx, leadID)
	return args.Get(0).([]entity.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByAgent(ctx context.Context, agentID string) ([]entity.Document, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).([]entity.Document), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDocumentRepository) DeleteByLead(ctx context.Context, leadID string) (int64, error) {
	args := m.Called(ctx, leadID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockDocumentRepository) DeleteByAgent(ctx context.Context, agentID string) (int64, error) {
	args := m.Called(ctx, agentID)
	return int64(args.Int(0)), args.Error(1)
}

// MockBlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, path, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, path, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, paths ...string) error {
	return m.Called(ctx, paths).Error(0)
}

// MockIdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) DeleteAccount(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockIdentityProvider) UpdateAccountEmail(ctx context.Context, userID, email string) error {
	return m.Called(ctx, userID, email).Error(0)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error {
	return m.Called(ctx, event).Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockEmailService) SendConsumerConfirmation(ctx context.Context, lead *entity.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

func (m *MockEmailService) SendAgentNotice(ctx context.Context, lead *entity.Lead, agent *entity.Agent) (string, error) {
	args := m.Called(ctx, lead, agent)
	return args.String(0), args.Error(1)
}

// MockLeadNotifier
type MockLeadNotifier struct {
	mock.Mock
}

func (m *MockLeadNotifier) SendConsumerConfirmation(ctx context.Context, lead *entity.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

func (m *MockLeadNotifier) SendAgentNotice(ctx context.Context, leadID, agentID string) (string, error) {
	args := m.Called(ctx, leadID, agentID)
	return args.String(0), args.Error(1)
}

// MockLeadAssigner
type MockLeadAssigner struct {
	mock.Mock
}

func (m *MockLeadAssigner) Execute(ctx context.Context, lead *entity.Lead) (*entity.Agent, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

func eventOfType(t entity.LeadEventType) any {
	return mock.MatchedBy(func(e entity.LeadEvent) bool { return e.Type == t })
}

func strPtr(s string) *string { return &s }
