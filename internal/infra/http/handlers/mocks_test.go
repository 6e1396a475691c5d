package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/usecase"
)

type MockLeadCreator struct {
	mock.Mock
}

func (m *MockLeadCreator) Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockLeadManager struct {
	mock.Mock
}

func (m *MockLeadManager) Get(ctx context.Context, p entity.Principal, id string) (*entity.Lead, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadManager) List(ctx context.Context, p entity.Principal, filter entity.LeadFilter) ([]entity.Lead, int, error) {
	args := m.Called(ctx, p, filter)
	return args.Get(0).([]entity.Lead), args.Int(1), args.Error(2)
}

func (m *MockLeadManager) Update(ctx context.Context, p entity.Principal, id string, input usecase.UpdateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, p, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadManager) Delete(ctx context.Context, p entity.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockLeadManager) BatchAssign(ctx context.Context, p entity.Principal, ids []string, agentID *string) error {
	return m.Called(ctx, p, ids, agentID).Error(0)
}

func (m *MockLeadManager) BatchUpdateStatus(ctx context.Context, p entity.Principal, ids []string, status entity.LeadStatus) error {
	return m.Called(ctx, p, ids, status).Error(0)
}

type MockAgentManager struct {
	mock.Mock
}

func (m *MockAgentManager) Create(ctx context.Context, p entity.Principal, input usecase.CreateAgentInput) (*entity.Agent, error) {
	args := m.Called(ctx, p, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

func (m *MockAgentManager) Register(ctx context.Context, input usecase.CreateAgentInput) (*entity.Agent, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

func (m *MockAgentManager) Get(ctx context.Context, p entity.Principal, id string) (*entity.Agent, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

func (m *MockAgentManager) List(ctx context.Context, p entity.Principal, filter entity.AgentFilter, includeStats bool) ([]entity.Agent, int, error) {
	args := m.Called(ctx, p, filter, includeStats)
	return args.Get(0).([]entity.Agent), args.Int(1), args.Error(2)
}

func (m *MockAgentManager) FindByLine(ctx context.Context, line string) ([]entity.Agent, error) {
	args := m.Called(ctx, line)
	return args.Get(0).([]entity.Agent), args.Error(1)
}

func (m *MockAgentManager) Update(ctx context.Context, p entity.Principal, id string, input usecase.UpdateAgentInput) (*entity.Agent, error) {
	args := m.Called(ctx, p, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

func (m *MockAgentManager) Delete(ctx context.Context, p entity.Principal, id string, reassignTo *string) error {
	return m.Called(ctx, p, id, reassignTo).Error(0)
}

type MockNoteManager struct {
	mock.Mock
}

func (m *MockNoteManager) Create(ctx context.Context, p entity.Principal, leadID, content string) (*entity.Note, error) {
	args := m.Called(ctx, p, leadID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Note), args.Error(1)
}

func (m *MockNoteManager) ListByLead(ctx context.Context, p entity.Principal, leadID string) ([]entity.Note, error) {
	args := m.Called(ctx, p, leadID)
	return args.Get(0).([]entity.Note), args.Error(1)
}

func (m *MockNoteManager) Delete(ctx context.Context, p entity.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}

type MockDocumentManager struct {
	mock.Mock
}

func (m *MockDocumentManager) Upload(ctx context.Context, p entity.Principal, input usecase.UploadDocumentInput) (*entity.Document, error) {
	args := m.Called(ctx, p, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Document), args.Error(1)
}

func (m *MockDocumentManager) ListByLead(ctx context.Context, p entity.Principal, leadID string) ([]entity.Document, error) {
	args := m.Called(ctx, p, leadID)
	return args.Get(0).([]entity.Document), args.Error(1)
}

func (m *MockDocumentManager) Delete(ctx context.Context, p entity.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}
