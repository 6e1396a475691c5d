package handlers

import (
	"context"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/usecase"
)

type LeadCreator interface {
	Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error)
}

type LeadManager interface {
	Get(ctx context.Context, p entity.Principal, id string) (*entity.Lead, error)
	List(ctx context.Context, p entity.Principal, filter entity.LeadFilter) ([]entity.Lead, int, error)
	Update(ctx context.Context, p entity.Principal, id string, input usecase.UpdateLeadInput) (*entity.Lead, error)
	Delete(ctx context.Context, p entity.Principal, id string) error
	BatchAssign(ctx context.Context, p entity.Principal, ids []string, agentID *string) error
	BatchUpdateStatus(ctx context.Context, p entity.Principal, ids []string, status entity.LeadStatus) error
}

type AgentManager interface {
	Create(ctx context.Context, p entity.Principal, input usecase.CreateAgentInput) (*entity.Agent, error)
	Register(ctx context.Context, input usecase.CreateAgentInput) (*entity.Agent, error)
	Get(ctx context.Context, p entity.Principal, id string) (*entity.Agent, error)
	List(ctx context.Context, p entity.Principal, filter entity.AgentFilter, includeStats bool) ([]entity.Agent, int, error)
	FindByLine(ctx context.Context, line string) ([]entity.Agent, error)
	Update(ctx context.Context, p entity.Principal, id string, input usecase.UpdateAgentInput) (*entity.Agent, error)
	Delete(ctx context.Context, p entity.Principal, id string, reassignTo *string) error
}

type NoteManager interface {
	Create(ctx context.Context, p entity.Principal, leadID, content string) (*entity.Note, error)
	ListByLead(ctx context.Context, p entity.Principal, leadID string) ([]entity.Note, error)
	Delete(ctx context.Context, p entity.Principal, id string) error
}

type DocumentManager interface {
	Upload(ctx context.Context, p entity.Principal, input usecase.UploadDocumentInput) (*entity.Document, error)
	ListByLead(ctx context.Context, p entity.Principal, leadID string) ([]entity.Document, error)
	Delete(ctx context.Context, p entity.Principal, id string) error
}
