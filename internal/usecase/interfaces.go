package usecase

import (
	"context"

	"github.com/xavierca1/quotedesk/internal/entity"
)

// EmailService renders and delivers the two transactional messages.
// Configured reports whether the transport has the settings it needs.
type EmailService interface {
	Configured() bool
	SendConsumerConfirmation(ctx context.Context, lead *entity.Lead) (string, error)
	SendAgentNotice(ctx context.Context, lead *entity.Lead, agent *entity.Agent) (string, error)
}

type BlobStore interface {
	Put(ctx context.Context, path, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, paths ...string) error
}

type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	DeleteAccount(ctx context.Context, userID string) error
	UpdateAccountEmail(ctx context.Context, userID, email string) error
}

type EventPublisher interface {
	PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error
}

// AgentSelector picks the agent a new lead goes to, or nil when nobody fits.
type AgentSelector interface {
	Select(ctx context.Context, lead *entity.Lead) (*entity.Agent, error)
}

type LeadNotifier interface {
	SendConsumerConfirmation(ctx context.Context, lead *entity.Lead) (string, error)
	SendAgentNotice(ctx context.Context, leadID, agentID string) (string, error)
}

type LeadAssigner interface {
	Execute(ctx context.Context, lead *entity.Lead) (*entity.Agent, error)
}
