package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/infra/metrics"
)

const (
	kindConsumerConfirmation = "consumer_confirmation"
	kindAgentNotice          = "agent_notice"
)

// Notifier sends the consumer confirmation and the agent new-lead notice.
// It never retries; callers decide what a failure means.
type Notifier struct {
	Leads  entity.LeadRepository
	Agents entity.AgentRepository
	Email  EmailService
}

func NewNotifier(leads entity.LeadRepository, agents entity.AgentRepository, email EmailService) *Notifier {
	return &Notifier{
		Leads:  leads,
		Agents: agents,
		Email:  email,
	}
}

func (n *Notifier) SendConsumerConfirmation(ctx context.Context, lead *entity.Lead) (string, error) {
	if lead == nil || strings.TrimSpace(lead.Email) == "" || strings.TrimSpace(lead.FullName) == "" {
		metrics.RecordNotification(kindConsumerConfirmation, "invalid")
		return "", invalidField("email", "lead email and name are required for a confirmation")
	}

	return n.send(kindConsumerConfirmation, func() (string, error) {
		return n.Email.SendConsumerConfirmation(ctx, lead)
	})
}

// SendAgentNotice loads both records by id instead of trusting copies held
// by the caller.
func (n *Notifier) SendAgentNotice(ctx context.Context, leadID, agentID string) (string, error) {
	lead, err := n.Leads.FindByID(ctx, leadID)
	if err != nil {
		metrics.RecordNotification(kindAgentNotice, "unresolved")
		return "", storeError("load lead for agent notice", err)
	}

	agent, err := n.Agents.FindByID(ctx, agentID)
	if err != nil {
		metrics.RecordNotification(kindAgentNotice, "unresolved")
		return "", storeError("load agent for agent notice", err)
	}

	if strings.TrimSpace(agent.Email) == "" {
		metrics.RecordNotification(kindAgentNotice, "invalid")
		return "", invalidField("email", "agent has no email address")
	}

	return n.send(kindAgentNotice, func() (string, error) {
		return n.Email.SendAgentNotice(ctx, lead, agent)
	})
}

func (n *Notifier) send(kind string, fn func() (string, error)) (string, error) {
	if n.Email == nil || !n.Email.Configured() {
		metrics.RecordNotification(kind, "unconfigured")
		return "", &TechnicalError{Code: CodeConfiguration, Message: "email transport is not configured"}
	}

	id, err := fn()
	if err != nil {
		metrics.RecordNotification(kind, "failed")
		metrics.RecordIntegrationError("email")
		return "", &TechnicalError{Code: CodeDeliveryFailed, Message: "send " + kind, Err: err}
	}

	metrics.RecordNotification(kind, "sent")
	return id, nil
}
