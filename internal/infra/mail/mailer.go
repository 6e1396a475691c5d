package mail

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/quotedesk/internal/entity"
)

type Transport interface {
	Configured() bool
	Send(ctx context.Context, msg Message) (string, error)
}

// Mailer renders the transactional messages and hands them to a transport.
type Mailer struct {
	Transport Transport
	Renderer  Renderer
}

func NewMailer(transport Transport, siteURL string) *Mailer {
	return &Mailer{Transport: transport, Renderer: Renderer{SiteURL: siteURL}}
}

// SelectTransport prefers Resend when an API key is present and falls back to SMTP.
func SelectTransport(resendSender *ResendSender, smtpSender *EmailSender) Transport {
	if resendSender.Configured() {
		return resendSender
	}
	return smtpSender
}

func (m *Mailer) Configured() bool {
	return m.Transport != nil && m.Transport.Configured()
}

func (m *Mailer) SendConsumerConfirmation(ctx context.Context, lead *entity.Lead) (string, error) {
	msg, err := m.Renderer.ConsumerConfirmation(lead)
	if err != nil {
		return "", err
	}
	return m.deliver(ctx, "consumer_confirmation", msg)
}

func (m *Mailer) SendAgentNotice(ctx context.Context, lead *entity.Lead, agent *entity.Agent) (string, error) {
	msg, err := m.Renderer.AgentNotice(lead, agent)
	if err != nil {
		return "", err
	}
	return m.deliver(ctx, "agent_notice", msg)
}

func (m *Mailer) deliver(ctx context.Context, kind string, msg Message) (string, error) {
	if !m.Configured() {
		return "", ErrNotConfigured
	}
	id, err := m.Transport.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	log.Debug().Str("kind", kind).Str("to", msg.To).Str("message_id", id).Msg("email sent")
	return id, nil
}
