package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

type resendEmails interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender delivers messages through the Resend HTTP API.
type ResendSender struct {
	emails resendEmails
	from   string
}

// NewResendSender returns nil when the API key or sender address is missing.
func NewResendSender(apiKey, from string) *ResendSender {
	if apiKey == "" || from == "" {
		return nil
	}
	return &ResendSender{
		emails: resend.NewClient(apiKey).Emails,
		from:   from,
	}
}

func (s *ResendSender) Configured() bool {
	return s != nil && s.emails != nil && s.from != ""
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sent, err := s.emails.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("send email via resend: %w", err)
	}
	return sent.Id, nil
}
