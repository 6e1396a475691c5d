package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("email transport is not configured")

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender delivers messages over SMTP. Host, user and password must all
// be set or every send fails with ErrNotConfigured.
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	dialer dialer
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
	if s.Configured() {
		s.dialer = gomail.NewDialer(host, port, user, password)
	}
	return s
}

func (s *EmailSender) Configured() bool {
	return s != nil && s.Host != "" && s.User != "" && s.Password != ""
}

func (s *EmailSender) Send(ctx context.Context, msg Message) (string, error) {
	if !s.Configured() || s.dialer == nil {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := fmt.Sprintf("<%s@%s>", uuid.New().String(), domainOf(s.From, s.Host))

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", id)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("send email via smtp: %w", err)
	}
	return id, nil
}

func domainOf(address, fallback string) string {
	if at := strings.LastIndex(address, "@"); at >= 0 && at < len(address)-1 {
		return strings.Trim(address[at+1:], "> ")
	}
	return fallback
}
