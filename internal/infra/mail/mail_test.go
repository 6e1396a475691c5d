package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/quotedesk/internal/entity"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

type fakeResend struct {
	req *resend.SendEmailRequest
	err error
}

func (f *fakeResend) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.req = params
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "re_123"}, nil
}

func testLead() *entity.Lead {
	agentID := "agent-1"
	return &entity.Lead{
		ID:            "lead-1",
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "5551234567",
		ZipCode:       "10001",
		InsuranceType: entity.InsuranceLife,
		AssignedTo:    &agentID,
	}
}

func TestEmailSenderNotConfigured(t *testing.T) {
	for _, s := range []*EmailSender{
		NewEmailSender("", 587, "user", "pass", "from@example.com"),
		NewEmailSender("smtp.example.com", 587, "", "pass", "from@example.com"),
		NewEmailSender("smtp.example.com", 587, "user", "", "from@example.com"),
	} {
		assert.False(t, s.Configured())
		_, err := s.Send(context.Background(), Message{To: "x@example.com"})
		assert.ErrorIs(t, err, ErrNotConfigured)
	}
}

func TestEmailSenderSendsWithMessageID(t *testing.T) {
	s := NewEmailSender("smtp.example.com", 587, "user", "pass", "quotes@quotedesk.test")
	d := &fakeDialer{}
	s.dialer = d

	id, err := s.Send(context.Background(), Message{To: "jane@example.com", Subject: "Hi", HTML: "<p>hi</p>"})
	require.NoError(t, err)

	assert.Contains(t, id, "@quotedesk.test>")
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"jane@example.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{id}, d.sent[0].GetHeader("Message-ID"))
}

func TestEmailSenderWrapsDialError(t *testing.T) {
	s := NewEmailSender("smtp.example.com", 587, "user", "pass", "quotes@quotedesk.test")
	s.dialer = &fakeDialer{err: errors.New("connection refused")}

	_, err := s.Send(context.Background(), Message{To: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestResendSender(t *testing.T) {
	assert.Nil(t, NewResendSender("", "from@example.com"))
	assert.False(t, NewResendSender("", "").Configured())

	fake := &fakeResend{}
	s := &ResendSender{emails: fake, from: "Quotes <quotes@example.com>"}

	id, err := s.Send(context.Background(), Message{To: "jane@example.com", Subject: "Hello", HTML: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "re_123", id)
	assert.Equal(t, []string{"jane@example.com"}, fake.req.To)
	assert.Equal(t, "Hello", fake.req.Subject)
}

func TestSelectTransportPrefersResend(t *testing.T) {
	smtp := NewEmailSender("smtp.example.com", 587, "user", "pass", "a@example.com")
	assert.Same(t, smtp, SelectTransport(nil, smtp))

	rs := &ResendSender{emails: &fakeResend{}, from: "a@example.com"}
	assert.Same(t, rs, SelectTransport(rs, smtp))
}

func TestRendererConsumerConfirmation(t *testing.T) {
	msg, err := Renderer{SiteURL: "https://quotes.example"}.ConsumerConfirmation(testLead())
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", msg.To)
	assert.Equal(t, "Your Life Insurance quote request", msg.Subject)
	assert.Contains(t, msg.HTML, "Jane Doe")
	assert.Contains(t, msg.HTML, "10001")
}

func TestRendererAgentNoticeEscapesInput(t *testing.T) {
	lead := testLead()
	lead.FullName = `<script>alert(1)</script>`
	agent := &entity.Agent{ID: "agent-1", FullName: "Bob Agent", Email: "bob@example.com"}

	msg, err := Renderer{SiteURL: "https://quotes.example"}.AgentNotice(lead, agent)
	require.NoError(t, err)

	assert.Equal(t, "bob@example.com", msg.To)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "https://quotes.example/dashboard/leads/lead-1")
}

func TestMailerShortCircuitsWhenUnconfigured(t *testing.T) {
	m := NewMailer(NewEmailSender("", 0, "", "", ""), "https://quotes.example")

	assert.False(t, m.Configured())
	_, err := m.SendConsumerConfirmation(context.Background(), testLead())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestMailerDeliversThroughTransport(t *testing.T) {
	fake := &fakeResend{}
	m := NewMailer(&ResendSender{emails: fake, from: "a@example.com"}, "https://quotes.example")

	id, err := m.SendAgentNotice(context.Background(), testLead(), &entity.Agent{FullName: "Bob Agent", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "re_123", id)
	assert.Equal(t, []string{"bob@example.com"}, fake.req.To)
}
