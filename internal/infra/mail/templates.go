package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/xavierca1/quotedesk/internal/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Renderer turns leads and agents into ready-to-send messages.
type Renderer struct {
	SiteURL string
}

func (r Renderer) ConsumerConfirmation(lead *entity.Lead) (Message, error) {
	body, err := render("consumer_confirmation.html", ConsumerConfirmationData{
		Name:          lead.FullName,
		InsuranceType: lead.InsuranceType,
		ZipCode:       lead.ZipCode,
		SiteURL:       r.SiteURL,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      lead.Email,
		Subject: fmt.Sprintf("Your %s quote request", lead.InsuranceType),
		HTML:    body,
	}, nil
}

func (r Renderer) AgentNotice(lead *entity.Lead, agent *entity.Agent) (Message, error) {
	body, err := render("agent_notice.html", AgentNoticeData{
		AgentName:     agent.FullName,
		LeadName:      lead.FullName,
		LeadEmail:     lead.Email,
		LeadPhone:     lead.Phone,
		ZipCode:       lead.ZipCode,
		InsuranceType: lead.InsuranceType,
		DashboardURL:  fmt.Sprintf("%s/dashboard/leads/%s", r.SiteURL, lead.ID),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      agent.Email,
		Subject: fmt.Sprintf("New %s lead: %s", lead.InsuranceType, lead.FullName),
		HTML:    body,
	}, nil
}

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return body.String(), nil
}
