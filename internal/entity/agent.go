package entity

import (
	"context"
	"strings"
	"time"
)

// NotificationPreferences are stored with the profile. Delivery does not
// consult them yet.
type NotificationPreferences struct {
	EmailNewLead bool `json:"email_new_lead"`
	EmailUpdates bool `json:"email_updates"`
	SMSNewLead   bool `json:"sms_new_lead"`
	SMSUpdates   bool `json:"sms_updates"`
}

// Agent shares its ID with the identity provider user it belongs to.
type Agent struct {
	ID                   string                  `json:"id"`
	FullName             string                  `json:"full_name"`
	AgencyName           string                  `json:"agency_name"`
	Email                string                  `json:"email"`
	Phone                string                  `json:"phone"`
	StatesLicensed       []string                `json:"states_licensed"`
	LinesOfInsurance     []string                `json:"lines_of_insurance"`
	CustomPackageRequest bool                    `json:"custom_package_request"`
	Notifications        NotificationPreferences `json:"notifications"`
	Stats                *LeadStats              `json:"stats,omitempty"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`
}

func (a *Agent) WritesLine(line string) bool {
	for _, l := range a.LinesOfInsurance {
		if l == line {
			return true
		}
	}
	return false
}

func (a *Agent) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrAgentIncomplete
	}
	if strings.TrimSpace(a.FullName) == "" || strings.TrimSpace(a.Email) == "" {
		return ErrAgentIncomplete
	}
	if len(a.StatesLicensed) == 0 || len(a.LinesOfInsurance) == 0 {
		return ErrAgentIncomplete
	}
	return nil
}

// LeadStats counts the leads currently assigned to an agent.
type LeadStats struct {
	Total     int `json:"total_leads"`
	Contacted int `json:"contacted_leads"`
	Pending   int `json:"pending_leads"`
}

func NewLeadStats(total, contacted int) LeadStats {
	return LeadStats{Total: total, Contacted: contacted, Pending: total - contacted}
}

type AgentFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortKey   string
	SortOrder string
}

type AgentRepository interface {
	Create(ctx context.Context, agent *Agent) error
	FindByID(ctx context.Context, id string) (*Agent, error)
	List(ctx context.Context, filter AgentFilter) ([]Agent, int, error)
	// FindByLine returns every agent writing the given line, oldest profile first.
	FindByLine(ctx context.Context, line string) ([]Agent, error)
	Update(ctx context.Context, agent *Agent) error
	Delete(ctx context.Context, id string) error
}
