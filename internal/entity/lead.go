package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusFollowUp  LeadStatus = "follow_up"
	LeadStatusClosed    LeadStatus = "closed"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusFollowUp, LeadStatusClosed:
		return true
	}
	return false
}

// Insurance lines a quote can be requested for. Agents declare the same
// values in their lines of insurance.
const (
	InsuranceLife   = "Life Insurance"
	InsuranceAuto   = "Auto Insurance"
	InsuranceHome   = "Home Insurance"
	InsuranceHealth = "Health Insurance"

	DefaultInsuranceType = InsuranceLife
)

var InsuranceTypes = []string{InsuranceLife, InsuranceAuto, InsuranceHome, InsuranceHealth}

func IsInsuranceType(s string) bool {
	for _, t := range InsuranceTypes {
		if t == s {
			return true
		}
	}
	return false
}

// AgentSummary is the denormalized view of the assigned agent returned with a lead.
type AgentSummary struct {
	FullName   string `json:"full_name"`
	AgencyName string `json:"agency_name"`
}

type Lead struct {
	ID             string        `json:"id"`
	FullName       string        `json:"full_name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	ZipCode        string        `json:"zip_code"`
	InsuranceType  string        `json:"insurance_type"`
	PrivacyConsent bool          `json:"privacy_consent"`
	Contacted      bool          `json:"contacted"`
	Status         LeadStatus    `json:"status"`
	AssignedTo     *string       `json:"assigned_to"`
	Agent          *AgentSummary `json:"agent,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func NewLead(fullName, email, phone, zipCode, insuranceType string, privacyConsent bool) (*Lead, error) {
	if strings.TrimSpace(insuranceType) == "" {
		insuranceType = DefaultInsuranceType
	}

	now := time.Now().UTC()
	lead := &Lead{
		ID:             uuid.New().String(),
		FullName:       strings.TrimSpace(fullName),
		Email:          strings.TrimSpace(email),
		Phone:          strings.TrimSpace(phone),
		ZipCode:        strings.TrimSpace(zipCode),
		InsuranceType:  insuranceType,
		PrivacyConsent: privacyConsent,
		Contacted:      false,
		Status:         LeadStatusNew,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Lead) Validate() error {
	if !l.PrivacyConsent {
		return ErrPrivacyConsentRequired
	}
	if l.FullName == "" || l.Email == "" || l.Phone == "" || l.ZipCode == "" {
		return ErrLeadIncomplete
	}
	if !IsInsuranceType(l.InsuranceType) {
		return ErrUnknownInsuranceType
	}
	return nil
}

// ApplyStatus moves the lead to s. Any status other than new marks the lead
// as contacted; going back to new leaves the contacted flag untouched.
func (l *Lead) ApplyStatus(s LeadStatus) {
	l.Status = s
	if s != LeadStatusNew {
		l.Contacted = true
	}
}

func (l *Lead) IsAssignedTo(agentID string) bool {
	return l.AssignedTo != nil && *l.AssignedTo == agentID
}

type LeadFilter struct {
	Contacted     *bool
	Status        LeadStatus
	AssignedTo    string
	AssignedState string
	Search        string
	Page          int
	PageSize      int
	SortKey       string
	SortOrder     string
}

type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]Lead, int, error)
	Update(ctx context.Context, lead *Lead) error
	// UpdateAssignment sets assigned_to. With onlyIfUnassigned the write only
	// happens while the lead has no agent; the returned bool reports whether a
	// row changed.
	UpdateAssignment(ctx context.Context, leadID string, agentID *string, onlyIfUnassigned bool) (bool, error)
	ReassignAgentLeads(ctx context.Context, fromAgentID string, toAgentID *string) (int64, error)
	CountByAgent(ctx context.Context, agentID string) (LeadStats, error)
	Delete(ctx context.Context, id string) error
}
