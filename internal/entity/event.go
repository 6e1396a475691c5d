package entity

import "time"

type LeadEventType string

const (
	LeadCreated    LeadEventType = "lead.created"
	LeadAssigned   LeadEventType = "lead.assigned"
	LeadUnassigned LeadEventType = "lead.unassigned"
	LeadDeleted    LeadEventType = "lead.deleted"
)

type LeadEvent struct {
	Type       LeadEventType `json:"type"`
	LeadID     string        `json:"lead_id"`
	AgentID    string        `json:"agent_id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func NewLeadEvent(t LeadEventType, leadID, agentID string) LeadEvent {
	return LeadEvent{Type: t, LeadID: leadID, AgentID: agentID, OccurredAt: time.Now().UTC()}
}
