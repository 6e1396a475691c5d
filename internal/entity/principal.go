package entity

// Principal is the authenticated caller. It is resolved at the HTTP boundary
// and handed to every operation that needs to know who is acting.
type Principal struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

func (p Principal) CanAccessLead(l *Lead) bool {
	return p.IsAdmin || l.IsAssignedTo(p.UserID)
}

func (p Principal) CanManageAgent(agentID string) bool {
	return p.IsAdmin || p.UserID == agentID
}
