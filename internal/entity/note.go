package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	AgentID   string    `json:"agent_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNote(leadID, agentID, content string) (*Note, error) {
	content = strings.TrimSpace(content)
	if leadID == "" || agentID == "" || content == "" {
		return nil, ErrNoteIncomplete
	}
	return &Note{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		AgentID:   agentID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}, nil
}

type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	FindByID(ctx context.Context, id string) (*Note, error)
	ListByLead(ctx context.Context, leadID string) ([]Note, error)
	Delete(ctx context.Context, id string) error
	DeleteByLead(ctx context.Context, leadID string) (int64, error)
	DeleteByAgent(ctx context.Context, agentID string) (int64, error)
}
