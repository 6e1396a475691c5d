package usecase

import (
	"context"

	"github.com/xavierca1/quotedesk/internal/entity"
)

type NoteService struct {
	Leads entity.LeadRepository
	Notes entity.NoteRepository
}

func NewNoteService(leads entity.LeadRepository, notes entity.NoteRepository) *NoteService {
	return &NoteService{Leads: leads, Notes: notes}
}

// Create attaches a note written by the caller to a lead the caller can see.
func (s *NoteService) Create(ctx context.Context, p entity.Principal, leadID, content string) (*entity.Note, error) {
	if _, err := s.accessibleLead(ctx, p, leadID); err != nil {
		return nil, err
	}

	note, err := entity.NewNote(leadID, p.UserID, content)
	if err != nil {
		return nil, invalidField("content", "is required")
	}

	if err := s.Notes.Create(ctx, note); err != nil {
		return nil, storeError("create note", err)
	}
	return note, nil
}

func (s *NoteService) ListByLead(ctx context.Context, p entity.Principal, leadID string) ([]entity.Note, error) {
	if _, err := s.accessibleLead(ctx, p, leadID); err != nil {
		return nil, err
	}

	notes, err := s.Notes.ListByLead(ctx, leadID)
	if err != nil {
		return nil, storeError("list notes", err)
	}
	return notes, nil
}

func (s *NoteService) Delete(ctx context.Context, p entity.Principal, id string) error {
	note, err := s.Notes.FindByID(ctx, id)
	if err != nil {
		return storeError("get note", err)
	}
	if !p.IsAdmin && note.AgentID != p.UserID {
		return forbidden("only the author or an admin can delete a note")
	}

	if err := s.Notes.Delete(ctx, id); err != nil {
		return storeError("delete note", err)
	}
	return nil
}

func (s *NoteService) accessibleLead(ctx context.Context, p entity.Principal, leadID string) (*entity.Lead, error) {
	lead, err := s.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, storeError("get lead", err)
	}
	if !p.CanAccessLead(lead) {
		return nil, forbidden("lead is not assigned to you")
	}
	return lead, nil
}
