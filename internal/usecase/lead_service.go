package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/quotedesk/internal/entity"
)

// LeadService is the dashboard side of the lead lifecycle.
type LeadService struct {
	Leads     entity.LeadRepository
	Agents    entity.AgentRepository
	Notes     entity.NoteRepository
	Documents entity.DocumentRepository
	Blobs     BlobStore
	Notifier  LeadNotifier
	Events    EventPublisher
}

func NewLeadService(
	leads entity.LeadRepository,
	agents entity.AgentRepository,
	notes entity.NoteRepository,
	documents entity.DocumentRepository,
	blobs BlobStore,
	notifier LeadNotifier,
	events EventPublisher,
) *LeadService {
	return &LeadService{
		Leads:     leads,
		Agents:    agents,
		Notes:     notes,
		Documents: documents,
		Blobs:     blobs,
		Notifier:  notifier,
		Events:    events,
	}
}

func (s *LeadService) Get(ctx context.Context, p entity.Principal, id string) (*entity.Lead, error) {
	lead, err := s.Leads.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("get lead", err)
	}
	if !p.CanAccessLead(lead) {
		return nil, forbidden("lead is not assigned to you")
	}
	return lead, nil
}

// List scopes non-admin callers to the leads assigned to them.
func (s *LeadService) List(ctx context.Context, p entity.Principal, filter entity.LeadFilter) ([]entity.Lead, int, error) {
	if !p.IsAdmin {
		filter.AssignedTo = p.UserID
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, invalidField("status", "must be new, contacted, follow_up or closed")
	}

	leads, total, err := s.Leads.List(ctx, filter)
	if err != nil {
		return nil, 0, storeError("list leads", err)
	}
	return leads, total, nil
}

func (s *LeadService) Update(ctx context.Context, p entity.Principal, id string, input UpdateLeadInput) (*entity.Lead, error) {
	if errs := ValidateUpdateLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	if input.AssignedTo.Set && !p.IsAdmin {
		return nil, forbidden("only admins can reassign leads")
	}

	lead, err := s.Leads.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("get lead", err)
	}
	if !p.CanAccessLead(lead) {
		return nil, forbidden("lead is not assigned to you")
	}

	if input.AssignedTo.Set && input.AssignedTo.Value != nil {
		if _, err := s.Agents.FindByID(ctx, *input.AssignedTo.Value); err != nil {
			if entity.IsNotFound(err) {
				return nil, invalidField("assigned_to", "agent does not exist")
			}
			return nil, storeError("check agent", err)
		}
	}

	previous := assignee(lead)
	applyLeadPatch(lead, input)

	if err := s.Leads.Update(ctx, lead); err != nil {
		return nil, storeError("update lead", err)
	}

	if current := assignee(lead); current != previous {
		lead.Agent = nil
		s.afterReassign(ctx, lead.ID, current)
	}

	return lead, nil
}

func applyLeadPatch(lead *entity.Lead, input UpdateLeadInput) {
	if input.FullName != nil {
		lead.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Email != nil {
		lead.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		lead.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.ZipCode != nil {
		lead.ZipCode = strings.TrimSpace(*input.ZipCode)
	}
	if input.InsuranceType != nil {
		lead.InsuranceType = *input.InsuranceType
	}
	if input.Contacted != nil {
		lead.Contacted = *input.Contacted
	}
	// Status goes after contacted: a status past new always wins.
	if input.Status != nil {
		lead.ApplyStatus(*input.Status)
	}
	if input.AssignedTo.Set {
		lead.AssignedTo = input.AssignedTo.Value
	}
	lead.UpdatedAt = time.Now().UTC()
}

func assignee(lead *entity.Lead) string {
	if lead.AssignedTo == nil {
		return ""
	}
	return *lead.AssignedTo
}

// afterReassign notifies the new agent. Every change to a non-null agent
// sends a notice, even when the lead already had one.
func (s *LeadService) afterReassign(ctx context.Context, leadID, agentID string) {
	if agentID == "" {
		publish(ctx, s.Events, entity.NewLeadEvent(entity.LeadUnassigned, leadID, ""))
		return
	}
	if _, err := s.Notifier.SendAgentNotice(ctx, leadID, agentID); err != nil {
		log.Warn().Err(err).Str("lead_id", leadID).Str("agent_id", agentID).Msg("agent notice not sent after reassignment")
	}
	publish(ctx, s.Events, entity.NewLeadEvent(entity.LeadAssigned, leadID, agentID))
}

// Delete removes the lead's notes, then its documents (blobs before rows),
// then the lead. Cascade failures are logged and do not stop later steps.
func (s *LeadService) Delete(ctx context.Context, p entity.Principal, id string) error {
	if !p.IsAdmin {
		return forbidden("only admins can delete leads")
	}

	if _, err := s.Leads.FindByID(ctx, id); err != nil {
		return storeError("get lead", err)
	}

	logger := log.With().Str("lead_id", id).Logger()

	if n, err := s.Notes.DeleteByLead(ctx, id); err != nil {
		logger.Error().Err(err).Msg("delete lead notes")
	} else {
		logger.Debug().Int64("notes", n).Msg("lead notes deleted")
	}

	docs, err := s.Documents.ListByLead(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msg("list lead documents")
	}
	if len(docs) > 0 {
		if err := s.Blobs.Delete(ctx, storagePaths(docs)...); err != nil {
			logger.Error().Err(err).Int("documents", len(docs)).Msg("delete lead document files")
		}
	}
	if _, err := s.Documents.DeleteByLead(ctx, id); err != nil {
		logger.Error().Err(err).Msg("delete lead document rows")
	}

	if err := s.Leads.Delete(ctx, id); err != nil {
		return storeError("delete lead", err)
	}

	logger.Info().Msg("lead deleted")
	publish(ctx, s.Events, entity.NewLeadEvent(entity.LeadDeleted, id, ""))
	return nil
}

// BatchAssign applies the single-lead assignment to every id. Failures are
// collected per lead; notification failures are only logged.
func (s *LeadService) BatchAssign(ctx context.Context, p entity.Principal, ids []string, agentID *string) error {
	if !p.IsAdmin {
		return forbidden("only admins can reassign leads")
	}
	if len(ids) == 0 {
		return invalidField("ids", "must contain at least one lead")
	}
	if agentID != nil {
		if _, err := s.Agents.FindByID(ctx, *agentID); err != nil {
			if entity.IsNotFound(err) {
				return invalidField("agent_id", "agent does not exist")
			}
			return storeError("check agent", err)
		}
	}

	target := ""
	if agentID != nil {
		target = *agentID
	}

	var errs []error
	for _, id := range ids {
		lead, err := s.Leads.FindByID(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("lead %s: %w", id, err))
			continue
		}
		previous := assignee(lead)

		if _, err := s.Leads.UpdateAssignment(ctx, id, agentID, false); err != nil {
			errs = append(errs, fmt.Errorf("lead %s: %w", id, err))
			continue
		}
		if previous != target {
			s.afterReassign(ctx, id, target)
		}
	}

	return batchError("batch assign", len(ids), errs)
}

func (s *LeadService) BatchUpdateStatus(ctx context.Context, p entity.Principal, ids []string, status entity.LeadStatus) error {
	if !status.Valid() {
		return invalidField("status", "must be new, contacted, follow_up or closed")
	}
	if len(ids) == 0 {
		return invalidField("ids", "must contain at least one lead")
	}

	var errs []error
	for _, id := range ids {
		lead, err := s.Leads.FindByID(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("lead %s: %w", id, err))
			continue
		}
		if !p.CanAccessLead(lead) {
			errs = append(errs, fmt.Errorf("lead %s: %w", id, forbidden("lead is not assigned to you")))
			continue
		}

		lead.ApplyStatus(status)
		lead.UpdatedAt = time.Now().UTC()
		if err := s.Leads.Update(ctx, lead); err != nil {
			errs = append(errs, fmt.Errorf("lead %s: %w", id, err))
		}
	}

	return batchError("batch status update", len(ids), errs)
}

func batchError(op string, total int, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &TechnicalError{
		Code:    CodePersistenceFailed,
		Message: fmt.Sprintf("%s failed for %d of %d leads", op, len(errs), total),
		Err:     errors.Join(errs...),
	}
}

func storagePaths(docs []entity.Document) []string {
	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		paths = append(paths, d.StoragePath)
	}
	return paths
}
