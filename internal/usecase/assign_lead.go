package usecase

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/infra/metrics"
)

// FirstMatchSelector picks the first agent, in persistence order, who writes
// the lead's insurance line. Zip code and agent load are not considered.
type FirstMatchSelector struct {
	Agents entity.AgentRepository
}

func NewFirstMatchSelector(agents entity.AgentRepository) *FirstMatchSelector {
	return &FirstMatchSelector{Agents: agents}
}

func (s *FirstMatchSelector) Select(ctx context.Context, lead *entity.Lead) (*entity.Agent, error) {
	candidates, err := s.Agents.FindByLine(ctx, lead.InsuranceType)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return &candidates[0], nil
}

type AssignLeadUseCase struct {
	Leads    entity.LeadRepository
	Selector AgentSelector
	Notifier LeadNotifier
	Events   EventPublisher
	// CompareAndSwap only writes the assignment while the lead is still
	// unassigned, so concurrent assigners cannot overwrite each other.
	CompareAndSwap bool
}

func NewAssignLeadUseCase(leads entity.LeadRepository, selector AgentSelector, notifier LeadNotifier, events EventPublisher, compareAndSwap bool) *AssignLeadUseCase {
	return &AssignLeadUseCase{
		Leads:          leads,
		Selector:       selector,
		Notifier:       notifier,
		Events:         events,
		CompareAndSwap: compareAndSwap,
	}
}

// Execute assigns an unassigned lead and notifies the chosen agent. It returns
// the agent, or nil when the lead stays unassigned. A failed notice does not
// undo the assignment.
func (uc *AssignLeadUseCase) Execute(ctx context.Context, lead *entity.Lead) (*entity.Agent, error) {
	if lead.AssignedTo != nil {
		return nil, nil
	}

	agent, err := uc.Selector.Select(ctx, lead)
	if err != nil {
		metrics.RecordAssignment(metrics.AssignmentFailed)
		return nil, storeError("select agent", err)
	}
	if agent == nil {
		metrics.RecordAssignment(metrics.AssignmentUnmatched)
		log.Info().Str("lead_id", lead.ID).Str("insurance_type", lead.InsuranceType).Msg("no agent writes this line, lead left unassigned")
		return nil, nil
	}

	changed, err := uc.Leads.UpdateAssignment(ctx, lead.ID, &agent.ID, uc.CompareAndSwap)
	if err != nil {
		metrics.RecordAssignment(metrics.AssignmentFailed)
		return nil, storeError("record assignment", err)
	}
	if !changed {
		metrics.RecordAssignment(metrics.AssignmentLostRace)
		log.Warn().Str("lead_id", lead.ID).Str("agent_id", agent.ID).Msg("lead was assigned concurrently, keeping existing agent")
		return nil, nil
	}

	lead.AssignedTo = &agent.ID
	lead.Agent = &entity.AgentSummary{FullName: agent.FullName, AgencyName: agent.AgencyName}
	metrics.RecordAssignment(metrics.AssignmentAssigned)
	log.Info().Str("lead_id", lead.ID).Str("agent_id", agent.ID).Msg("lead assigned")

	if _, err := uc.Notifier.SendAgentNotice(ctx, lead.ID, agent.ID); err != nil {
		log.Warn().Err(err).Str("lead_id", lead.ID).Str("agent_id", agent.ID).Msg("agent notice not sent")
	}
	publish(ctx, uc.Events, entity.NewLeadEvent(entity.LeadAssigned, lead.ID, agent.ID))

	return agent, nil
}
