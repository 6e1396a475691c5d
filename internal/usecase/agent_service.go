package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/quotedesk/internal/entity"
)

const statsConcurrency = 8

type AgentService struct {
	Agents    entity.AgentRepository
	Leads     entity.LeadRepository
	Notes     entity.NoteRepository
	Documents entity.DocumentRepository
	Blobs     BlobStore
	Identity  IdentityProvider
}

func NewAgentService(
	agents entity.AgentRepository,
	leads entity.LeadRepository,
	notes entity.NoteRepository,
	documents entity.DocumentRepository,
	blobs BlobStore,
	identity IdentityProvider,
) *AgentService {
	return &AgentService{
		Agents:    agents,
		Leads:     leads,
		Notes:     notes,
		Documents: documents,
		Blobs:     blobs,
		Identity:  identity,
	}
}

// Create is the admin path: the password is optional.
func (s *AgentService) Create(ctx context.Context, p entity.Principal, input CreateAgentInput) (*entity.Agent, error) {
	if !p.IsAdmin {
		return nil, forbidden("only admins can create agents")
	}
	return s.create(ctx, input, false)
}

// Register is agent self-registration and always creates an identity account.
func (s *AgentService) Register(ctx context.Context, input CreateAgentInput) (*entity.Agent, error) {
	input.ID = ""
	return s.create(ctx, input, true)
}

func (s *AgentService) create(ctx context.Context, input CreateAgentInput, requirePassword bool) (*entity.Agent, error) {
	if errs := ValidateAgentInput(input, requirePassword); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	now := time.Now().UTC()
	agent := &entity.Agent{
		ID:                   input.ID,
		FullName:             strings.TrimSpace(input.FullName),
		AgencyName:           strings.TrimSpace(input.AgencyName),
		Email:                strings.TrimSpace(input.Email),
		Phone:                strings.TrimSpace(input.Phone),
		StatesLicensed:       input.StatesLicensed,
		LinesOfInsurance:     input.LinesOfInsurance,
		CustomPackageRequest: input.CustomPackageRequest,
		Notifications:        entity.NotificationPreferences{EmailNewLead: true},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if input.Notifications != nil {
		agent.Notifications = *input.Notifications
	}

	tx := NewTransaction()

	// The identity account comes first and its id becomes the profile id.
	if input.Password != "" {
		tx.AddOperation("create identity account", func(ctx context.Context) error {
			id, err := s.Identity.CreateAccount(ctx, agent.Email, input.Password)
			if err != nil {
				return &TechnicalError{Code: CodeIdentityFailed, Message: "create identity account", Err: err}
			}
			agent.ID = id
			return nil
		})
		tx.AddCompensation("delete identity account", func(ctx context.Context) error {
			return s.Identity.DeleteAccount(ctx, agent.ID)
		})
	} else if agent.ID == "" {
		agent.ID = uuid.New().String()
	}

	tx.AddOperation("insert agent profile", func(ctx context.Context) error {
		if err := agent.Validate(); err != nil {
			return &DomainError{Code: CodeValidationFailed, Message: err.Error()}
		}
		if err := s.Agents.Create(ctx, agent); err != nil {
			return storeError("create agent", err)
		}
		return nil
	})

	if err := tx.Execute(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("agent_id", agent.ID).Msg("agent created")
	return agent, nil
}

func (s *AgentService) Get(ctx context.Context, p entity.Principal, id string) (*entity.Agent, error) {
	if !p.CanManageAgent(id) {
		return nil, forbidden("cannot view another agent's profile")
	}
	agent, err := s.Agents.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("get agent", err)
	}
	return agent, nil
}

// List optionally attaches lead counts to every agent. One count query runs
// per agent, bounded by statsConcurrency.
func (s *AgentService) List(ctx context.Context, p entity.Principal, filter entity.AgentFilter, includeStats bool) ([]entity.Agent, int, error) {
	if !p.IsAdmin {
		return nil, 0, forbidden("only admins can list agents")
	}

	agents, total, err := s.Agents.List(ctx, filter)
	if err != nil {
		return nil, 0, storeError("list agents", err)
	}
	if !includeStats || len(agents) == 0 {
		return agents, total, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statsConcurrency)
	for i := range agents {
		g.Go(func() error {
			stats, err := s.Leads.CountByAgent(gctx, agents[i].ID)
			if err != nil {
				return err
			}
			agents[i].Stats = &stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, storeError("count agent leads", err)
	}

	return agents, total, nil
}

func (s *AgentService) FindByLine(ctx context.Context, line string) ([]entity.Agent, error) {
	if !entity.IsInsuranceType(line) {
		return nil, invalidField("line", "must be one of "+strings.Join(entity.InsuranceTypes, ", "))
	}
	agents, err := s.Agents.FindByLine(ctx, line)
	if err != nil {
		return nil, storeError("find agents by line", err)
	}
	return agents, nil
}

// Update changes the identity email before the profile so the two never
// disagree on the address an agent signs in with.
func (s *AgentService) Update(ctx context.Context, p entity.Principal, id string, input UpdateAgentInput) (*entity.Agent, error) {
	if !p.CanManageAgent(id) {
		return nil, forbidden("cannot edit another agent's profile")
	}
	if errs := ValidateUpdateAgentInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	agent, err := s.Agents.FindByID(ctx, id)
	if err != nil {
		return nil, storeError("get agent", err)
	}

	tx := NewTransaction()

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if previous := agent.Email; !strings.EqualFold(email, previous) {
			tx.AddOperation("update identity email", func(ctx context.Context) error {
				if err := s.Identity.UpdateAccountEmail(ctx, agent.ID, email); err != nil {
					return &TechnicalError{Code: CodeIdentityFailed, Message: "update identity email", Err: err}
				}
				return nil
			})
			tx.AddCompensation("restore identity email", func(ctx context.Context) error {
				return s.Identity.UpdateAccountEmail(ctx, agent.ID, previous)
			})
		}
		agent.Email = email
	}
	if input.FullName != nil {
		agent.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.AgencyName != nil {
		agent.AgencyName = strings.TrimSpace(*input.AgencyName)
	}
	if input.Phone != nil {
		agent.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.StatesLicensed != nil {
		agent.StatesLicensed = *input.StatesLicensed
	}
	if input.LinesOfInsurance != nil {
		agent.LinesOfInsurance = *input.LinesOfInsurance
	}
	if input.CustomPackageRequest != nil {
		agent.CustomPackageRequest = *input.CustomPackageRequest
	}
	if input.Notifications != nil {
		agent.Notifications = *input.Notifications
	}
	agent.UpdatedAt = time.Now().UTC()

	tx.AddOperation("update agent profile", func(ctx context.Context) error {
		if err := s.Agents.Update(ctx, agent); err != nil {
			return storeError("update agent", err)
		}
		return nil
	})

	if err := tx.Execute(ctx); err != nil {
		return nil, err
	}
	return agent, nil
}

// Delete hands the agent's leads to reassignTo (or nobody), removes the
// agent's notes and documents, the profile, and finally the identity account.
// Only the lead handover and the profile delete can fail the call.
func (s *AgentService) Delete(ctx context.Context, p entity.Principal, id string, reassignTo *string) error {
	if !p.IsAdmin {
		return forbidden("only admins can delete agents")
	}

	if _, err := s.Agents.FindByID(ctx, id); err != nil {
		return storeError("get agent", err)
	}
	if reassignTo != nil {
		if *reassignTo == id {
			return invalidField("reassign_to", "cannot reassign leads to the agent being deleted")
		}
		if _, err := s.Agents.FindByID(ctx, *reassignTo); err != nil {
			if entity.IsNotFound(err) {
				return invalidField("reassign_to", "agent does not exist")
			}
			return storeError("check agent", err)
		}
	}

	logger := log.With().Str("agent_id", id).Logger()

	moved, err := s.Leads.ReassignAgentLeads(ctx, id, reassignTo)
	if err != nil {
		return storeError("reassign agent leads", err)
	}
	logger.Info().Int64("leads", moved).Msg("agent leads reassigned")

	if _, err := s.Notes.DeleteByAgent(ctx, id); err != nil {
		logger.Error().Err(err).Msg("delete agent notes")
	}

	docs, err := s.Documents.ListByAgent(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msg("list agent documents")
	}
	if len(docs) > 0 {
		if err := s.Blobs.Delete(ctx, storagePaths(docs)...); err != nil {
			logger.Error().Err(err).Int("documents", len(docs)).Msg("delete agent document files")
		}
	}
	if _, err := s.Documents.DeleteByAgent(ctx, id); err != nil {
		logger.Error().Err(err).Msg("delete agent document rows")
	}

	if err := s.Agents.Delete(ctx, id); err != nil {
		return storeError("delete agent", err)
	}

	if err := s.Identity.DeleteAccount(ctx, id); err != nil {
		logger.Warn().Err(err).Msg("identity account not deleted, profile already removed")
	}

	logger.Info().Msg("agent deleted")
	return nil
}
