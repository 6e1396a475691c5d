package usecase

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/quotedesk/internal/entity"
	"github.com/xavierca1/quotedesk/internal/infra/metrics"
)

type CreateLeadUseCase struct {
	Repo     entity.LeadRepository
	Notifier LeadNotifier
	Assigner LeadAssigner
	Events   EventPublisher
}

func NewCreateLeadUseCase(repo entity.LeadRepository, notifier LeadNotifier, assigner LeadAssigner, events EventPublisher) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Repo:     repo,
		Notifier: notifier,
		Assigner: assigner,
		Events:   events,
	}
}

// Execute persists a quote request, then confirms it to the consumer and
// tries to assign it. Only validation and the insert can fail the call.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	lead, err := entity.NewLead(input.FullName, input.Email, input.Phone, input.ZipCode, input.InsuranceType, input.PrivacyConsent)
	if err != nil {
		return nil, &DomainError{Code: CodeValidationFailed, Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, storeError("create lead", err)
	}

	metrics.RecordLeadCreated(lead.InsuranceType)
	log.Info().Str("lead_id", lead.ID).Str("insurance_type", lead.InsuranceType).Msg("lead created")
	publish(ctx, uc.Events, entity.NewLeadEvent(entity.LeadCreated, lead.ID, ""))

	if _, err := uc.Notifier.SendConsumerConfirmation(ctx, lead); err != nil {
		log.Warn().Err(err).Str("lead_id", lead.ID).Msg("consumer confirmation not sent")
	}

	if uc.Assigner != nil {
		if _, err := uc.Assigner.Execute(ctx, lead); err != nil {
			log.Warn().Err(err).Str("lead_id", lead.ID).Msg("automatic assignment failed")
		}
	}

	return lead, nil
}

func publish(ctx context.Context, events EventPublisher, event entity.LeadEvent) {
	if events == nil {
		return
	}
	if err := events.PublishLeadEvent(ctx, event); err != nil {
		metrics.RecordIntegrationError("amqp")
		log.Warn().Err(err).Str("event", string(event.Type)).Str("lead_id", event.LeadID).Msg("lead event not published")
	}
}
