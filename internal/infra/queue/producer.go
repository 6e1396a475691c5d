package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/quotedesk/internal/entity"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// LeadEventPublisher sends lead events to the topic exchange, keyed by event type.
type LeadEventPublisher struct {
	Ch publisher
}

func NewLeadEventPublisher(ch publisher) *LeadEventPublisher {
	return &LeadEventPublisher{Ch: ch}
}

func (p *LeadEventPublisher) PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		string(event.Type),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
