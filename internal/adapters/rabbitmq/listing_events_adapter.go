package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// publisher - часть rabbitmq_producer.Publisher, нужная адаптеру
type publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// EventValidator проверяет тело события по контракту
type EventValidator func(eventType, eventVersion string, body []byte) error

type ListingEventsAdapter struct {
	producer       publisher
	validate       EventValidator
	publishTimeout time.Duration
}

func NewListingEventsAdapter(producer publisher, validate EventValidator) (*ListingEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if validate == nil {
		validate = contracts.ValidateEvent
	}
	return &ListingEventsAdapter{
		producer:       producer,
		validate:       validate,
		publishTimeout: 10 * time.Second,
	}, nil
}

func routingKeyFor(changeType domain.ListingChangeType) (string, error) {
	switch changeType {
	case domain.ListingCreated:
		return constants.RoutingKeyListingCreated, nil
	case domain.ListingUpdated:
		return constants.RoutingKeyListingUpdated, nil
	case domain.ListingDeleted:
		return constants.RoutingKeyListingDeleted, nil
	default:
		return "", fmt.Errorf("rabbitmq adapter: unknown change type %q", changeType)
	}
}

func (a *ListingEventsAdapter) PublishListingChanged(ctx context.Context, event domain.ListingChangedEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)

	routingKey, err := routingKeyFor(event.ChangeType)
	if err != nil {
		return err
	}

	adapterLogger := logger.WithFields(port.Fields{
		"component":   "ListingEventsAdapter",
		"routing_key": routingKey,
		"listing_id":  event.ListingID,
		"event_id":    event.EventID,
	})

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal event: %w", err)
	}

	if err := a.validate(constants.ListingChangedEventType, constants.ListingChangedEventVersion, body); err != nil {
		adapterLogger.Error("Event does not match its contract", err, nil)
		return fmt.Errorf("rabbitmq adapter: event %s rejected by contract: %w", event.EventID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    event.EventID,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         constants.ListingChangedEventType,
		Headers: amqp.Table{
			"x-event-type":    constants.ListingChangedEventType,
			"x-event-version": constants.ListingChangedEventVersion,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.publishTimeout)
	defer cancel()

	adapterLogger.Debug("Publishing listing event", nil)
	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish listing event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event for listing %s: %w", event.ListingID, err)
	}

	adapterLogger.Info("Listing event published", nil)
	return nil
}
