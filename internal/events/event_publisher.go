package events

import (
	"context"
	"sync"
	"time"

	"storefront-service/internal/config"

	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
	Close() error
}

// Shopping cart domain events

type CartCreatedEvent struct {
	CartID     int64     `json:"cart_id"`
	CustomerID int64     `json:"customer_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type CartItemAddedEvent struct {
	CartID      int64     `json:"cart_id"`
	CustomerID  int64     `json:"customer_id"`
	ProductID   int64     `json:"product_id"`
	Quantity    int       `json:"quantity"`
	NewQuantity int       `json:"new_quantity"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type CartItemRemovedEvent struct {
	CartID      int64     `json:"cart_id"`
	CustomerID  int64     `json:"customer_id"`
	ProductID   int64     `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Remaining   int       `json:"remaining"`
	CartDeleted bool      `json:"cart_deleted"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type CartDeletedEvent struct {
	CartID     int64     `json:"cart_id"`
	CustomerID int64     `json:"customer_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventType returns the wire name of a known event, or "Unknown"
func EventType(event interface{}) string {
	switch event.(type) {
	case CartCreatedEvent:
		return "CartCreated"
	case CartItemAddedEvent:
		return "CartItemAdded"
	case CartItemRemovedEvent:
		return "CartItemRemoved"
	case CartDeletedEvent:
		return "CartDeleted"
	default:
		return "Unknown"
	}
}

// NewEventPublisher returns a Kafka publisher when enabled and reachable,
// and an in-memory publisher otherwise
func NewEventPublisher(cfg *config.Config, logger *zap.Logger) EventPublisher {
	if !cfg.UseKafka {
		logger.Info("Kafka disabled, using in-memory event publisher")
		return NewInMemoryEventPublisher(logger)
	}

	publisher, err := NewKafkaEventPublisher(cfg, logger)
	if err != nil {
		logger.Warn("Failed to connect to Kafka, using in-memory event publisher",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.Error(err),
		)
		return NewInMemoryEventPublisher(logger)
	}

	logger.Info("Kafka event publisher initialized successfully",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopicCarts),
	)
	return publisher
}

// InMemoryEventPublisher records events in process
type InMemoryEventPublisher struct {
	logger *zap.Logger
	mu     sync.Mutex
	events []interface{}
}

func NewInMemoryEventPublisher(logger *zap.Logger) *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		logger: logger,
		events: make([]interface{}, 0),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()

	p.logger.Debug("Event published (in-memory)",
		zap.String("event-type", EventType(event)),
		zap.Any("event", event),
	)
	return nil
}

// Events returns a copy of every event published so far
func (p *InMemoryEventPublisher) Events() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]interface{}, len(p.events))
	copy(out, p.events)
	return out
}

func (p *InMemoryEventPublisher) Close() error {
	return nil
}
