// Package events announces placed orders to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const EventOrderPlaced = "order.placed"

type Publisher interface {
	OrderPlaced(ctx context.Context, order domain.Order) error
	Close() error
}

// OrderPlacedPayload is the JSON value of an order.placed message.
type OrderPlacedPayload struct {
	OrderID   string      `json:"order_id"`
	Email     string      `json:"email"`
	Status    string      `json:"status"`
	Shipping  string      `json:"shipping_method"`
	Subtotal  string      `json:"subtotal"`
	Tax       string      `json:"tax"`
	Total     string      `json:"total"`
	Items     domain.Cart `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order events behind a circuit breaker so a broker
// outage costs one fast failure per checkout instead of a full write timeout.
type KafkaPublisher struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, logger)
}

func newKafkaPublisher(w messageWriter, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("events")
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "kafka-orders",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return &KafkaPublisher{writer: w, breaker: breaker, logger: logger}
}

func (p *KafkaPublisher) OrderPlaced(ctx context.Context, order domain.Order) error {
	msg, err := orderPlacedMessage(order)
	if err != nil {
		return err
	}
	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.writer.WriteMessages(ctx, msg)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("publish %s skipped: %w", EventOrderPlaced, err)
	}
	if err != nil {
		return fmt.Errorf("publish %s: %w", EventOrderPlaced, err)
	}
	p.logger.Debug("event published", zap.String("type", EventOrderPlaced), zap.String("order_id", order.ID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func orderPlacedMessage(o domain.Order) (kafka.Message, error) {
	items := o.LineItems
	if items == nil {
		items = domain.Cart{}
	}
	value, err := json.Marshal(OrderPlacedPayload{
		OrderID:   o.ID,
		Email:     o.Email,
		Status:    o.Status,
		Shipping:  o.ShippingMethod,
		Subtotal:  o.Subtotal.StringFixed(2),
		Tax:       o.Tax.StringFixed(2),
		Total:     o.Total.StringFixed(2),
		Items:     items,
		CreatedAt: o.CreatedAt,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal order event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(o.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventOrderPlaced)},
		},
	}, nil
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) OrderPlaced(context.Context, domain.Order) error { return nil }
func (Nop) Close() error { return nil }
