package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/vrushil-parikh/quickpic/internal/domain"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type orderEvent struct {
	OrderCode  string             `json:"order_code"`
	UserID     string             `json:"user_id"`
	Status     domain.OrderStatus `json:"status"`
	Total      float64            `json:"total"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// Publisher emits order lifecycle events. Delivery is best-effort; callers
// log failures and carry on, the order itself is already durable.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(topic string, brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, EventOrderCreated, order)
}

func (p *Publisher) OrderStatusChanged(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, EventOrderStatusChanged, order)
}

func (p *Publisher) publish(ctx context.Context, eventType string, order *domain.Order) error {
	payload, err := json.Marshal(orderEvent{
		OrderCode:  order.OrderCode,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.OrderCode), // order code for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
