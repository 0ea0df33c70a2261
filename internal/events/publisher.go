package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderPaid is emitted once per order when payment is confirmed, either by the
// provider webhook or by status reconciliation. Downstream fulfillment keys on
// the order id, so duplicate emissions for the same order are tolerable.
type OrderPaid struct {
	OrderID       string    `json:"order_id"`
	SessionID     string    `json:"session_id"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
	PaidAt        time.Time `json:"paid_at"`
}

type Publisher interface {
	PublishOrderPaid(ctx context.Context, event OrderPaid) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishOrderPaid(ctx context.Context, event OrderPaid) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func newMessage(event OrderPaid) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal order paid event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(event.OrderID), // order_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("OrderPaid")},
		},
	}, nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPaid(context.Context, OrderPaid) error { return nil }
func (NopPublisher) Close() error                                      { return nil }
