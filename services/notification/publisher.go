package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"servicefinder/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	QueueBookingConfirmed = "booking.confirmed"
	QueueServiceChanged   = "service.changed"
)

// EventPublisher publishes domain events to durable RabbitMQ queues.
type EventPublisher struct {
	url  string
	mu   sync.Mutex
	conn *amqp.Connection
}

func NewEventPublisher(url string) *EventPublisher {
	return &EventPublisher{url: url}
}

func (p *EventPublisher) BookingConfirmed(ctx context.Context, b *models.Booking, prov *models.Provider) error {
	return p.publish(ctx, QueueBookingConfirmed, NewBookingConfirmedEvent(b, prov))
}

func (p *EventPublisher) ServiceChanged(ctx context.Context, _ *models.Provider, ev models.ServiceChangedEvent) error {
	return p.publish(ctx, QueueServiceChanged, ev)
}

// Close shuts the underlying connection, if any.
func (p *EventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Close()
}

func (p *EventPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}
	return ch, nil
}

func (p *EventPublisher) publish(ctx context.Context, queue string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event failed: %w", err)
	}

	ch, err := p.channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: queue declare failed: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq: publish to %s failed: %w", queue, err)
	}
	return nil
}
