// Package rabbitmq publishes order audit events to a topic exchange with
// publisher confirms.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"restaurant/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	routingKeyPrefix = "audit.order."
	confirmBuffer    = 64
)

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type AuditPublisher struct {
	conn     *amqp.Connection
	ch       channel
	acks     <-chan amqp.Confirmation
	exchange string

	mu sync.Mutex
	// published is the delivery tag of the last successful publish. Tags start
	// at 1 on a channel in confirm mode.
	published uint64
}

// Dial connects, declares the durable topic exchange and enables publisher
// confirms.
func Dial(url, exchange string) (*AuditPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, confirmBuffer))

	return &AuditPublisher{conn: conn, ch: ch, acks: acks, exchange: exchange}, nil
}

// NewAuditPublisher wraps an already configured channel. A nil acks channel
// disables waiting for confirms.
func NewAuditPublisher(ch channel, acks <-chan amqp.Confirmation, exchange string) *AuditPublisher {
	return &AuditPublisher{ch: ch, acks: acks, exchange: exchange}
}

func RoutingKey(action ports.AuditAction) string {
	return routingKeyPrefix + strings.ToLower(string(action))
}

type auditMessage struct {
	Action      string         `json:"action"`
	OrderID     string         `json:"orderId"`
	OrderNo     string         `json:"orderNo"`
	RequestedBy string         `json:"requestedBy"`
	OccurredAt  time.Time      `json:"occurredAt"`
	Summary     map[string]any `json:"summary,omitempty"`
}

// Record publishes one persistent message and waits for the broker's ack.
// Publishes are serialized and confirms are matched by delivery tag, so a
// confirm left behind by an abandoned wait is skipped rather than taken as
// this message's.
func (p *AuditPublisher) Record(ctx context.Context, event ports.AuditEvent) error {
	body, err := json.Marshal(auditMessage{
		Action:      string(event.Action),
		OrderID:     event.OrderID.String(),
		OrderNo:     event.OrderNo,
		RequestedBy: event.RequestedBy.String(),
		OccurredAt:  event.OccurredAt,
		Summary:     event.Summary,
	})
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(event.Action), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    event.OrderID.String() + ":" + string(event.Action) + ":" + event.OccurredAt.Format(time.RFC3339Nano),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}); err != nil {
		return err
	}

	p.published++
	if p.acks == nil {
		return nil
	}
	return p.awaitConfirm(ctx, p.published)
}

func (p *AuditPublisher) awaitConfirm(ctx context.Context, tag uint64) error {
	for {
		select {
		case conf, ok := <-p.acks:
			if !ok {
				return errors.New("confirm channel closed")
			}
			if conf.DeliveryTag < tag {
				continue
			}
			if conf.DeliveryTag > tag {
				return fmt.Errorf("confirm for delivery %d arrived while waiting for %d", conf.DeliveryTag, tag)
			}
			if !conf.Ack {
				return errors.New("publish nacked by broker")
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *AuditPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
