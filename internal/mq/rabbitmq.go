package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lafayette53/apiserver/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Notification tokens are compact JWS strings.
const contentType = "application/jwt"

// RabbitMQClient publishes to and consumes from queues on the default
// exchange. Queues are declared on first use.
type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	durable bool
	cleanup bool

	mu       sync.Mutex
	declared map[string]struct{}
}

// NewRabbitMQClient dials the broker and opens one channel.
func NewRabbitMQClient(cfg config.RabbitMQConfig) (*RabbitMQClient, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq: url is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	client := &RabbitMQClient{
		conn:     conn,
		durable:  cfg.QueueDurable,
		cleanup:  cfg.QueueAutoDelete,
		declared: make(map[string]struct{}),
	}
	if client.channel, err = conn.Channel(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	if cfg.PrefetchCount > 0 {
		if err := client.channel.Qos(cfg.PrefetchCount, 0, false); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("rabbitmq: set prefetch: %w", err)
		}
	}
	return client, nil
}

// Publish sends msg to the queue named topic and returns its message id.
func (r *RabbitMQClient) Publish(ctx context.Context, topic string, msg Message) (string, error) {
	if err := r.queue(topic); err != nil {
		return "", err
	}
	out := r.publishing(msg, time.Now())
	if err := r.channel.PublishWithContext(ctx, "", topic, false, false, out); err != nil {
		return "", fmt.Errorf("rabbitmq: publish to %s: %w", topic, err)
	}
	return out.MessageId, nil
}

// Subscribe hands every delivery on the queue to handler until ctx is done.
// A delivery whose handler fails is requeued once and then dropped.
func (r *RabbitMQClient) Subscribe(ctx context.Context, topic string, handler Handler) error {
	if err := r.queue(topic); err != nil {
		return err
	}

	tag := "museum-" + uuid.NewString()
	deliveries, err := r.channel.Consume(topic, tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume %s: %w", topic, err)
	}
	defer func() { _ = r.channel.Cancel(tag, false) }()

	for {
		var d amqp.Delivery
		var open bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, open = <-deliveries:
		}
		if !open {
			return fmt.Errorf("rabbitmq: consumer on %s closed by broker", topic)
		}

		herr := handler(ctx, Message{ID: d.MessageId, Kind: d.Type, Data: d.Body})
		if ack, requeue := settle(herr, d.Redelivered); ack {
			_ = d.Ack(false)
		} else {
			_ = d.Nack(false, requeue)
		}
	}
}

// Close closes the channel, then the connection.
func (r *RabbitMQClient) Close() error {
	var errs []error
	if r.channel != nil {
		errs = append(errs, r.channel.Close())
	}
	if r.conn != nil {
		errs = append(errs, r.conn.Close())
	}
	return errors.Join(errs...)
}

func (r *RabbitMQClient) queue(name string) error {
	if err := requireTopic(BackendRabbitMQ, name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.declared[name]; ok {
		return nil
	}
	if _, err := r.channel.QueueDeclare(name, r.durable, r.cleanup, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: declare %s: %w", name, err)
	}
	r.declared[name] = struct{}{}
	return nil
}

// publishing builds the AMQP message for msg. Messages on durable queues are
// persisted.
func (r *RabbitMQClient) publishing(msg Message, now time.Time) amqp.Publishing {
	id := msg.ID
	if id == "" {
		id = uuid.NewString()
	}
	mode := amqp.Transient
	if r.durable {
		mode = amqp.Persistent
	}
	return amqp.Publishing{
		ContentType:  contentType,
		DeliveryMode: mode,
		MessageId:    id,
		Type:         msg.Kind,
		Timestamp:    now,
		Body:         msg.Data,
	}
}

// settle decides what happens to a delivery once its handler returned.
func settle(handlerErr error, redelivered bool) (ack, requeue bool) {
	if handlerErr == nil {
		return true, false
	}
	return false, !redelivered
}
