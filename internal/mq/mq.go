package mq

import (
	"context"
	"fmt"
	"strings"

	"github.com/lafayette53/apiserver/config"
)

// Message is a payload travelling through a broker. Kind labels the payload
// so it can be routed or filtered without decoding Data.
type Message struct {
	ID   string
	Kind string
	Data []byte
}

// Handler processes a delivered message. A non-nil error asks the broker to
// deliver it again.
type Handler func(ctx context.Context, msg Message) error

// Backend is a point-to-point broker addressed by topic name.
type Backend interface {
	Publish(ctx context.Context, topic string, msg Message) (string, error)
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// Backend names accepted by MQ_BACKEND.
const (
	BackendNone     = "none"
	BackendRabbitMQ = "rabbitmq"
	BackendPubSub   = "pubsub"
)

// Open connects to the broker selected by cfg.MQ.Backend. It returns a nil
// Backend when messaging is disabled.
func Open(ctx context.Context, cfg config.Config) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.MQ.Backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendRabbitMQ:
		return NewRabbitMQClient(cfg.RabbitMQ)
	case BackendPubSub:
		return NewPubSubClient(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.MQ.Backend)
	}
}

func requireTopic(backend, topic string) error {
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("%s: topic is required", backend)
	}
	return nil
}
