package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cloud.google.com/go/pubsub"
	"github.com/lafayette53/apiserver/config"
	"google.golang.org/api/option"
)

// kindAttribute carries Message.Kind, since Pub/Sub messages have no type
// field of their own.
const kindAttribute = "kind"

// PubSubClient publishes to Pub/Sub topics and pulls from one subscription
// per topic. Missing topics and subscriptions are created on first use.
type PubSubClient struct {
	client *pubsub.Client
	suffix string

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

// NewPubSubClient connects to the configured project.
func NewPubSubClient(ctx context.Context, cfg config.PubSubConfig) (*PubSubClient, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("pubsub: project id is required")
	}

	var opts []option.ClientOption
	if file := strings.TrimSpace(cfg.CredentialsFile); file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}
	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("pubsub: connect: %w", err)
	}
	return &PubSubClient{
		client: client,
		suffix: cfg.SubscriptionSuffix,
		topics: make(map[string]*pubsub.Topic),
	}, nil
}

// Publish sends msg and waits for the server-assigned id.
func (p *PubSubClient) Publish(ctx context.Context, topic string, msg Message) (string, error) {
	t, err := p.topic(ctx, topic)
	if err != nil {
		return "", err
	}
	id, err := t.Publish(ctx, outgoing(msg)).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("pubsub: publish to %s: %w", topic, err)
	}
	return id, nil
}

// Subscribe receives from the topic's subscription until ctx is done.
// Messages whose handler fails are nacked for redelivery.
func (p *PubSubClient) Subscribe(ctx context.Context, topic string, handler Handler) error {
	t, err := p.topic(ctx, topic)
	if err != nil {
		return err
	}
	sub, err := p.subscription(ctx, t)
	if err != nil {
		return err
	}

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		if handler(ctx, incoming(m)) != nil {
			m.Nack()
			return
		}
		m.Ack()
	})
}

// Close flushes buffered publishes before closing the client.
func (p *PubSubClient) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, t := range p.topics {
		t.Stop()
		delete(p.topics, name)
	}
	return p.client.Close()
}

// topic returns a cached handle, creating the topic when it does not exist.
// Handles batch publishes, so one is kept per topic.
func (p *PubSubClient) topic(ctx context.Context, name string) (*pubsub.Topic, error) {
	if err := requireTopic(BackendPubSub, name); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.topics[name]; ok {
		return t, nil
	}

	t := p.client.Topic(name)
	ok, err := t.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("pubsub: lookup topic %s: %w", name, err)
	}
	if !ok {
		if t, err = p.client.CreateTopic(ctx, name); err != nil {
			return nil, fmt.Errorf("pubsub: create topic %s: %w", name, err)
		}
	}
	p.topics[name] = t
	return t, nil
}

func (p *PubSubClient) subscription(ctx context.Context, t *pubsub.Topic) (*pubsub.Subscription, error) {
	name := p.subscriptionName(t.ID())
	sub := p.client.Subscription(name)
	ok, err := sub.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("pubsub: lookup subscription %s: %w", name, err)
	}
	if ok {
		return sub, nil
	}
	sub, err = p.client.CreateSubscription(ctx, name, pubsub.SubscriptionConfig{Topic: t})
	if err != nil {
		return nil, fmt.Errorf("pubsub: create subscription %s: %w", name, err)
	}
	return sub, nil
}

func (p *PubSubClient) subscriptionName(topic string) string {
	return topic + p.suffix
}

func outgoing(msg Message) *pubsub.Message {
	out := &pubsub.Message{Data: msg.Data}
	if msg.Kind != "" {
		out.Attributes = map[string]string{kindAttribute: msg.Kind}
	}
	return out
}

func incoming(m *pubsub.Message) Message {
	return Message{ID: m.ID, Kind: m.Attributes[kindAttribute], Data: m.Data}
}
