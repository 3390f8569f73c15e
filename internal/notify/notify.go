// Package notify publishes signed notification events to the message queue
// and verifies them on the consuming side.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lafayette53/apiserver/config"
	"github.com/lafayette53/apiserver/internal/mq"
)

// Event types.
const (
	EventEditProposed  = "edit.proposed"
	EventEditReviewed  = "edit.reviewed"
	EventPasswordReset = "user.password_reset"
)

// Event is a notification addressed to a single user.
type Event struct {
	Type      string            `json:"type"`
	Recipient string            `json:"recipient"`
	Data      map[string]string `json:"data,omitempty"`
}

type claims struct {
	Event
	jwt.RegisteredClaims
}

// Discard drops every event. It is used when no broker is configured.
type Discard struct{}

// Notify implements services.Notifier.
func (Discard) Notify(context.Context, Event) error { return nil }

// Publisher signs events and publishes them on a single channel.
type Publisher struct {
	backend mq.Backend
	channel string
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewPublisher constructs a Publisher from config.
func NewPublisher(backend mq.Backend, cfg config.NotifyConfig) (*Publisher, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("notify secret is required")
	}
	if strings.TrimSpace(cfg.Channel) == "" {
		return nil, errors.New("notify channel is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Publisher{
		backend: backend,
		channel: cfg.Channel,
		secret:  []byte(cfg.Secret),
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

// Notify signs the event and publishes it.
func (p *Publisher) Notify(ctx context.Context, event Event) error {
	token, err := Sign(event, p.secret, p.now(), p.ttl)
	if err != nil {
		return err
	}
	msg := mq.Message{Kind: event.Type, Data: []byte(token)}
	if _, err := p.backend.Publish(ctx, p.channel, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// Sign encodes the event as an HS256 token valid for ttl from now.
func Sign(event Event, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Event: event,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   event.Recipient,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", event.Type, err)
	}
	return signed, nil
}

// Verify decodes a token produced by Sign. It fails on a bad signature or an
// expired token.
func Verify(token string, secret []byte) (Event, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return Event{}, err
	}
	if !parsed.Valid {
		return Event{}, errors.New("invalid token")
	}
	if c.Type == "" {
		return Event{}, errors.New("missing event type")
	}
	return c.Event, nil
}

// Handler processes a verified event.
type Handler func(ctx context.Context, event Event) error

// Consume subscribes to the configured channel and passes verified events to
// handler until ctx is cancelled. Messages that fail verification are
// acknowledged and dropped.
func Consume(ctx context.Context, backend mq.Backend, cfg config.NotifyConfig, onInvalid func(error), handler Handler) error {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		return errors.New("notify secret is required")
	}
	return backend.Subscribe(ctx, cfg.Channel, func(ctx context.Context, msg mq.Message) error {
		event, err := Verify(string(msg.Data), secret)
		if err != nil {
			if onInvalid != nil {
				onInvalid(fmt.Errorf("message %s: %w", msg.ID, err))
			}
			return nil
		}
		return handler(ctx, event)
	})
}
