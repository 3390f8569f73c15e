package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lafayette53/apiserver/config"
	"github.com/lafayette53/apiserver/internal/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBroker delivers published messages to Subscribe synchronously.
type memoryBroker struct {
	mu       sync.Mutex
	messages []mq.Message
	channels []string
}

func (b *memoryBroker) Publish(_ context.Context, channel string, msg mq.Message) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg.ID = string(rune('a' + len(b.messages)))
	b.messages = append(b.messages, msg)
	b.channels = append(b.channels, channel)
	return msg.ID, nil
}

func (b *memoryBroker) Subscribe(ctx context.Context, _ string, handler mq.Handler) error {
	b.mu.Lock()
	messages := append([]mq.Message(nil), b.messages...)
	b.mu.Unlock()
	for _, msg := range messages {
		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (b *memoryBroker) Close() error { return nil }

var testConfig = config.NotifyConfig{Channel: "museum-notifications", Secret: "s3cret", TTL: time.Hour}

func TestSignVerify(t *testing.T) {
	event := Event{Type: EventEditReviewed, Recipient: "renoir", Data: map[string]string{"status": "approved"}}
	now := time.Now()

	token, err := Sign(event, []byte("s3cret"), now, time.Hour)
	require.NoError(t, err)

	got, err := Verify(token, []byte("s3cret"))
	require.NoError(t, err)
	assert.Equal(t, event, got)

	_, err = Verify(token, []byte("other"))
	assert.Error(t, err)

	expired, err := Sign(event, []byte("s3cret"), now.Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = Verify(expired, []byte("s3cret"))
	assert.Error(t, err)
}

func TestNewPublisherRequiresSecret(t *testing.T) {
	_, err := NewPublisher(&memoryBroker{}, config.NotifyConfig{Channel: "c"})
	assert.Error(t, err)
}

func TestPublishAndConsume(t *testing.T) {
	broker := &memoryBroker{}
	publisher, err := NewPublisher(broker, testConfig)
	require.NoError(t, err)

	event := Event{Type: EventEditProposed, Recipient: "monet", Data: map[string]string{"edit_id": "4"}}
	require.NoError(t, publisher.Notify(context.Background(), event))
	_, _ = broker.Publish(context.Background(), testConfig.Channel, mq.Message{Data: []byte("forged")})

	require.Len(t, broker.messages, 2)
	assert.Equal(t, EventEditProposed, broker.messages[0].Kind)
	assert.Equal(t, testConfig.Channel, broker.channels[0])

	var received []Event
	var invalid []error
	err = Consume(context.Background(), broker, testConfig,
		func(err error) { invalid = append(invalid, err) },
		func(_ context.Context, e Event) error {
			received = append(received, e)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []Event{event}, received)
	assert.Len(t, invalid, 1)
}

func TestConsumeHandlerErrorPropagates(t *testing.T) {
	broker := &memoryBroker{}
	publisher, err := NewPublisher(broker, testConfig)
	require.NoError(t, err)
	require.NoError(t, publisher.Notify(context.Background(), Event{Type: EventPasswordReset, Recipient: "monet"}))

	boom := errors.New("boom")
	err = Consume(context.Background(), broker, testConfig, nil, func(context.Context, Event) error { return boom })
	assert.ErrorIs(t, err, boom)
}
