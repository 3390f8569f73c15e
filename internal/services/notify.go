package services

import (
	"context"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/lafayette53/apiserver/internal/notify"
	"github.com/lafayette53/apiserver/types"
)

// Notifier delivers events to users out of band.
type Notifier interface {
	Notify(ctx context.Context, event notify.Event) error
}

// notifyQuietly sends an event and logs delivery failures. A failed
// notification never fails the request that triggered it.
func notifyQuietly(ctx context.Context, notifier Notifier, logger *log.Logger, event notify.Event) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, event); err != nil && logger != nil {
		logger.Warn("notification not delivered", "type", event.Type, "recipient", event.Recipient, "err", err)
	}
}

func editEvent[T types.Editable](eventType, recipient string, edit types.Edit[T]) notify.Event {
	return notify.Event{
		Type:      eventType,
		Recipient: recipient,
		Data: map[string]string{
			"category": edit.Category(),
			"edit_id":  strconv.Itoa(edit.ID),
			"action":   string(edit.Action),
			"status":   string(edit.Status),
			"museum":   edit.Museum().Name,
			"proposer": edit.Proposer.Username,
		},
	}
}
