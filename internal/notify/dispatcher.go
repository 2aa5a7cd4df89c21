package notify

import (
	"context"
	"encoding/json"

	"github.com/openhoa/openhoa/internal/config"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/pubsub"
)

// Envelope is the wire form of a live notification published on the
// bus, one per recipient so NotificationID always names the receiver's
// own persisted row
type Envelope struct {
	NotificationID string `json:"notification_id"`
	RecipientID    string `json:"recipient_id"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Level          string `json:"level"`
	Category       string `json:"category,omitempty"`
	Link           string `json:"link,omitempty"`
}

// Dispatcher consumes notification envelopes from the bus and fans them
// out through the connection registry.
type Dispatcher struct {
	pubSub   pubsub.Subscriber
	registry *Registry
	topic    string
	logger   *logger.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(pubSub pubsub.PubSub, registry *Registry, cfg *config.Configuration, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		pubSub:   pubSub,
		registry: registry,
		topic:    cfg.Notification.Topic,
		logger:   logger,
	}
}

// Start subscribes to the notification topic and dispatches until the
// context is canceled.
func (d *Dispatcher) Start(ctx context.Context) error {
	messages, err := d.pubSub.Subscribe(ctx, d.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var envelope Envelope
			if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
				d.logger.Errorw("failed to decode notification envelope",
					"error", err,
					"message_id", msg.UUID,
				)
				msg.Ack()
				continue
			}

			d.registry.Dispatch(ctx, []string{envelope.RecipientID}, msg.Payload)
			msg.Ack()
		}
	}()

	return nil
}
