package testutil

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/openhoa/openhoa/internal/pubsub"
)

// InMemoryPubSub is an in-memory implementation of pubsub.Publisher that
// records published messages per topic for assertions.
type InMemoryPubSub struct {
	mu       sync.Mutex
	messages map[string][]*message.Message
}

var _ pubsub.Publisher = (*InMemoryPubSub)(nil)

// NewInMemoryPubSub creates a new instance of InMemoryPubSub
func NewInMemoryPubSub() *InMemoryPubSub {
	return &InMemoryPubSub{
		messages: make(map[string][]*message.Message),
	}
}

func (p *InMemoryPubSub) Publish(ctx context.Context, topic string, msg *message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages[topic] = append(p.messages[topic], msg)
	return nil
}

func (p *InMemoryPubSub) Close() error {
	return nil
}

// Messages returns the messages published to a topic
func (p *InMemoryPubSub) Messages(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*message.Message, len(p.messages[topic]))
	copy(out, p.messages[topic])
	return out
}

// Clear removes all recorded messages
func (p *InMemoryPubSub) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = make(map[string][]*message.Message)
}
