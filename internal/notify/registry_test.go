package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/openhoa/openhoa/internal/config"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnection struct {
	mu       sync.Mutex
	payloads [][]byte
	failWith error
}

func (c *fakeConnection) Send(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return c.failWith
	}
	c.payloads = append(c.payloads, payload)
	return nil
}

func (c *fakeConnection) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.payloads)
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)
	return NewRegistry(log)
}

func TestRegistryRegisterUnregister(t *testing.T) {
	registry := newTestRegistry(t)
	conn1 := &fakeConnection{}
	conn2 := &fakeConnection{}

	registry.Register("user_1", conn1)
	registry.Register("user_1", conn2)
	assert.Equal(t, 2, registry.ConnectionCount("user_1"))

	registry.Unregister("user_1", conn1)
	assert.Equal(t, 1, registry.ConnectionCount("user_1"))

	// Unregistering twice is harmless
	registry.Unregister("user_1", conn1)
	registry.Unregister("user_1", conn2)
	assert.Equal(t, 0, registry.ConnectionCount("user_1"))
}

func TestRegistryDispatchTargetsOnlyListedUsers(t *testing.T) {
	registry := newTestRegistry(t)
	conn1 := &fakeConnection{}
	conn2 := &fakeConnection{}
	bystander := &fakeConnection{}

	registry.Register("user_1", conn1)
	registry.Register("user_1", conn2)
	registry.Register("user_2", bystander)

	registry.Dispatch(context.Background(), []string{"user_1"}, []byte(`{"title":"hi"}`))

	assert.Equal(t, 1, conn1.received())
	assert.Equal(t, 1, conn2.received())
	assert.Equal(t, 0, bystander.received())
}

func TestRegistryDispatchSwallowsSendErrors(t *testing.T) {
	registry := newTestRegistry(t)
	dead := &fakeConnection{failWith: errors.New("connection reset")}
	live := &fakeConnection{}

	registry.Register("user_1", dead)
	registry.Register("user_1", live)

	// Must not panic or drop the healthy connection
	registry.Dispatch(context.Background(), []string{"user_1"}, []byte("payload"))
	assert.Equal(t, 1, live.received())
}

func TestRegistryDispatchUnknownUserIsNoOp(t *testing.T) {
	registry := newTestRegistry(t)
	registry.Dispatch(context.Background(), []string{"nobody"}, []byte("payload"))
}
