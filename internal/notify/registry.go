// Package notify owns the live-connection registry used to push
// notifications to connected clients. The registry is an injected,
// lifetime-scoped service instance; it is never a module-level map.
package notify

import (
	"context"
	"sync"

	"github.com/openhoa/openhoa/internal/logger"
)

// Connection is one live client connection able to receive a payload
type Connection interface {
	Send(ctx context.Context, payload []byte) error
}

// Registry maps user IDs to their set of live connections. All mutations
// are guarded by a single mutex. Dispatch to a dead connection is
// swallowed, never raised.
type Registry struct {
	mu     sync.Mutex
	conns  map[string]map[Connection]struct{}
	logger *logger.Logger
}

// NewRegistry creates a new connection registry
func NewRegistry(logger *logger.Logger) *Registry {
	return &Registry{
		conns:  make(map[string]map[Connection]struct{}),
		logger: logger,
	}
}

// Register adds a connection for a user
func (r *Registry) Register(userID string, conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conns[userID] == nil {
		r.conns[userID] = make(map[Connection]struct{})
	}
	r.conns[userID][conn] = struct{}{}
}

// Unregister removes a connection for a user
func (r *Registry) Unregister(userID string, conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.conns[userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(r.conns, userID)
		}
	}
}

// ConnectionCount returns the number of live connections for a user
func (r *Registry) ConnectionCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns[userID])
}

// Dispatch pushes a payload to every live connection of each user.
// Send failures are logged and swallowed; a disconnected socket must
// never surface as an error to the caller.
func (r *Registry) Dispatch(ctx context.Context, userIDs []string, payload []byte) {
	r.mu.Lock()
	targets := make([]Connection, 0)
	for _, userID := range userIDs {
		for conn := range r.conns[userID] {
			targets = append(targets, conn)
		}
	}
	r.mu.Unlock()

	for _, conn := range targets {
		if err := conn.Send(ctx, payload); err != nil {
			r.logger.Debugw("dropping notification for dead connection", "error", err)
		}
	}
}
