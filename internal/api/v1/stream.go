package v1

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	ierr "github.com/openhoa/openhoa/internal/errors"
	"github.com/openhoa/openhoa/internal/logger"
	"github.com/openhoa/openhoa/internal/notify"
	"github.com/openhoa/openhoa/internal/types"
)

// StreamHandler holds the live-notification SSE endpoint
type StreamHandler struct {
	registry *notify.Registry
	log      *logger.Logger
}

func NewStreamHandler(registry *notify.Registry, log *logger.Logger) *StreamHandler {
	return &StreamHandler{registry: registry, log: log}
}

// sseConnection adapts an SSE client to the registry's Connection
// interface. Send never blocks: a full buffer drops the payload, the
// same policy as a dead socket.
type sseConnection struct {
	ch chan []byte
}

func (c *sseConnection) Send(ctx context.Context, payload []byte) error {
	select {
	case c.ch <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ierr.NewError("connection buffer full").Mark(ierr.ErrSystem)
	}
}

// Stream registers the caller for live notifications and streams
// payloads until the client disconnects
func (h *StreamHandler) Stream(c *gin.Context) {
	userID := types.GetUserID(c.Request.Context())

	conn := &sseConnection{ch: make(chan []byte, 16)}
	h.registry.Register(userID, conn)
	defer h.registry.Unregister(userID, conn)

	h.log.Debugw("notification stream opened", "user_id", userID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case payload, ok := <-conn.ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
