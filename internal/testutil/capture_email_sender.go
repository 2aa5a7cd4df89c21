package testutil

import (
	"context"
	"sync"

	"github.com/openhoa/openhoa/internal/email"
)

// CaptureEmailSender is an email.Sender that records sent messages and
// can be told to fail, for exercising graceful-degradation paths.
type CaptureEmailSender struct {
	mu       sync.Mutex
	messages []email.Message

	// FailWith makes every Send return this error until cleared
	FailWith error
}

var _ email.Sender = (*CaptureEmailSender)(nil)

// NewCaptureEmailSender creates a new instance of CaptureEmailSender
func NewCaptureEmailSender() *CaptureEmailSender {
	return &CaptureEmailSender{}
}

func (s *CaptureEmailSender) Send(ctx context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return s.FailWith
	}
	s.messages = append(s.messages, msg)
	return nil
}

// Messages returns the messages sent so far
func (s *CaptureEmailSender) Messages() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]email.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear removes recorded messages and any configured failure
func (s *CaptureEmailSender) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.FailWith = nil
}
