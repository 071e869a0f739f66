package mailer

import (
	"context"
	"sync"
)

// MockSender records messages instead of sending them. Used in tests and as
// the default when no provider is configured.
type MockSender struct {
	mu       sync.Mutex
	messages []*Message
	failWith error
}

// NewMockSender creates a mock sender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records the message.
func (s *MockSender) Send(ctx context.Context, msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.messages = append(s.messages, msg)
	return nil
}

// Messages returns a copy of everything sent so far.
func (s *MockSender) Messages() []*Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// FailWith makes subsequent sends return err.
func (s *MockSender) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Reset clears recorded messages and any injected failure.
func (s *MockSender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.failWith = nil
}
