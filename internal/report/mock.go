package report

import (
	"context"
	"fmt"
	"sync"
)

// MockSender records messages instead of sending them.
type MockSender struct {
	mu          sync.Mutex
	Sent        []Message
	ShouldFail  bool
	FailError   error
	IsPermanent bool
}

// NewMockSender creates a new mock sender.
func NewMockSender() *MockSender {
	return &MockSender{Sent: make([]Message, 0)}
}

func (m *MockSender) Send(_ context.Context, msg Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return "", &SendError{Permanent: m.IsPermanent, Err: m.FailError}
	}
	m.Sent = append(m.Sent, msg)
	return fmt.Sprintf("mock-%d", len(m.Sent)), nil
}

// SetFailure makes subsequent sends fail with err.
func (m *MockSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShouldFail = true
	m.FailError = err
	m.IsPermanent = permanent
}

// Messages returns a copy of the recorded messages.
func (m *MockSender) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.Sent...)
}
