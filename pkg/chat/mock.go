package chat

import (
	"context"
	"sync"
)

// Mock implements Completer for testing.
// All methods can be customized via function fields.
type Mock struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, echoes the last user message.
	CompleteFunc func(ctx context.Context, messages []Message) (*Reply, error)

	// HealthFunc is called when Health is invoked.
	// If nil, returns nil (healthy).
	HealthFunc func(ctx context.Context) error

	// Tracking
	mu       sync.Mutex
	received [][]Message
}

// NewMock creates a mock that returns the given reply for any conversation.
func NewMock(reply string) *Mock {
	return &Mock{
		CompleteFunc: func(ctx context.Context, messages []Message) (*Reply, error) {
			return &Reply{Text: reply, FinishReason: "stop", LatencyMs: 1}, nil
		},
	}
}

// WithError returns a mock that always fails with the given error.
func WithError(err error) *Mock {
	return &Mock{
		CompleteFunc: func(ctx context.Context, messages []Message) (*Reply, error) {
			return nil, err
		},
		HealthFunc: func(ctx context.Context) error {
			return err
		},
	}
}

// Complete calls CompleteFunc and records the conversation it was given.
func (m *Mock) Complete(ctx context.Context, messages []Message) (*Reply, error) {
	m.mu.Lock()
	snapshot := make([]Message, len(messages))
	copy(snapshot, messages)
	m.received = append(m.received, snapshot)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, messages)
	}

	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return &Reply{Text: messages[i].Content, FinishReason: "stop"}, nil
		}
	}
	return &Reply{FinishReason: "stop"}, nil
}

// Health calls HealthFunc.
func (m *Mock) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close is a no-op.
func (m *Mock) Close() error {
	return nil
}

// Calls returns the number of Complete invocations.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.received)
}

// LastConversation returns the messages from the most recent call, or nil.
func (m *Mock) LastConversation() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.received) == 0 {
		return nil
	}
	return m.received[len(m.received)-1]
}

// Verify Mock implements Completer at compile time.
var _ Completer = (*Mock)(nil)
