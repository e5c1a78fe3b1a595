package notify

import (
	"context"
	"sync"
)

// Sink receives lifecycle events. Implementations must be safe for
// concurrent use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// InMemorySink collects events in order of arrival. Used in tests and as the
// default sink when no broker is configured.
type InMemorySink struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

func (s *InMemorySink) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything appended so far.
func (s *InMemorySink) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
