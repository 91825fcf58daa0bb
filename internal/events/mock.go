package events

import "sync"

// Mock is a mock implementation of the Bus interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu        sync.Mutex
	Published []Event
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Publish(evt Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, evt)
	return nil
}

func (m *Mock) Subscribe(types ...Type) (<-chan Event, func(), error) {
	ch := make(chan Event)
	close(ch)
	return ch, func() {}, nil
}

func (m *Mock) Close() error { return nil }

// Reset clears all recorded events.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = nil
}

// ByType returns the recorded events of the given type.
func (m *Mock) ByType(t Type) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, evt := range m.Published {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}
