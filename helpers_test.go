package eventwrap

import (
	"sync"
	"testing"
)

// spy records the data it was called with.
type spy[V any] struct {
	*Listener[V]

	mu    sync.Mutex
	calls []V
}

func newSpy[V any]() *spy[V] {
	s := &spy[V]{}
	s.Listener = NewListener(func(data V) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.calls = append(s.calls, data)
	})
	return s
}

func (s *spy[V]) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type removal struct {
	event    string
	listener *Listener[int]
}

// recordRemovals subscribes to e's removal notifications and returns what it saw so far.
func recordRemovals(t *testing.T, e *EventEmitter[string, int]) func() []removal {
	var (
		mu   sync.Mutex
		seen []removal
	)
	rl := NewRemovalListener(func(event string, l *Listener[int]) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, removal{event: event, listener: l})
	})
	e.OnRemoveListener(rl)
	t.Cleanup(func() { e.OffRemoveListener(rl) })

	return func() []removal {
		mu.Lock()
		defer mu.Unlock()
		return append([]removal(nil), seen...)
	}
}
