package eventwrap

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleListener(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	var results []int

	emitter.On("event", NewListener(func(data int) {
		results = append(results, data)
	}))

	assert.True(t, emitter.Emit("event", 42))
	assert.Equal(t, []int{42}, results)
}

func TestMultipleListeners(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	var results []int

	emitter.On("event", NewListener(func(data int) {
		results = append(results, data)
	}))
	emitter.On("event", NewListener(func(data int) {
		results = append(results, data*2)
	}))

	emitter.Emit("event", 10)

	// Dispatch follows registration order.
	assert.Equal(t, []int{10, 20}, results)
}

func TestNoListeners(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	assert.False(t, emitter.Emit("nonexistentEvent", 100))
}

func TestMultipleEvents(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	var event1Result, event2Result int

	emitter.On("event1", NewListener(func(data int) { event1Result = data }))
	emitter.On("event2", NewListener(func(data int) { event2Result = data }))

	emitter.Emit("event1", 5)
	emitter.Emit("event2", 15)

	assert.Equal(t, 5, event1Result)
	assert.Equal(t, 15, event2Result)
	assert.Equal(t, []string{"event1", "event2"}, emitter.EventNames())
}

func TestConcurrent(t *testing.T) {
	emitter := NewEventEmitter[string, int](WithMaxListeners(0))
	var mu sync.Mutex
	var results []int
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			emitter.On("event", NewListener(func(data int) {
				mu.Lock()
				results = append(results, data+i)
				mu.Unlock()
			}))
		}(i)
	}
	wg.Wait()

	for j := 0; j < 10; j++ {
		wg.Add(1)
		go func(j int) {
			defer wg.Done()
			emitter.Emit("event", j)
		}(j)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, results, 100)
}

func TestEventEmitter_PrependListener(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	var order []string

	emitter.On("event", NewListener(func(int) { order = append(order, "on") }))
	emitter.PrependListener("event", NewListener(func(int) { order = append(order, "prepend") }))

	emitter.Emit("event", 0)
	assert.Equal(t, []string{"prepend", "on"}, order)
}

func TestEventEmitter_OnceFiresOnce(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	removals := recordRemovals(t, emitter)
	s := newSpy[int]()

	emitter.Once("event", s.Listener)
	require.Equal(t, []*Listener[int]{s.Listener}, emitter.Listeners("event"))
	raw := emitter.RawListeners("event")
	require.Len(t, raw, 1)
	assert.NotSame(t, s.Listener, raw[0])

	emitter.Emit("event", 1)
	emitter.Emit("event", 2)

	assert.Equal(t, []int{1}, s.calls)
	assert.Zero(t, emitter.ListenerCount("event"))
	assert.Empty(t, emitter.EventNames())
	assert.Equal(t, []removal{{event: "event", listener: s.Listener}}, removals())
}

func TestEventEmitter_OnceReentrantEmit(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	calls := 0

	emitter.Once("event", NewListener(func(int) {
		calls++
		emitter.Emit("event", 0)
	}))

	emitter.Emit("event", 0)
	assert.Equal(t, 1, calls)
}

func TestEventEmitter_PrependOnceListener(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	var order []string

	emitter.On("event", NewListener(func(int) { order = append(order, "on") }))
	emitter.PrependOnceListener("event", NewListener(func(int) { order = append(order, "once") }))

	emitter.Emit("event", 0)
	emitter.Emit("event", 0)
	assert.Equal(t, []string{"once", "on", "on"}, order)
}

func TestEventEmitter_RemoveListenerOneOccurrence(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	removals := recordRemovals(t, emitter)
	s := newSpy[int]()

	emitter.On("event", s.Listener)
	emitter.On("event", s.Listener)
	emitter.RemoveListener("event", s.Listener)

	assert.Equal(t, 1, emitter.ListenerCount("event"))
	emitter.Emit("event", 0)
	assert.Equal(t, 1, s.count())
	assert.Len(t, removals(), 1)

	emitter.RemoveListener("event", s.Listener)
	assert.Empty(t, emitter.EventNames())
	assert.Len(t, removals(), 2)
}

func TestEventEmitter_RemoveUnknownListener(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	removals := recordRemovals(t, emitter)

	emitter.RemoveListener("event", newSpy[int]().Listener)
	emitter.RemoveListener("event", nil)

	assert.Empty(t, removals())
}

func TestEventEmitter_RemoveOnceByRawWrapper(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	removals := recordRemovals(t, emitter)
	s := newSpy[int]()

	emitter.Once("event", s.Listener)
	emitter.RemoveListener("event", emitter.RawListeners("event")[0])

	assert.Zero(t, emitter.ListenerCount("event"))
	assert.Equal(t, []removal{{event: "event", listener: s.Listener}}, removals())
}

func TestEventEmitter_RemoveAllListeners(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	removals := recordRemovals(t, emitter)
	a, b, c := newSpy[int](), newSpy[int](), newSpy[int]()

	emitter.On("x", a.Listener)
	emitter.On("x", b.Listener)
	emitter.On("y", c.Listener)

	emitter.RemoveAllListeners("x")
	assert.Equal(t, []string{"y"}, emitter.EventNames())
	assert.Equal(t, []removal{
		{event: "x", listener: b.Listener},
		{event: "x", listener: a.Listener},
	}, removals())

	emitter.RemoveAllListeners()
	assert.Empty(t, emitter.EventNames())
	assert.Len(t, removals(), 3)
	assert.Equal(t, 1, emitter.RemovalListenerCount())
}

func TestEventEmitter_ListenerMayRemoveItself(t *testing.T) {
	emitter := NewEventEmitter[string, int]()
	calls := 0

	var self *Listener[int]
	self = NewListener(func(int) {
		calls++
		emitter.RemoveListener("event", self)
	})
	emitter.On("event", self)

	emitter.Emit("event", 0)
	emitter.Emit("event", 0)
	assert.Equal(t, 1, calls)
}

func TestEventEmitter_NilListenerIgnored(t *testing.T) {
	emitter := NewEventEmitter[string, int]()

	emitter.On("event", nil)
	emitter.Once("event", NewListener[int](nil))
	emitter.OnRemoveListener(nil)

	assert.Empty(t, emitter.EventNames())
	assert.Zero(t, emitter.RemovalListenerCount())
}

func TestEventEmitter_MaxListenersWarning(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewEventEmitter[string, int](
		WithLogger(NewWriterLogger(&buf, LevelWarn)),
		WithMaxListeners(2),
	)
	assert.Equal(t, 2, emitter.MaxListeners())

	for i := 0; i < 5; i++ {
		emitter.On("event", newSpy[int]().Listener)
	}

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "possible EventEmitter memory leak detected"))
	assert.Contains(t, out, "event=event")
	assert.Contains(t, out, "3 listeners added")
}

func TestEventEmitter_MaxListenersDisabled(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewEventEmitter[string, int](WithLogger(NewWriterLogger(&buf, LevelDebug)))

	emitter.SetMaxListeners(0)
	emitter.SetMaxListeners(-1)
	assert.Zero(t, emitter.MaxListeners())

	for i := 0; i < DefaultMaxListeners+5; i++ {
		emitter.On("event", newSpy[int]().Listener)
	}
	assert.Empty(t, buf.String())
}

func TestEventEmitter_RemovalListenersWarning(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewEventEmitter[string, int](
		WithLogger(NewWriterLogger(&buf, LevelWarn)),
		WithMaxListeners(1),
	)

	first := NewRemovalListener(func(string, *Listener[int]) {})
	emitter.OnRemoveListener(first)
	assert.Empty(t, buf.String())

	emitter.OnRemoveListener(NewRemovalListener(func(string, *Listener[int]) {}))
	assert.Contains(t, buf.String(), "2 removal listeners added")

	emitter.OffRemoveListener(first)
	assert.Equal(t, 1, emitter.RemovalListenerCount())
}
