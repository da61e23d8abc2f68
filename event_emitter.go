package eventwrap

import (
	"slices"
	"sync"
	"sync/atomic"
)

// DefaultMaxListeners is the per event listener count above which an EventEmitter warns.
const DefaultMaxListeners = 10

type registration[V any] struct {
	// listener is the handle the caller registered.
	listener *Listener[V]
	// raw is what gets dispatched: listener itself, or a one-shot wrapper around it.
	raw *Listener[V]
}

// EventEmitter is a synchronous, in-process event emitter. It maps events (of type K) to
// ordered lists of listeners receiving data (of type V), and reports every listener
// removal to its removal listeners.
// Listeners are dispatched outside the internal lock, so they may register or remove
// listeners while being called.
type EventEmitter[K comparable, V any] struct {
	listeners        map[K][]*registration[V]
	events           []K
	removalListeners []*RemovalListener[K, V]
	maxListeners     int
	warned           map[K]struct{}
	warnedRemoval    bool
	logger           logger
	lock             sync.RWMutex
}

// NewEventEmitter creates a new EventEmitter and returns a pointer to it.
func NewEventEmitter[K comparable, V any](opts ...Option) *EventEmitter[K, V] {
	o := newOptions(opts)
	return &EventEmitter[K, V]{
		listeners:    make(map[K][]*registration[V]),
		warned:       make(map[K]struct{}),
		maxListeners: o.maxListeners,
		logger:       o.logger.WithField("type", "event_emitter"),
	}
}

// On registers a new listener for the given event.
func (e *EventEmitter[K, V]) On(event K, listener *Listener[V]) {
	e.add(event, listener, false, false)
}

// Once registers a listener which is removed before its first invocation.
func (e *EventEmitter[K, V]) Once(event K, listener *Listener[V]) {
	e.add(event, listener, true, false)
}

// PrependListener registers a listener at the head of the event's listener list.
func (e *EventEmitter[K, V]) PrependListener(event K, listener *Listener[V]) {
	e.add(event, listener, false, true)
}

// PrependOnceListener registers a one-shot listener at the head of the listener list.
func (e *EventEmitter[K, V]) PrependOnceListener(event K, listener *Listener[V]) {
	e.add(event, listener, true, true)
}

func (e *EventEmitter[K, V]) add(event K, listener *Listener[V], once, prepend bool) {
	if !listener.valid() {
		return
	}

	reg := &registration[V]{listener: listener, raw: listener}
	if once {
		reg.raw = e.onceWrapper(event, reg)
	}

	e.lock.Lock()
	regs, found := e.listeners[event]
	if !found {
		e.events = append(e.events, event)
	}
	if prepend {
		regs = slices.Insert(regs, 0, reg)
	} else {
		regs = append(regs, reg)
	}
	e.listeners[event] = regs

	count := len(regs)
	warn := false
	if _, warned := e.warned[event]; !warned && e.maxListeners > 0 && count > e.maxListeners {
		e.warned[event] = struct{}{}
		warn = true
	}
	e.lock.Unlock()

	if warn {
		e.logger.WithField("event", event).Warnf(
			"possible EventEmitter memory leak detected: %d listeners added, use SetMaxListeners to increase limit",
			count,
		)
	}
}

func (e *EventEmitter[K, V]) onceWrapper(event K, reg *registration[V]) *Listener[V] {
	var fired atomic.Bool
	return NewListener(func(data V) {
		if !fired.CompareAndSwap(false, true) {
			return
		}
		e.remove(event, func(r *registration[V]) bool { return r == reg })
		reg.listener.Call(data)
	})
}

// RemoveListener removes the most recently added occurrence of listener from the event.
// Passing the raw one-shot wrapper returned by RawListeners works too.
func (e *EventEmitter[K, V]) RemoveListener(event K, listener *Listener[V]) {
	if listener == nil {
		return
	}
	e.remove(event, func(r *registration[V]) bool {
		return r.listener == listener || r.raw == listener
	})
}

// remove drops the last registration matching fn and notifies the removal listeners.
func (e *EventEmitter[K, V]) remove(event K, fn func(*registration[V]) bool) bool {
	e.lock.Lock()
	regs := e.listeners[event]
	idx := -1
	for i := len(regs) - 1; i >= 0; i-- {
		if fn(regs[i]) {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.lock.Unlock()
		return false
	}

	reg := regs[idx]
	regs = slices.Delete(regs, idx, idx+1)
	if len(regs) == 0 {
		delete(e.listeners, event)
		delete(e.warned, event)
		e.events = slices.DeleteFunc(e.events, func(k K) bool { return k == event })
	} else {
		e.listeners[event] = regs
	}
	notify := slices.Clone(e.removalListeners)
	e.lock.Unlock()

	for _, rl := range notify {
		rl.Call(event, reg.listener)
	}
	return true
}

// RemoveAllListeners removes every listener of the given events, or of all events when
// called without arguments. Listeners are removed one by one, most recent first, so each
// removal is notified.
func (e *EventEmitter[K, V]) RemoveAllListeners(events ...K) {
	if len(events) == 0 {
		events = e.EventNames()
	}

	for _, event := range events {
		e.lock.RLock()
		regs := slices.Clone(e.listeners[event])
		e.lock.RUnlock()

		for i := len(regs) - 1; i >= 0; i-- {
			reg := regs[i]
			e.remove(event, func(r *registration[V]) bool { return r == reg })
		}
	}
}

// Emit triggers all listeners registered for the given event synchronously, in
// registration order. Listeners added or removed during dispatch only affect later emits.
// It reports whether the event had any listener.
func (e *EventEmitter[K, V]) Emit(event K, data V) bool {
	e.lock.RLock()
	regs := slices.Clone(e.listeners[event])
	e.lock.RUnlock()

	if len(regs) == 0 {
		return false
	}

	for _, reg := range regs {
		reg.raw.Call(data)
	}
	return true
}

func (e *EventEmitter[K, V]) Listeners(event K) []*Listener[V] {
	e.lock.RLock()
	defer e.lock.RUnlock()

	regs := e.listeners[event]
	out := make([]*Listener[V], 0, len(regs))
	for _, reg := range regs {
		out = append(out, reg.listener)
	}
	return out
}

func (e *EventEmitter[K, V]) RawListeners(event K) []*Listener[V] {
	e.lock.RLock()
	defer e.lock.RUnlock()

	regs := e.listeners[event]
	out := make([]*Listener[V], 0, len(regs))
	for _, reg := range regs {
		out = append(out, reg.raw)
	}
	return out
}

func (e *EventEmitter[K, V]) ListenerCount(event K) int {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return len(e.listeners[event])
}

func (e *EventEmitter[K, V]) EventNames() []K {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return slices.Clone(e.events)
}

func (e *EventEmitter[K, V]) MaxListeners() int {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return e.maxListeners
}

// SetMaxListeners changes the leak warning threshold. Zero disables it; negative values
// are ignored.
func (e *EventEmitter[K, V]) SetMaxListeners(n int) {
	if n < 0 {
		return
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	e.maxListeners = n
}

// OnRemoveListener subscribes listener to removal notifications. It is called after each
// actual removal with the event and the listener as originally registered.
func (e *EventEmitter[K, V]) OnRemoveListener(listener *RemovalListener[K, V]) {
	if !listener.valid() {
		return
	}

	e.lock.Lock()
	e.removalListeners = append(e.removalListeners, listener)
	count := len(e.removalListeners)
	warn := !e.warnedRemoval && e.maxListeners > 0 && count > e.maxListeners
	if warn {
		e.warnedRemoval = true
	}
	e.lock.Unlock()

	if warn {
		e.logger.Warnf(
			"possible EventEmitter memory leak detected: %d removal listeners added, use SetMaxListeners to increase limit",
			count,
		)
	}
}

// OffRemoveListener removes the most recent subscription of listener. Removing removal
// listeners is not itself notified.
func (e *EventEmitter[K, V]) OffRemoveListener(listener *RemovalListener[K, V]) {
	if listener == nil {
		return
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	for i := len(e.removalListeners) - 1; i >= 0; i-- {
		if e.removalListeners[i] == listener {
			e.removalListeners = slices.Delete(e.removalListeners, i, i+1)
			break
		}
	}
	if len(e.removalListeners) == 0 {
		e.warnedRemoval = false
	}
}

// RemovalListenerCount returns how many removal listeners are subscribed.
func (e *EventEmitter[K, V]) RemovalListenerCount() int {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return len(e.removalListeners)
}
