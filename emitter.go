package eventwrap

// Emitter is the capability set a Proxy needs from the emitter it wraps. EventEmitter
// implements it; any other emitter can be wrapped as long as it provides the same
// synchronous semantics.
type Emitter[K comparable, V any] interface {
	// On appends a listener to the event's listener list.
	On(event K, listener *Listener[V])

	// Once appends a listener that is removed right before its first invocation.
	Once(event K, listener *Listener[V])

	// PrependListener inserts a listener at the head of the event's listener list.
	PrependListener(event K, listener *Listener[V])

	// PrependOnceListener inserts a one-shot listener at the head of the listener list.
	PrependOnceListener(event K, listener *Listener[V])

	// RemoveListener removes at most one occurrence of the listener from the event.
	// Every actual removal is reported to the removal listeners.
	RemoveListener(event K, listener *Listener[V])

	// RemoveAllListeners removes the listeners of the given events, or of every event
	// when none is given, reporting each removal.
	RemoveAllListeners(events ...K)

	// Emit calls the event's listeners synchronously, in order, with data. It reports
	// whether the event had listeners.
	Emit(event K, data V) bool

	// Listeners returns a copy of the event's listeners as they were registered.
	Listeners(event K) []*Listener[V]

	// RawListeners returns a copy of the event's listeners including one-shot wrappers.
	RawListeners(event K) []*Listener[V]

	ListenerCount(event K) int

	// EventNames returns the events that currently have listeners.
	EventNames() []K

	MaxListeners() int
	SetMaxListeners(n int)

	// OnRemoveListener subscribes to removal notifications.
	OnRemoveListener(listener *RemovalListener[K, V])

	// OffRemoveListener unsubscribes from removal notifications.
	OffRemoveListener(listener *RemovalListener[K, V])
}
