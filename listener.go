package eventwrap

// Listener is a handle around a callback. Listeners are compared by handle, so the same
// *Listener registered twice for an event counts as two occurrences, and removing it
// removes one occurrence at a time.
type Listener[V any] struct {
	fn func(V)
}

// NewListener wraps fn into a handle that can be registered and later removed.
func NewListener[V any](fn func(V)) *Listener[V] {
	return &Listener[V]{fn: fn}
}

// Call invokes the wrapped callback.
func (l *Listener[V]) Call(data V) {
	l.fn(data)
}

func (l *Listener[V]) valid() bool {
	return l != nil && l.fn != nil
}

// RemovalListener receives a notification every time a listener is actually removed from
// an emitter, after the removal took place.
type RemovalListener[K comparable, V any] struct {
	fn func(K, *Listener[V])
}

func NewRemovalListener[K comparable, V any](fn func(event K, listener *Listener[V])) *RemovalListener[K, V] {
	return &RemovalListener[K, V]{fn: fn}
}

func (l *RemovalListener[K, V]) Call(event K, listener *Listener[V]) {
	l.fn(event, listener)
}

func (l *RemovalListener[K, V]) valid() bool {
	return l != nil && l.fn != nil
}
