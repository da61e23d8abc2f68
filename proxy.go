package eventwrap

import (
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Proxy mirrors the API of the Emitter it wraps and keeps track of the listeners that were
// registered through it, so that Listeners, ListenerCount and EventNames only report those.
// Emission is forwarded untouched: emitting through the proxy reaches every listener of the
// event, including the ones registered directly on the emitter.
//
// Bookkeeping follows removals done anywhere: the proxy subscribes to the emitter's removal
// notifications while it tracks at least one listener and unsubscribes as soon as it tracks
// none, so an idle proxy leaves nothing behind on the emitter.
type Proxy[K comparable, V any] struct {
	id       string
	emitter  Emitter[K, V]
	registry *registry[K, V]
	logger   logger

	metaLock sync.Mutex
	attached bool
	onRemove *RemovalListener[K, V]
}

// NewProxy wraps emitter. It fails with ErrInvalidEmitter when emitter is nil.
func NewProxy[K comparable, V any](emitter Emitter[K, V], opts ...Option) (*Proxy[K, V], error) {
	if isNil(emitter) {
		return nil, ErrInvalidEmitter
	}

	o := newOptions(opts)
	id := uuid.NewString()
	p := &Proxy[K, V]{
		id:       id,
		emitter:  emitter,
		registry: newRegistry[K, V](),
		logger:   o.logger.WithField("type", "proxy").WithField("proxy", id),
	}
	p.onRemove = NewRemovalListener(p.handleRemoval)

	return p, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// ID identifies the proxy in log entries.
func (p *Proxy[K, V]) ID() string {
	return p.id
}

// Emitter returns the wrapped emitter.
func (p *Proxy[K, V]) Emitter() Emitter[K, V] {
	return p.emitter
}

// AddListener is an alias for On.
func (p *Proxy[K, V]) AddListener(event K, listener *Listener[V]) error {
	return p.On(event, listener)
}

// On registers listener on the emitter and tracks the registration. Registering the same
// listener twice yields two occurrences, as it does on the emitter.
func (p *Proxy[K, V]) On(event K, listener *Listener[V]) error {
	if !listener.valid() {
		return errors.Wrapf(ErrNilListener, "on %v", event)
	}

	p.track(event, listener)
	p.emitter.On(event, listener)
	return nil
}

// PrependListener is On, with the listener placed at the head of the emitter's list.
func (p *Proxy[K, V]) PrependListener(event K, listener *Listener[V]) error {
	if !listener.valid() {
		return errors.Wrapf(ErrNilListener, "prepend listener %v", event)
	}

	p.track(event, listener)
	p.emitter.PrependListener(event, listener)
	return nil
}

// Once registers a listener that is called at most once. The emitter receives a wrapper
// in its place; Listeners and RemoveListener keep working with listener itself.
func (p *Proxy[K, V]) Once(event K, listener *Listener[V]) error {
	if !listener.valid() {
		return errors.Wrapf(ErrNilListener, "once %v", event)
	}

	wrapper := p.onceWrapper(event, listener)
	p.track(event, wrapper)
	p.emitter.Once(event, wrapper)
	return nil
}

// PrependOnceListener is Once, with the listener placed at the head of the emitter's list.
func (p *Proxy[K, V]) PrependOnceListener(event K, listener *Listener[V]) error {
	if !listener.valid() {
		return errors.Wrapf(ErrNilListener, "prepend once listener %v", event)
	}

	wrapper := p.onceWrapper(event, listener)
	p.track(event, wrapper)
	p.emitter.PrependOnceListener(event, wrapper)
	return nil
}

func (p *Proxy[K, V]) onceWrapper(event K, listener *Listener[V]) *Listener[V] {
	wrapper := &Listener[V]{}
	wrapper.fn = func(data V) {
		// The emitter normally reports the removal before calling us, in which case
		// there is nothing left to drop here.
		if p.registry.recordRemoveOne(event, wrapper) {
			p.syncMeta()
		}
		listener.Call(data)
	}
	p.registry.setAlias(event, listener, wrapper)
	return wrapper
}

// track records the registration and makes sure removals are observed before the emitter
// holds the listener.
func (p *Proxy[K, V]) track(event K, listener *Listener[V]) {
	p.registry.recordAdd(event, listener)
	p.syncMeta()
}

// Off is an alias for RemoveListener.
func (p *Proxy[K, V]) Off(event K, listener *Listener[V]) error {
	return p.RemoveListener(event, listener)
}

// RemoveListener removes one occurrence of listener from the emitter. A listener registered
// with Once is removed through its wrapper. The registry itself is updated by the removal
// notification the emitter sends back, which is how direct removals are handled as well.
func (p *Proxy[K, V]) RemoveListener(event K, listener *Listener[V]) error {
	if listener == nil {
		return errors.Wrapf(ErrNilListener, "remove listener %v", event)
	}

	target := listener
	if wrapper, found := p.registry.aliasFor(event, listener); found {
		target = wrapper
		p.registry.clearAlias(wrapper)
	}

	p.emitter.RemoveListener(event, target)
	p.syncMeta()
	return nil
}

// RemoveAllListeners removes every listener tracked for the given events, or for every
// tracked event when called without arguments. Listeners registered directly on the
// emitter are left alone.
func (p *Proxy[K, V]) RemoveAllListeners(events ...K) {
	if len(events) == 0 {
		events = p.registry.eventNames()
	}

	for _, event := range events {
		// Each removal is fed back into the registry while we iterate, hence the copy.
		for _, listener := range p.registry.snapshot(event) {
			p.emitter.RemoveListener(event, listener)
		}
	}
	p.syncMeta()
}

// Listeners returns the listeners registered through the proxy for event, in the order the
// emitter dispatches them. Once registrations are reported as the caller's listener.
func (p *Proxy[K, V]) Listeners(event K) []*Listener[V] {
	out := p.RawListeners(event)
	for i, l := range out {
		out[i] = p.registry.resolve(l)
	}
	return out
}

// RawListeners is Listeners without unwrapping once registrations.
func (p *Proxy[K, V]) RawListeners(event K) []*Listener[V] {
	tracked := p.registry.multiset(event)
	if len(tracked) == 0 {
		return []*Listener[V]{}
	}

	out := make([]*Listener[V], 0, len(tracked))
	for _, l := range p.emitter.Listeners(event) {
		if tracked[l] > 0 {
			tracked[l]--
			out = append(out, l)
		}
	}
	return out
}

// ListenerCount returns how many listeners Listeners would report for event.
func (p *Proxy[K, V]) ListenerCount(event K) int {
	return len(p.RawListeners(event))
}

// ListenerCountOf returns how many times listener is registered for event through the
// proxy, once registrations included.
func (p *Proxy[K, V]) ListenerCountOf(event K, listener *Listener[V]) int {
	if listener == nil {
		return 0
	}

	n := 0
	for _, l := range p.Listeners(event) {
		if l == listener {
			n++
		}
	}
	return n
}

// EventNames returns the events with at least one listener registered through the proxy.
func (p *Proxy[K, V]) EventNames() []K {
	return p.registry.eventNames()
}

// Emit forwards to the emitter.
func (p *Proxy[K, V]) Emit(event K, data V) bool {
	return p.emitter.Emit(event, data)
}

func (p *Proxy[K, V]) MaxListeners() int {
	return p.emitter.MaxListeners()
}

func (p *Proxy[K, V]) SetMaxListeners(n int) {
	p.emitter.SetMaxListeners(n)
}

func (p *Proxy[K, V]) handleRemoval(event K, listener *Listener[V]) {
	if p.registry.recordRemoveOne(event, listener) {
		p.syncMeta()
	}
}

// syncMeta subscribes to removal notifications while the registry is non-empty and
// unsubscribes once it is empty.
func (p *Proxy[K, V]) syncMeta() {
	p.metaLock.Lock()
	defer p.metaLock.Unlock()

	has := p.registry.hasAny()
	switch {
	case has && !p.attached:
		p.emitter.OnRemoveListener(p.onRemove)
		p.attached = true
		p.logger.Debug("subscribed to removal notifications")
	case !has && p.attached:
		p.emitter.OffRemoveListener(p.onRemove)
		p.attached = false
		p.logger.Debug("unsubscribed from removal notifications")
	}
}
