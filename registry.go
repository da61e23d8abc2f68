package eventwrap

import (
	"slices"
	"sync"
)

type aliasKey[K comparable, V any] struct {
	event    K
	original *Listener[V]
}

// registry is the proxy's own record of the listeners registered through it: a multiset
// of listener handles per event, plus the aliases from a caller's listener to the one-shot
// wrappers registered in its place.
//
// Events whose multiset becomes empty are dropped right away, so hasAny and eventNames
// only ever see live registrations. The registry never calls out while holding its lock.
type registry[K comparable, V any] struct {
	mu        sync.Mutex
	counts    map[K]map[*Listener[V]]int
	events    []K
	aliases   map[aliasKey[K, V]][]*Listener[V]
	originals map[*Listener[V]]aliasKey[K, V]
}

func newRegistry[K comparable, V any]() *registry[K, V] {
	return &registry[K, V]{
		counts:    make(map[K]map[*Listener[V]]int),
		aliases:   make(map[aliasKey[K, V]][]*Listener[V]),
		originals: make(map[*Listener[V]]aliasKey[K, V]),
	}
}

func (r *registry[K, V]) recordAdd(event K, listener *Listener[V]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, found := r.counts[event]
	if !found {
		set = make(map[*Listener[V]]int)
		r.counts[event] = set
		r.events = append(r.events, event)
	}
	set[listener]++
}

// recordRemoveOne drops one occurrence of listener and reports whether anything was
// tracked. Once a one-shot wrapper has no occurrence left its alias goes with it.
func (r *registry[K, V]) recordRemoveOne(event K, listener *Listener[V]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, found := r.counts[event]
	if !found {
		return false
	}
	n, found := set[listener]
	if !found {
		return false
	}

	if n > 1 {
		set[listener] = n - 1
		return true
	}

	delete(set, listener)
	if len(set) == 0 {
		delete(r.counts, event)
		r.events = slices.DeleteFunc(r.events, func(k K) bool { return k == event })
	}
	r.clearAliasLocked(listener)
	return true
}

func (r *registry[K, V]) hasAny() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.counts) > 0
}

func (r *registry[K, V]) count(event K, listener *Listener[V]) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.counts[event][listener]
}

// multiset returns a copy of the occurrence counts tracked for event.
func (r *registry[K, V]) multiset(event K) map[*Listener[V]]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[*Listener[V]]int, len(r.counts[event]))
	for l, n := range r.counts[event] {
		out[l] = n
	}
	return out
}

// snapshot lists every tracked occurrence for event, one entry per occurrence.
func (r *registry[K, V]) snapshot(event K) []*Listener[V] {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Listener[V]
	for l, n := range r.counts[event] {
		for i := 0; i < n; i++ {
			out = append(out, l)
		}
	}
	return out
}

func (r *registry[K, V]) eventNames() []K {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.events)
}

// aliasFor returns the most recently registered live wrapper standing in for original.
func (r *registry[K, V]) aliasFor(event K, original *Listener[V]) (*Listener[V], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wrappers := r.aliases[aliasKey[K, V]{event: event, original: original}]
	if len(wrappers) == 0 {
		return nil, false
	}
	return wrappers[len(wrappers)-1], true
}

func (r *registry[K, V]) setAlias(event K, original, wrapper *Listener[V]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := aliasKey[K, V]{event: event, original: original}
	r.aliases[key] = append(r.aliases[key], wrapper)
	r.originals[wrapper] = key
}

func (r *registry[K, V]) clearAlias(wrapper *Listener[V]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearAliasLocked(wrapper)
}

func (r *registry[K, V]) clearAliasLocked(wrapper *Listener[V]) {
	key, found := r.originals[wrapper]
	if !found {
		return
	}
	delete(r.originals, wrapper)

	wrappers := slices.DeleteFunc(r.aliases[key], func(l *Listener[V]) bool { return l == wrapper })
	if len(wrappers) == 0 {
		delete(r.aliases, key)
	} else {
		r.aliases[key] = wrappers
	}
}

// resolve maps a one-shot wrapper back to the caller's listener. Anything else is
// returned unchanged.
func (r *registry[K, V]) resolve(listener *Listener[V]) *Listener[V] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if key, found := r.originals[listener]; found {
		return key.original
	}
	return listener
}

func (r *registry[K, V]) aliasCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.originals)
}
