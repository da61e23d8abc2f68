package eventwrap

import (
	"github.com/stretchr/testify/mock"
)

type mockEmitter[K comparable, V any] struct {
	mock.Mock
}

func (m *mockEmitter[K, V]) On(event K, listener *Listener[V]) {
	m.Called(event, listener)
}

func (m *mockEmitter[K, V]) Once(event K, listener *Listener[V]) {
	m.Called(event, listener)
}

func (m *mockEmitter[K, V]) PrependListener(event K, listener *Listener[V]) {
	m.Called(event, listener)
}

func (m *mockEmitter[K, V]) PrependOnceListener(event K, listener *Listener[V]) {
	m.Called(event, listener)
}

func (m *mockEmitter[K, V]) RemoveListener(event K, listener *Listener[V]) {
	m.Called(event, listener)
}

func (m *mockEmitter[K, V]) RemoveAllListeners(events ...K) {
	m.Called(events)
}

func (m *mockEmitter[K, V]) Emit(event K, data V) bool {
	args := m.Called(event, data)
	return args.Bool(0)
}

func (m *mockEmitter[K, V]) Listeners(event K) []*Listener[V] {
	args := m.Called(event)
	return args.Get(0).([]*Listener[V])
}

func (m *mockEmitter[K, V]) RawListeners(event K) []*Listener[V] {
	args := m.Called(event)
	return args.Get(0).([]*Listener[V])
}

func (m *mockEmitter[K, V]) ListenerCount(event K) int {
	args := m.Called(event)
	return args.Int(0)
}

func (m *mockEmitter[K, V]) EventNames() []K {
	args := m.Called()
	return args.Get(0).([]K)
}

func (m *mockEmitter[K, V]) MaxListeners() int {
	args := m.Called()
	return args.Int(0)
}

func (m *mockEmitter[K, V]) SetMaxListeners(n int) {
	m.Called(n)
}

func (m *mockEmitter[K, V]) OnRemoveListener(listener *RemovalListener[K, V]) {
	m.Called(listener)
}

func (m *mockEmitter[K, V]) OffRemoveListener(listener *RemovalListener[K, V]) {
	m.Called(listener)
}
