// Package eventwrap wraps an event emitter in a Proxy that keeps its own record of the
// listeners registered through it.
//
//	events := eventwrap.NewEventEmitter[string, int]()
//	proxy, err := eventwrap.NewProxy[string, int](events)
//	if err != nil {
//		return err
//	}
//
//	onTick := eventwrap.NewListener(func(n int) { fmt.Println("tick", n) })
//	_ = proxy.On("tick", onTick)
//	events.Emit("tick", 1)         // onTick runs, whoever emits
//	_ = proxy.EventNames()         // ["tick"]
//	events.RemoveListener("tick", onTick)
//	_ = proxy.EventNames()         // [], the proxy saw the removal
//
// The proxy listens to the emitter's removal notifications only while it tracks at least
// one listener.
package eventwrap
