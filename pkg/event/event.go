// Package event is a small in-process event dispatcher. Order lifecycle
// transitions fire events here; listeners push the kitchen feed and enqueue
// receipt jobs without coupling the order service to them.
package event

import "sync"

// Well-known event names.
const (
	OrderCreated  = "order.created"
	OrderPaid     = "order.paid"
	OrderFinished = "order.finished"
	OrderExpired  = "order.expired"
)

// Handler receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches to all listeners concurrently and returns immediately.
func FireAsync(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		go h(payload)
	}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}

// Flush removes all listeners. Tests use this between cases.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
