package discovery

import (
	"sync"
)

// CustomEvent is a DOM CustomEvent: a type and an arbitrary detail.
type CustomEvent struct {
	Type   string
	Detail any
}

// Listener handles a dispatched event.
type Listener func(ev CustomEvent)

type registeredListener struct {
	id       uint64
	listener Listener
}

// Window is an in-memory stand-in for the browser window: an event target plus
// a namespace of global properties. It is safe for concurrent use.
type Window struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[string][]registeredListener
	globals   map[string]any
}

// NewWindow returns an empty window without globals or listeners.
func NewWindow() *Window {
	return &Window{
		listeners: map[string][]registeredListener{},
		globals:   map[string]any{},
	}
}

// AddEventListener registers l for eventType and returns its removal function.
func (w *Window) AddEventListener(eventType string, l Listener) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.nextID++
	id := w.nextID
	w.listeners[eventType] = append(w.listeners[eventType], registeredListener{id: id, listener: l})

	return func() {
		w.removeEventListener(eventType, id)
	}
}

func (w *Window) removeEventListener(eventType string, id uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	listeners := w.listeners[eventType]
	for i, l := range listeners {
		if l.id == id {
			w.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			break
		}
	}

	if len(w.listeners[eventType]) == 0 {
		delete(w.listeners, eventType)
	}
}

// DispatchEvent synchronously invokes the listeners registered for ev.Type at
// the time of the call. Listeners may dispatch further events.
func (w *Window) DispatchEvent(ev CustomEvent) {
	w.mu.Lock()
	snapshot := append([]registeredListener(nil), w.listeners[ev.Type]...)
	w.mu.Unlock()

	for _, l := range snapshot {
		l.listener(ev)
	}
}

// ListenerCount returns the number of listeners for eventType.
func (w *Window) ListenerCount(eventType string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.listeners[eventType])
}

// Get returns the global property name.
func (w *Window) Get(name string) (any, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	v, ok := w.globals[name]
	return v, ok
}

// Set defines the global property name.
func (w *Window) Set(name string, v any) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.globals[name] = v
}

// Delete removes the global property name.
func (w *Window) Delete(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.globals, name)
}
