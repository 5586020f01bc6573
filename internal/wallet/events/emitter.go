package events

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultSubscriberBuffer = 64

type listener struct {
	id      ListenerID
	handler Handler
	once    bool
}

type subscriber struct {
	ch    chan Envelope
	names map[Name]struct{}
}

// Emitter is a per-provider observer registry keyed by event name. Emission
// iterates a snapshot, so handlers may add or remove listeners while running.
type Emitter struct {
	source string
	hook   func(Event)

	mu          sync.Mutex
	nextID      ListenerID
	listeners   map[Name][]listener
	subscribers map[*subscriber]struct{}
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithEmitHook registers a function called once for every emitted event,
// before handlers run.
func WithEmitHook(hook func(Event)) Option {
	return func(e *Emitter) {
		e.hook = hook
	}
}

// NewEmitter creates an Emitter. source names the provider ("evm", "solana").
func NewEmitter(source string, opts ...Option) *Emitter {
	e := &Emitter{
		source:      source,
		listeners:   map[Name][]listener{},
		subscribers: map[*subscriber]struct{}{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// On registers handler for name.
func (e *Emitter) On(name Name, handler Handler) ListenerID {
	return e.register(name, handler, false)
}

// Once registers handler for the next emission of name only.
func (e *Emitter) Once(name Name, handler Handler) ListenerID {
	return e.register(name, handler, true)
}

func (e *Emitter) register(name Name, handler Handler, once bool) ListenerID {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	e.listeners[name] = append(e.listeners[name], listener{id: e.nextID, handler: handler, once: once})

	return e.nextID
}

// RemoveListener unregisters a handler. It reports whether the handler was registered.
func (e *Emitter) RemoveListener(name Name, id ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.remove(name, id)
}

func (e *Emitter) remove(name Name, id ListenerID) bool {
	current := e.listeners[name]
	for i, l := range current {
		if l.id != id {
			continue
		}

		next := make([]listener, 0, len(current)-1)
		next = append(next, current[:i]...)
		next = append(next, current[i+1:]...)
		e.listeners[name] = next

		return true
	}

	return false
}

// RemoveAllListeners drops the handlers of the given names, or of every name when
// called without arguments. Subscriptions are closed only by Close.
func (e *Emitter) RemoveAllListeners(names ...Name) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(names) == 0 {
		e.listeners = map[Name][]listener{}
		return
	}

	for _, name := range names {
		delete(e.listeners, name)
	}
}

// ListenerCount returns the number of handlers registered for name.
func (e *Emitter) ListenerCount(name Name) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.listeners[name])
}

// SubscriberCount returns the number of open subscriptions.
func (e *Emitter) SubscriberCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.subscribers)
}

// Emit delivers ev to subscribers, then to every handler registered at the time
// of the call. Handler failures never reach the caller.
func (e *Emitter) Emit(ev Event) {
	name := ev.Name()

	e.mu.Lock()
	snapshot := append([]listener(nil), e.listeners[name]...)
	for _, l := range snapshot {
		if l.once {
			e.remove(name, l.id)
		}
	}
	e.mu.Unlock()

	if e.hook != nil {
		e.hook(ev)
	}

	e.publish(Envelope{Source: e.source, Event: name, Data: ev})

	for _, l := range snapshot {
		err := invoke(l.handler, ev)
		if err == nil {
			continue
		}

		if name == Error {
			log.Error().Err(err).Str("component", "events").Str("source", e.source).Msg("Error handler failed")
			continue
		}

		e.Emit(ErrorEvent{Source: name, Err: err})
	}
}

func (e *Emitter) publish(envelope Envelope) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for s := range e.subscribers {
		if len(s.names) > 0 {
			if _, ok := s.names[envelope.Event]; !ok {
				continue
			}
		}

		select {
		case s.ch <- envelope:
		default:
			log.Warn().Str("component", "events").Str("source", e.source).Str("event", envelope.Event.String()).Msg("Subscriber buffer full, dropping event")
		}
	}
}

func invoke(handler Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rErr, ok := r.(error); ok {
				err = errors.Wrap(rErr, "handler panicked")
				return
			}
			err = errors.Errorf("handler panicked: %v", r)
		}
	}()

	return handler(ev)
}

// Subscribe returns a buffered channel receiving the given events (all events if
// none are named) and a function that ends the subscription. Events are dropped
// when the buffer is full.
func (e *Emitter) Subscribe(buffer int, names ...Name) (<-chan Envelope, func()) {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}

	s := &subscriber{
		ch:    make(chan Envelope, buffer),
		names: map[Name]struct{}{},
	}
	for _, name := range names {
		s.names[name] = struct{}{}
	}

	e.mu.Lock()
	e.subscribers[s] = struct{}{}
	e.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()

			if _, ok := e.subscribers[s]; ok {
				delete(e.subscribers, s)
				close(s.ch)
			}
		})
	}

	return s.ch, cancel
}

// Close drops every handler and ends every subscription.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.listeners = map[Name][]listener{}
	for s := range e.subscribers {
		delete(e.subscribers, s)
		close(s.ch)
	}
}
