package discovery

import (
	"sync"

	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/sol"
)

const (
	EventRegisterWallet = "wallet-standard:register-wallet"
	EventAppReady       = "wallet-standard:app-ready"

	RegistryEventRegister   = "register"
	RegistryEventUnregister = "unregister"
)

var ErrUnsupportedRegistryEvent = errors.New("unsupported registry event")

// RegisterFunc registers wallets with an app and returns the unregister function.
type RegisterFunc func(wallets ...*sol.Standard) func()

// RegistryListener observes wallets being registered or unregistered.
type RegistryListener func(wallets ...*sol.Standard)

type registryListener struct {
	id       uint64
	listener RegistryListener
}

// Registry is the app side of the Wallet Standard: the wallets registered so far
// plus register/unregister listeners.
type Registry struct {
	mu        sync.Mutex
	wallets   []*sol.Standard
	nextID    uint64
	listeners map[string][]registryListener
}

func NewRegistry() *Registry {
	return &Registry{
		listeners: map[string][]registryListener{},
	}
}

// Register adds wallets that are not registered yet and notifies register
// listeners. The returned function unregisters them again.
func (r *Registry) Register(wallets ...*sol.Standard) func() {
	r.mu.Lock()
	added := make([]*sol.Standard, 0, len(wallets))
	for _, w := range wallets {
		if !r.contains(w) {
			r.wallets = append(r.wallets, w)
			added = append(added, w)
		}
	}
	r.mu.Unlock()

	if len(added) > 0 {
		r.emit(RegistryEventRegister, added)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			r.unregister(added)
		})
	}
}

func (r *Registry) unregister(wallets []*sol.Standard) {
	r.mu.Lock()
	removed := make([]*sol.Standard, 0, len(wallets))
	kept := r.wallets[:0]
	for _, w := range r.wallets {
		if containsWallet(wallets, w) {
			removed = append(removed, w)
			continue
		}
		kept = append(kept, w)
	}
	r.wallets = kept
	r.mu.Unlock()

	if len(removed) > 0 {
		r.emit(RegistryEventUnregister, removed)
	}
}

// Get returns the registered wallets in registration order.
func (r *Registry) Get() []*sol.Standard {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*sol.Standard(nil), r.wallets...)
}

// On registers a listener for "register" or "unregister" and returns its removal function.
func (r *Registry) On(event string, listener RegistryListener) (func(), error) {
	if event != RegistryEventRegister && event != RegistryEventUnregister {
		return nil, errors.Wrapf(ErrUnsupportedRegistryEvent, "%q", event)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.listeners[event] = append(r.listeners[event], registryListener{id: id, listener: listener})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		listeners := r.listeners[event]
		for i, l := range listeners {
			if l.id == id {
				r.listeners[event] = append(listeners[:i:i], listeners[i+1:]...)
				return
			}
		}
	}, nil
}

// Attach connects the registry to w the way a dApp does: it accepts
// register-wallet events and announces app-ready so wallets injected earlier
// register too. The returned function detaches the registry.
func (r *Registry) Attach(w *Window) func() {
	remove := w.AddEventListener(EventRegisterWallet, func(ev CustomEvent) {
		if callback, ok := ev.Detail.(func(RegisterFunc)); ok {
			callback(r.Register)
		}
	})

	w.DispatchEvent(CustomEvent{Type: EventAppReady, Detail: RegisterFunc(r.Register)})

	return remove
}

func (r *Registry) emit(event string, wallets []*sol.Standard) {
	r.mu.Lock()
	snapshot := append([]registryListener(nil), r.listeners[event]...)
	r.mu.Unlock()

	for _, l := range snapshot {
		l.listener(wallets...)
	}
}

func (r *Registry) contains(w *sol.Standard) bool {
	return containsWallet(r.wallets, w)
}

func containsWallet(wallets []*sol.Standard, w *sol.Standard) bool {
	for _, candidate := range wallets {
		if candidate == w {
			return true
		}
	}
	return false
}

// RegisterWallet is the wallet side of the Wallet Standard: it registers std with
// every app already listening and with apps announcing app-ready later. The
// returned function unregisters it everywhere.
func RegisterWallet(w *Window, std *sol.Standard) func() {
	var (
		mu           sync.Mutex
		unregisterFn []func()
	)

	callback := func(register RegisterFunc) {
		unregister := register(std)

		mu.Lock()
		defer mu.Unlock()
		unregisterFn = append(unregisterFn, unregister)
	}

	removeListener := w.AddEventListener(EventAppReady, func(ev CustomEvent) {
		if register, ok := ev.Detail.(RegisterFunc); ok {
			callback(register)
		}
	})

	w.DispatchEvent(CustomEvent{Type: EventRegisterWallet, Detail: callback})

	var once sync.Once
	return func() {
		once.Do(func() {
			removeListener()

			mu.Lock()
			fns := unregisterFn
			unregisterFn = nil
			mu.Unlock()

			for _, fn := range fns {
				fn()
			}
		})
	}
}
