package state

import (
	"sync"

	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

var (
	ErrNotConnected    = errors.New("provider is disconnected")
	ErrIndexOutOfRange = errors.New("account index out of range")
	ErrNoAccounts      = errors.New("no accounts configured")
)

// Status is the connection status of a provider.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnected    Status = "connected"
)

// Machine tracks the connection status and the active account of one chain
// family. The address list is fixed at construction and never empty.
type Machine struct {
	mu        sync.RWMutex
	addresses []string
	current   int
	status    Status
}

// NewMachine creates a disconnected machine with the first account active.
func NewMachine(addresses []string) (*Machine, error) {
	if len(addresses) == 0 {
		return nil, ErrNoAccounts
	}

	return &Machine{
		addresses: append([]string(nil), addresses...),
		status:    StatusDisconnected,
	}, nil
}

// Connect transitions to connected. transitioned is false when already connected.
// ordered is the address list with the active account first.
func (m *Machine) Connect() (bool, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	transitioned := m.status != StatusConnected
	m.status = StatusConnected

	return transitioned, m.ordered()
}

// Disconnect transitions to disconnected and reports whether it was connected.
// Disconnecting twice is allowed.
func (m *Machine) Disconnect() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasConnected := m.status == StatusConnected
	m.status = StatusDisconnected

	return wasConnected
}

// SwitchAccount makes index the active account in either status. changed is false
// when index was already active; ordered and connected describe the state after
// the switch.
func (m *Machine) SwitchAccount(index int) (bool, []string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.addresses) {
		return false, nil, false, errors.Wrapf(ErrIndexOutOfRange, "index %d, %d accounts", index, len(m.addresses))
	}

	changed := m.current != index
	m.current = index

	return changed, m.ordered(), m.status == StatusConnected, nil
}

// Accounts is the accounts view exposed to dApps: empty when disconnected,
// otherwise every address with the active one first.
func (m *Machine) Accounts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.status != StatusConnected {
		return []string{}
	}

	return m.ordered()
}

// RequireConnected returns the active address or ErrNotConnected.
func (m *Machine) RequireConnected() (string, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.status != StatusConnected {
		return "", 0, ErrNotConnected
	}

	return m.addresses[m.current], m.current, nil
}

// Active returns the active address and index regardless of status.
func (m *Machine) Active() (string, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.addresses[m.current], m.current
}

// Connected reports whether the machine is connected.
func (m *Machine) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.status == StatusConnected
}

// Status returns the current status.
func (m *Machine) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.status
}

// Info returns the active index and the addresses in configured order.
func (m *Machine) Info() keystore.AccountInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return keystore.AccountInfo{
		CurrentIndex: m.current,
		Accounts:     append([]string(nil), m.addresses...),
	}
}

// Len returns the number of accounts.
func (m *Machine) Len() int {
	return len(m.addresses)
}

func (m *Machine) ordered() []string {
	out := make([]string, 0, len(m.addresses))
	out = append(out, m.addresses[m.current])
	for i, address := range m.addresses {
		if i != m.current {
			out = append(out, address)
		}
	}

	return out
}
