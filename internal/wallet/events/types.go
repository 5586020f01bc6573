package events

import (
	"encoding/json"
)

// Name is the closed set of provider event names.
type Name string

const (
	Connect         Name = "connect"
	Disconnect      Name = "disconnect"
	AccountsChanged Name = "accountsChanged"
	ChainChanged    Name = "chainChanged"
	Error           Name = "error"
)

// Names lists every event name in emission-table order.
var Names = []Name{Connect, Disconnect, AccountsChanged, ChainChanged, Error}

// CodeDisconnected is the EIP-1193 provider error code carried by disconnect events.
const CodeDisconnected = 4900

// Valid reports whether n is one of Names.
func (n Name) Valid() bool {
	switch n {
	case Connect, Disconnect, AccountsChanged, ChainChanged, Error:
		return true
	default:
		return false
	}
}

func (n Name) String() string {
	return string(n)
}

// Event is a typed event payload.
type Event interface {
	Name() Name
}

// ConnectEvent is emitted when a provider transitions to connected. EVM providers
// set ChainID, Solana providers set PublicKey.
type ConnectEvent struct {
	ChainID   string `json:"chainId,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
}

func (ConnectEvent) Name() Name { return Connect }

// DisconnectEvent carries the EIP-1193 provider error of a disconnect.
type DisconnectEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (DisconnectEvent) Name() Name { return Disconnect }

// AccountsChangedEvent carries the full account list, active account first, or
// an empty list after a disconnect.
type AccountsChangedEvent struct {
	Accounts []string `json:"accounts"`
}

func (AccountsChangedEvent) Name() Name { return AccountsChanged }

// ChainChangedEvent carries the new active chain id.
type ChainChangedEvent struct {
	ChainID string `json:"chainId"`
}

func (ChainChangedEvent) Name() Name { return ChainChanged }

// ErrorEvent reports a handler failure for event Source.
type ErrorEvent struct {
	Source Name
	Err    error
}

func (ErrorEvent) Name() Name { return Error }

func (e ErrorEvent) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}

	return json.Marshal(struct {
		Source  Name   `json:"source"`
		Message string `json:"message"`
	}{e.Source, msg})
}

// Handler receives events. A returned error is re-emitted as an ErrorEvent.
type Handler func(ev Event) error

// ListenerID identifies a registered handler for removal.
type ListenerID uint64

// Envelope is an event tagged with the emitting provider, as delivered to subscribers.
type Envelope struct {
	Source string `json:"source"`
	Event  Name   `json:"event"`
	Data   Event  `json:"data"`
}
