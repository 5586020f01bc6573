package types

import (
	"github.com/pkg/errors"
)

var (
	ErrMissingMethod  = errors.New("method is required")
	ErrMissingMessage = errors.New("message is required")
	ErrMissingTx      = errors.New("transaction is required")
	ErrNegativeIndex  = errors.New("index must not be negative")
)

// BridgeError is a provider error as delivered over the bridge.
type BridgeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// BridgeErrorResponse carries a provider error in-band, next to HTTP status 200.
type BridgeErrorResponse struct {
	Error BridgeError `json:"error"`
}

func (m *BridgeErrorResponse) Validate() error {
	if m.Error.Message == "" {
		return errors.New("error message is required")
	}

	return nil
}

// BridgeResultResponse carries the result of a successful provider call.
// Result may be null.
type BridgeResultResponse struct {
	Result any `json:"result"`
}

func (m *BridgeResultResponse) Validate() error {
	return nil
}

// AccountInfoResponse lists the accounts of one family, active index first.
type AccountInfoResponse struct {
	CurrentIndex int      `json:"currentIndex"`
	Accounts     []string `json:"accounts"`
	ChainID      string   `json:"chainId,omitempty"`
	Cluster      string   `json:"cluster,omitempty"`
	Connected    bool     `json:"connected"`
}

func (m *AccountInfoResponse) Validate() error {
	if m.CurrentIndex < 0 || m.CurrentIndex >= len(m.Accounts) {
		return errors.Errorf("current index %d out of range of %d accounts", m.CurrentIndex, len(m.Accounts))
	}

	return nil
}

// PostSwitchAccountPayload selects the active account of a family.
type PostSwitchAccountPayload struct {
	Index *int `json:"index"`
}

func (m *PostSwitchAccountPayload) Validate() error {
	if m.Index == nil {
		return errors.New("index is required")
	}
	if *m.Index < 0 {
		return ErrNegativeIndex
	}

	return nil
}
