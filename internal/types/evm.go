package types

import (
	"encoding/json"
)

// PostEVMRequestPayload is an EIP-1193 request({method, params}) call.
type PostEVMRequestPayload struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

func (m *PostEVMRequestPayload) Validate() error {
	if m.Method == "" {
		return ErrMissingMethod
	}

	return nil
}
