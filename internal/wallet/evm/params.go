package evm

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// decodeParams splits the params array. Absent and null params are empty; a single
// object is treated as a one element array.
func decodeParams(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}

	if trimmed[0] == '{' {
		return []json.RawMessage{trimmed}, nil
	}

	var params []json.RawMessage
	if err := json.Unmarshal(trimmed, &params); err != nil {
		return nil, errors.Wrap(ErrInvalidParams, "params must be an array")
	}

	return params, nil
}

func requireParams(params []json.RawMessage, n int) error {
	if len(params) < n {
		return errors.Wrapf(ErrInvalidParams, "expected at least %d params, got %d", n, len(params))
	}
	return nil
}

func paramString(params []json.RawMessage, i int) (string, error) {
	var s string
	if err := json.Unmarshal(params[i], &s); err != nil {
		return "", errors.Wrapf(ErrInvalidParams, "param %d must be a string", i)
	}
	return s, nil
}

func paramObject(params []json.RawMessage, i int, out any) error {
	if err := json.Unmarshal(params[i], out); err != nil {
		return errors.Wrapf(ErrInvalidParams, "param %d: %s", i, err.Error())
	}
	return nil
}

// paramJSONDocument accepts a JSON document passed either as object or as string.
func paramJSONDocument(params []json.RawMessage, i int) ([]byte, error) {
	trimmed := bytes.TrimSpace(params[i])
	if len(trimmed) > 0 && trimmed[0] == '"' {
		s, err := paramString(params, i)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}

	return trimmed, nil
}

func isAddress(s string) bool {
	return common.IsHexAddress(s) && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"))
}
