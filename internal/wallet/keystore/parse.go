package keystore

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"math"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// ParseEVMKey decodes a secp256k1 scalar given as (0x-prefixed) hex string or raw bytes.
func ParseEVMKey(raw any) ([]byte, error) {
	var key []byte

	switch v := raw.(type) {
	case string:
		decoded, err := decodeHex(v)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidKeyFormat, "EVM private keys must be hex encoded")
		}
		key = decoded
	default:
		decoded, ok, err := byteSlice(raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Wrapf(ErrInvalidKeyFormat, "unsupported EVM key type %T", raw)
		}
		key = decoded
	}

	if len(key) != evmKeyLength {
		return nil, errors.Wrapf(ErrInvalidKeyLength, "EVM private key must be %d bytes, got %d", evmKeyLength, len(key))
	}

	return key, nil
}

// ParseSolanaKey decodes an ed25519 key given as base58, hex, a JSON byte array
// string or raw bytes. A 32 byte input is treated as seed, 64 bytes as secret key.
// The returned slice is always the 64 byte secret key.
func ParseSolanaKey(raw any) ([]byte, error) {
	var key []byte

	switch v := raw.(type) {
	case string:
		decoded, err := decodeSolanaString(v)
		if err != nil {
			return nil, err
		}
		key = decoded
	default:
		decoded, ok, err := byteSlice(raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.Wrapf(ErrInvalidKeyFormat, "unsupported Solana key type %T", raw)
		}
		key = decoded
	}

	switch len(key) {
	case solanaSeedLength:
		secret := ed25519.NewKeyFromSeed(key)
		zero(key)
		return secret, nil
	case solanaSecretLength:
		derived := ed25519.NewKeyFromSeed(key[:solanaSeedLength])
		if !bytes.Equal(derived[solanaSeedLength:], key[solanaSeedLength:]) {
			zero(derived)
			return nil, errors.Wrap(ErrInvalidKeyFormat, "Solana secret key does not match its public key")
		}
		zero(derived)
		return key, nil
	default:
		return nil, errors.Wrapf(ErrInvalidKeyLength, "Solana keys must be %d or %d bytes, got %d", solanaSeedLength, solanaSecretLength, len(key))
	}
}

func decodeSolanaString(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "empty key")
	}

	if strings.HasPrefix(s, "[") {
		var values []int
		if err := json.Unmarshal([]byte(s), &values); err != nil {
			return nil, errors.Wrap(ErrInvalidKeyFormat, "malformed JSON byte array")
		}
		out := make([]byte, len(values))
		for i, value := range values {
			if value < 0 || value > math.MaxUint8 {
				return nil, errors.Wrapf(ErrInvalidKeyFormat, "byte %d out of range: %d", i, value)
			}
			out[i] = byte(value)
		}
		return out, nil
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		decoded, err := decodeHex(s)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidKeyFormat, "malformed hex key")
		}
		return decoded, nil
	}

	// 64 and 128 characters never decode to a valid key length as base58.
	if len(s) == 2*solanaSeedLength || len(s) == 2*solanaSecretLength {
		if decoded, err := hex.DecodeString(s); err == nil {
			return decoded, nil
		}
	}

	decoded, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "key is neither base58, hex nor a JSON byte array")
	}

	return decoded, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, errors.New("empty hex string")
	}
	return hex.DecodeString(s)
}

// byteSlice converts the raw array shapes produced by config decoders (toml, json,
// yaml) into bytes.
func byteSlice(raw any) ([]byte, bool, error) {
	switch v := raw.(type) {
	case []byte:
		out := make([]byte, len(v))
		copy(out, v)
		return out, true, nil
	case []int:
		out := make([]byte, len(v))
		for i, n := range v {
			if n < 0 || n > math.MaxUint8 {
				return nil, true, errors.Wrapf(ErrInvalidKeyFormat, "byte %d out of range: %d", i, n)
			}
			out[i] = byte(n)
		}
		return out, true, nil
	case []any:
		out := make([]byte, len(v))
		for i, item := range v {
			n, ok := toInt(item)
			if !ok || n < 0 || n > math.MaxUint8 {
				return nil, true, errors.Wrapf(ErrInvalidKeyFormat, "byte %d is not a valid byte value: %v", i, item)
			}
			out[i] = byte(n)
		}
		return out, true, nil
	default:
		return nil, false, nil
	}
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
