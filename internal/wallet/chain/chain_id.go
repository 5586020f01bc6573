package chain

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// NormalizeChainID converts a chain id given as 0x hex string, decimal string or
// number into canonical form: lowercase 0x hex without leading zeros.
func NormalizeChainID(v any) (string, error) {
	var id *big.Int

	switch value := v.(type) {
	case string:
		parsed, err := parseChainIDString(value)
		if err != nil {
			return "", err
		}
		id = parsed
	case json.Number:
		return NormalizeChainID(value.String())
	case float64:
		if value != math.Trunc(value) || value > math.MaxInt64 {
			return "", errors.Wrapf(ErrInvalidChainID, "%v", value)
		}
		id = big.NewInt(int64(value))
	case int:
		id = big.NewInt(int64(value))
	case int64:
		id = big.NewInt(value)
	case uint64:
		id = new(big.Int).SetUint64(value)
	case *big.Int:
		if value == nil {
			return "", errors.Wrap(ErrInvalidChainID, "nil")
		}
		id = new(big.Int).Set(value)
	case *hexutil.Big:
		if value == nil {
			return "", errors.Wrap(ErrInvalidChainID, "nil")
		}
		id = new(big.Int).Set(value.ToInt())
	default:
		return "", errors.Wrapf(ErrInvalidChainID, "unsupported type %T", v)
	}

	if id.Sign() <= 0 {
		return "", errors.Wrapf(ErrInvalidChainID, "%s must be positive", id)
	}

	return hexutil.EncodeBig(id), nil
}

func parseChainIDString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(ErrInvalidChainID, "empty")
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		id, ok := new(big.Int).SetString(s[2:], 16) //nolint:mnd
		if !ok {
			return nil, errors.Wrapf(ErrInvalidChainID, "%q", s)
		}
		return id, nil
	}

	id, ok := new(big.Int).SetString(s, 10) //nolint:mnd
	if !ok {
		return nil, errors.Wrapf(ErrInvalidChainID, "%q", s)
	}

	return id, nil
}

// ChainIDToBig parses a canonical chain id.
func ChainIDToBig(chainID string) (*big.Int, error) {
	return parseChainIDString(chainID)
}

// NetVersion returns the decimal form used by net_version.
func NetVersion(chainID string) (string, error) {
	id, err := parseChainIDString(chainID)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// CAIP2 returns the eip155 namespaced identifier of a chain, e.g. eip155:1.
func CAIP2(chainID string) (string, error) {
	version, err := NetVersion(chainID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("eip155:%s", version), nil
}

// ParseRPCURLs splits a comma separated RPC URL list
func ParseRPCURLs(rpcURL string) []string {
	if rpcURL == "" {
		return nil
	}

	urls := strings.Split(rpcURL, ",")
	result := make([]string, 0, len(urls))

	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url != "" {
			result = append(result, url)
		}
	}

	return result
}
