package address

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const hardenedOffset uint32 = 0x80000000

// parseBIP44Path parses a derivation path string into indices
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
func parseBIP44Path(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, errors.Wrapf(ErrInvalidPath, "%q", path)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPath, "segment %q of %q", part, path)
		}

		value := uint32(index)
		if hardened {
			value += hardenedOffset
		}

		indices = append(indices, value)
	}

	return indices, nil
}
