package keystore

import (
	"strings"

	gethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// EncryptKey encrypts raw key material into an Ethereum keystore v3 document.
// address is stored unencrypted as a hint and may be empty.
func EncryptKey(secret []byte, password string, address string, params ScryptParams) (*KeystoreJSON, error) {
	cryptoJSON, err := gethkeystore.EncryptDataV3(secret, []byte(password), params.N, params.P)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt key")
	}

	return &KeystoreJSON{
		Address: trimAddress(address),
		Crypto:  cryptoJSON,
		ID:      uuid.New().String(),
		Version: keystoreVersion,
	}, nil
}

func trimAddress(address string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X"))
}
