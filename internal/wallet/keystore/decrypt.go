package keystore

import (
	gethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/pkg/errors"
)

// DecryptKey decrypts the key material of an Ethereum keystore v3 document.
func DecryptKey(keystoreJSON *KeystoreJSON, password string) ([]byte, error) {
	if keystoreJSON.Version != keystoreVersion {
		return nil, errors.Wrapf(ErrUnsupportedKeystore, "version %d", keystoreJSON.Version)
	}

	plaintext, err := gethkeystore.DecryptDataV3(keystoreJSON.Crypto, password)
	if err != nil {
		if errors.Is(err, gethkeystore.ErrDecrypt) {
			return nil, ErrKeystorePassword
		}
		return nil, errors.Wrap(ErrUnsupportedKeystore, err.Error())
	}

	return plaintext, nil
}
