package address

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

var ed25519Curve = []byte("ed25519 seed")

// DeriveEd25519 walks a SLIP-0010 ed25519 path and returns the private key and
// chain code of the final node. Every segment must be hardened.
func DeriveEd25519(seed []byte, path string) ([]byte, []byte, error) {
	indices, err := parseBIP44Path(path)
	if err != nil {
		return nil, nil, err
	}

	key, chainCode := slip10Node(ed25519Curve, seed)
	for _, index := range indices {
		if index < hardenedOffset {
			return nil, nil, errors.Wrapf(ErrUnhardenedEd25519, "index %d in %q", index, path)
		}

		data := make([]byte, 0, 1+len(key)+4)
		data = append(data, 0x00)
		data = append(data, key...)
		data = binary.BigEndian.AppendUint32(data, index)

		key, chainCode = slip10Node(chainCode, data)
	}

	return key, chainCode, nil
}

func slip10Node(hmacKey []byte, data []byte) ([]byte, []byte) {
	mac := hmac.New(sha512.New, hmacKey)
	mac.Write(data)
	sum := mac.Sum(nil)

	return sum[:32], sum[32:]
}

func deriveSolanaKey(seed []byte, path string) ([]byte, error) {
	key, _, err := DeriveEd25519(seed, path)
	if err != nil {
		return nil, err
	}

	secret := ed25519.NewKeyFromSeed(key)
	for i := range key {
		key[i] = 0
	}

	return secret, nil
}

func solanaAddress(secret []byte) string {
	return solana.PrivateKey(secret).PublicKey().String()
}
