package accounts

import (
	"encoding/json"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-mock-wallet/internal/util/command"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

const (
	familyFlag = "family"
	outFlag    = "out"
	lightFlag  = "light"

	keystoreFileMode = 0o600
)

var ErrPasswordMismatch = errors.New("passwords do not match")

func newEncrypt() *cobra.Command {
	var (
		family string
		out    string
		light  bool
	)

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypts a private key into a v3 keystore file",
		Long: `Reads a private key and a password from the terminal and writes an encrypted
v3 keystore file that can be referenced by the "keystore" field of an account.`,
		Run: func(_ *cobra.Command, _ []string) {
			if err := encryptCmdFunc(family, out, light, command.PromptSecret); err != nil {
				log.Fatal().Err(err).Msg("Failed to encrypt key")
			}
		},
	}

	cmd.Flags().StringVar(&family, familyFlag, "evm", "Chain family of the key (evm or solana)")
	cmd.Flags().StringVarP(&out, outFlag, "o", "keystore.json", "Output file")
	cmd.Flags().BoolVar(&light, lightFlag, false, "Use light scrypt parameters (faster, for test fixtures only)")

	return cmd
}

func encryptCmdFunc(familyName string, out string, light bool, prompt command.SecretPrompt) error {
	family, err := keystore.ParseChainFamily(familyName)
	if err != nil {
		return err
	}

	rawKey, err := prompt("Private key: ")
	if err != nil {
		return err
	}

	password, err := prompt("Password: ")
	if err != nil {
		return err
	}
	confirm, err := prompt("Repeat password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	doc, address, err := encryptKey(family, rawKey, password, light)
	if err != nil {
		return err
	}

	if err := writeKeystore(out, doc); err != nil {
		return err
	}

	log.Info().Str("family", family.String()).Str("address", address).Str("file", out).Msg("Keystore written")

	return nil
}

// encryptKey validates rawKey through a throwaway key store, so the file only
// ever holds keys the wallet accepts.
func encryptKey(family keystore.ChainFamily, rawKey string, password string, light bool) (*keystore.KeystoreJSON, string, error) {
	store, err := keystore.NewStore([]keystore.KeyInput{{Family: family, PrivateKey: rawKey}})
	if err != nil {
		return nil, "", err
	}
	defer store.Clear()

	account, err := store.Get(family, 0)
	if err != nil {
		return nil, "", err
	}

	params := keystore.DefaultScryptParams()
	if light {
		params = keystore.LightScryptParams()
	}

	var (
		secret []byte
		hint   string
	)
	switch family {
	case keystore.ChainFamilySolana:
		key, err := account.SolanaKey()
		if err != nil {
			return nil, "", err
		}
		secret = key
	default:
		key, err := account.ECDSAKey()
		if err != nil {
			return nil, "", err
		}
		secret = crypto.FromECDSA(key)
		hint = account.Address
	}

	doc, err := keystore.EncryptKey(secret, password, hint, params)
	if err != nil {
		return nil, "", err
	}

	return doc, account.Address, nil
}

func writeKeystore(path string, doc *keystore.KeystoreJSON) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode keystore")
	}

	if err := os.WriteFile(path, data, keystoreFileMode); err != nil {
		return errors.Wrap(err, "failed to write keystore file")
	}

	return nil
}
