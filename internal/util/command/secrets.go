package command

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/config"
	"golang.org/x/term"
)

// SecretPrompt asks for a secret, e.g. PromptSecret.
type SecretPrompt func(prompt string) (string, error)

// ResolveWalletSecrets asks for the password of every keystore account
// configured without one and for a missing mnemonic phrase.
func ResolveWalletSecrets(wallet *config.Wallet, prompt SecretPrompt) error {
	for i := range wallet.Accounts {
		account := &wallet.Accounts[i]
		if account.Keystore == "" || account.Password != "" {
			continue
		}

		password, err := prompt(fmt.Sprintf("Password for %s account %d: ", account.ChainFamily, i))
		if err != nil {
			return errors.Wrapf(err, "failed to read password for account %d", i)
		}
		account.Password = password
	}

	if wallet.Mnemonic != nil && wallet.Mnemonic.Phrase == "" {
		phrase, err := prompt("Mnemonic phrase: ")
		if err != nil {
			return errors.Wrap(err, "failed to read mnemonic phrase")
		}
		wallet.Mnemonic.Phrase = phrase
	}

	return nil
}

// PromptSecret reads a line from the terminal without echoing it. Without a
// terminal on stdin it returns an empty secret.
func PromptSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit into int

	if !term.IsTerminal(fd) {
		log.Warn().Msg("Stdin is not a terminal, not prompting for secrets")
		return "", nil
	}

	//nolint:forbidigo // Password input requires direct terminal I/O
	fmt.Fprint(os.Stderr, prompt)

	// Read password from terminal (hides input)
	passwordBytes, err := term.ReadPassword(fd)
	if err != nil {
		return "", errors.Wrap(err, "failed to read password from terminal")
	}

	//nolint:forbidigo // Password input requires direct terminal I/O
	fmt.Fprintln(os.Stderr)

	return string(passwordBytes), nil
}
