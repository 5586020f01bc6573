package accounts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/test"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

func prompter(answers ...string) func(string) (string, error) {
	return func(string) (string, error) {
		answer := answers[0]
		answers = answers[1:]
		return answer, nil
	}
}

func TestEncryptEVMKey(t *testing.T) {
	out := filepath.Join(t.TempDir(), "key.json")

	err := encryptCmdFunc("evm", out, true, prompter(test.EVMKey0, "pw", "pw"))
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(keystoreFileMode), info.Mode().Perm())

	store, err := keystore.NewStore(nil)
	require.NoError(t, err)
	require.NoError(t, store.AddKeystore(keystore.ChainFamilyEVM, out, "pw"))
	assert.Equal(t, []string{test.EVMAddress0}, store.Addresses(keystore.ChainFamilyEVM))

	err = store.AddKeystore(keystore.ChainFamilyEVM, out, "wrong")
	require.ErrorIs(t, err, keystore.ErrKeystorePassword)
}

func TestEncryptSolanaKey(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sol.json")

	doc, address, err := encryptKey(keystore.ChainFamilySolana, "["+strings.Repeat("7,", 31)+"7]", "pw", true)
	require.NoError(t, err)
	assert.Equal(t, test.SolanaPublicKey(7).String(), address)
	assert.Empty(t, doc.Address)

	require.NoError(t, writeKeystore(out, doc))

	store, err := keystore.NewStore(nil)
	require.NoError(t, err)
	require.NoError(t, store.AddKeystore(keystore.ChainFamilySolana, out, "pw"))
	assert.Equal(t, []string{address}, store.Addresses(keystore.ChainFamilySolana))
}

func TestEncryptPasswordMismatch(t *testing.T) {
	out := filepath.Join(t.TempDir(), "key.json")

	err := encryptCmdFunc("evm", out, true, prompter(test.EVMKey0, "pw", "other"))
	require.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))

	err = encryptCmdFunc("bitcoin", out, true, prompter())
	require.Error(t, err)
}

