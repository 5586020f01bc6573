package signer_test

import (
	"crypto/ed25519"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/signer"
)

const (
	hardhatKey0     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	hardhatAddress0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

const mailTypedData = `{
  "types": {
    "EIP712Domain": [
      {"name": "name", "type": "string"},
      {"name": "version", "type": "string"},
      {"name": "chainId", "type": "uint256"},
      {"name": "verifyingContract", "type": "address"}
    ],
    "Person": [
      {"name": "name", "type": "string"},
      {"name": "wallet", "type": "address"}
    ],
    "Mail": [
      {"name": "from", "type": "Person"},
      {"name": "to", "type": "Person"},
      {"name": "contents", "type": "string"}
    ]
  },
  "primaryType": "Mail",
  "domain": {
    "name": "Ether Mail",
    "version": "1",
    "chainId": 1,
    "verifyingContract": "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"
  },
  "message": {
    "from": {"name": "Cow", "wallet": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"},
    "to": {"name": "Bob", "wallet": "0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB"},
    "contents": "Hello, Bob!"
  }
}`

func newStore(t *testing.T, inputs ...keystore.KeyInput) *keystore.Store {
	t.Helper()

	store, err := keystore.NewStore(inputs)
	require.NoError(t, err)
	return store
}

func evmAccount(t *testing.T, key string) *keystore.Account {
	t.Helper()

	store := newStore(t, keystore.KeyInput{Family: keystore.ChainFamilyEVM, PrivateKey: key})
	account, err := store.Get(keystore.ChainFamilyEVM, 0)
	require.NoError(t, err)
	return account
}

func solanaAccount(t *testing.T, seedByte byte) *keystore.Account {
	t.Helper()

	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = seedByte
	}

	store := newStore(t, keystore.KeyInput{Family: keystore.ChainFamilySolana, PrivateKey: seed})
	account, err := store.Get(keystore.ChainFamilySolana, 0)
	require.NoError(t, err)
	return account
}

func TestPersonalSignRecovers(t *testing.T) {
	svc := signer.NewService()
	account := evmAccount(t, hardhatKey0)

	for _, message := range []string{"hello", "", "0x68656c6c6f", "multi\nline ✓"} {
		msg := signer.DecodePersonalMessage(message)

		sig, err := svc.PersonalSign(t.Context(), account, msg)
		require.NoError(t, err)
		require.Len(t, sig, 65)
		assert.Len(t, sig.String(), 132)
		assert.Contains(t, []byte{27, 28}, sig[64])

		recovered, err := signer.RecoverPersonalSign(msg, sig)
		require.NoError(t, err)
		assert.Equal(t, hardhatAddress0, recovered.Hex())
	}
}

func TestDecodePersonalMessage(t *testing.T) {
	assert.Equal(t, []byte("hello"), signer.DecodePersonalMessage("0x68656c6c6f"))
	assert.Equal(t, []byte("hello"), signer.DecodePersonalMessage("hello"))
	assert.Equal(t, []byte("0xzz"), signer.DecodePersonalMessage("0xzz"))
}

func TestPersonalSignDestroyedAccount(t *testing.T) {
	svc := signer.NewService()
	store := newStore(t, keystore.KeyInput{Family: keystore.ChainFamilyEVM, PrivateKey: hardhatKey0})
	account, err := store.Get(keystore.ChainFamilyEVM, 0)
	require.NoError(t, err)

	store.Clear()

	_, err = svc.PersonalSign(t.Context(), account, []byte("hello"))
	assert.True(t, errors.Is(err, keystore.ErrAccountDestroyed))
}

func TestSignTypedDataMail(t *testing.T) {
	svc := signer.NewService()
	cowKey := hexutil.Encode(crypto.Keccak256([]byte("cow")))
	account := evmAccount(t, cowKey)
	assert.Equal(t, "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826", account.Address)

	typedData, err := signer.ParseTypedData([]byte(mailTypedData))
	require.NoError(t, err)

	hash, err := signer.HashTypedData(typedData)
	require.NoError(t, err)
	assert.Equal(t, "0xbe609aee343fb3c4b28e1df9e632fca64fcfaede20f02e86244efddf30957bd2", hexutil.Encode(hash))

	sig, err := svc.SignTypedData(t.Context(), account, []byte(mailTypedData))
	require.NoError(t, err)
	require.Len(t, sig, 65)

	raw := make([]byte, 65)
	copy(raw, sig)
	raw[64] -= 27
	pub, err := crypto.SigToPub(hash, raw)
	require.NoError(t, err)
	assert.Equal(t, account.Address, crypto.PubkeyToAddress(*pub).Hex())
}

func TestSignTypedDataWithoutDomainType(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(mailTypedData), &payload))
	delete(payload["types"].(map[string]any), "EIP712Domain")

	stripped, err := json.Marshal(payload)
	require.NoError(t, err)

	withDomain, err := signer.ParseTypedData([]byte(mailTypedData))
	require.NoError(t, err)
	withoutDomain, err := signer.ParseTypedData(stripped)
	require.NoError(t, err)

	a, err := signer.HashTypedData(withDomain)
	require.NoError(t, err)
	b, err := signer.HashTypedData(withoutDomain)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSignTypedDataInvalid(t *testing.T) {
	svc := signer.NewService()
	account := evmAccount(t, hardhatKey0)

	payloads := map[string]string{
		"not json":          `{"domain":`,
		"missing domain":    `{"types":{"A":[]},"primaryType":"A","message":{}}`,
		"missing message":   `{"types":{"A":[]},"primaryType":"A","domain":{"name":"x"}}`,
		"missing primary":   `{"types":{"A":[]},"domain":{"name":"x"},"message":{}}`,
		"undefined primary": `{"types":{"A":[]},"primaryType":"B","domain":{"name":"x"},"message":{}}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SignTypedData(t.Context(), account, []byte(payload))
			assert.True(t, errors.Is(err, signer.ErrInvalidTypedData), "got %v", err)
		})
	}
}

func TestSignEVMTransaction(t *testing.T) {
	svc := signer.NewService()
	account := evmAccount(t, hardhatKey0)

	to := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	from := common.HexToAddress(hardhatAddress0)
	gas := hexutil.Uint64(30000)
	nonce := hexutil.Uint64(7)

	t.Run("eip1559", func(t *testing.T) {
		res, err := svc.SignEVMTransaction(t.Context(), account, &signer.SignEVMRequest{
			From:                 &from,
			To:                   &to,
			Gas:                  &gas,
			Nonce:                &nonce,
			Value:                (*hexutil.Big)(big.NewInt(1000)),
			MaxFeePerGas:         (*hexutil.Big)(big.NewInt(2_000_000_000)),
			MaxPriorityFeePerGas: (*hexutil.Big)(big.NewInt(1_000_000_000)),
			ChainID:              (*hexutil.Big)(big.NewInt(31337)),
		})
		require.NoError(t, err)

		var tx types.Transaction
		require.NoError(t, tx.UnmarshalBinary(res.Raw))
		assert.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())
		assert.Equal(t, res.Hash, tx.Hash())
		assert.Equal(t, uint64(7), tx.Nonce())
		assert.Equal(t, uint64(30000), tx.Gas())
		assert.Equal(t, &to, tx.To())

		sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(31337)), &tx)
		require.NoError(t, err)
		assert.Equal(t, from, sender)
	})

	t.Run("legacy", func(t *testing.T) {
		res, err := svc.SignEVMTransaction(t.Context(), account, &signer.SignEVMRequest{
			To:       &to,
			GasPrice: (*hexutil.Big)(big.NewInt(1_000_000_000)),
			ChainID:  (*hexutil.Big)(big.NewInt(1)),
		})
		require.NoError(t, err)

		var tx types.Transaction
		require.NoError(t, tx.UnmarshalBinary(res.Raw))
		assert.Equal(t, uint8(types.LegacyTxType), tx.Type())
		assert.Equal(t, uint64(21000), tx.Gas())

		sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1)), &tx)
		require.NoError(t, err)
		assert.Equal(t, from, sender)
	})

	t.Run("wrong from", func(t *testing.T) {
		_, err := svc.SignEVMTransaction(t.Context(), account, &signer.SignEVMRequest{
			From:    &to,
			ChainID: (*hexutil.Big)(big.NewInt(1)),
		})
		assert.True(t, errors.Is(err, signer.ErrInvalidTransaction))
	})

	t.Run("missing chain id", func(t *testing.T) {
		_, err := svc.SignEVMTransaction(t.Context(), account, &signer.SignEVMRequest{To: &to})
		assert.True(t, errors.Is(err, signer.ErrInvalidTransaction))
	})
}

func TestPseudoIdentifiers(t *testing.T) {
	svc := signer.NewService()

	hash, err := svc.PseudoTransactionHash()
	require.NoError(t, err)
	b, err := hexutil.Decode(hash)
	require.NoError(t, err)
	assert.Len(t, b, 32)

	other, err := svc.PseudoTransactionHash()
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)

	sig, err := svc.PseudoSignature()
	require.NoError(t, err)
	raw, err := base58.Decode(sig)
	require.NoError(t, err)
	assert.Len(t, raw, 64)
}

func TestSignSolanaMessage(t *testing.T) {
	svc := signer.NewService()
	account := solanaAccount(t, 7)

	pub, err := account.SolanaPublicKey()
	require.NoError(t, err)

	for _, message := range [][]byte{[]byte("hello"), {}, {0, 1, 2, 255}} {
		sig, err := svc.SignSolanaMessage(t.Context(), account, message)
		require.NoError(t, err)
		assert.True(t, sig.Verify(pub, message))
	}
}

func buildTransfer(t *testing.T, payer solana.PublicKey, extraSigner *solana.PublicKey, versioned bool) *solana.Transaction {
	t.Helper()

	accounts := solana.AccountMetaSlice{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
	}
	if extraSigner != nil {
		accounts = append(accounts, solana.Meta(*extraSigner).WRITE().SIGNER())
	}

	instruction := solana.NewInstruction(solana.MemoProgramID, accounts, []byte("mock wallet"))

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		solana.Hash{1, 2, 3},
		solana.TransactionPayer(payer),
	)
	require.NoError(t, err)

	if versioned {
		tx.Message.SetVersion(solana.MessageVersionV0)
	}

	return tx
}

func TestSignSolanaTransaction(t *testing.T) {
	svc := signer.NewService()
	account := solanaAccount(t, 9)
	pub, err := account.SolanaPublicKey()
	require.NoError(t, err)

	for _, versioned := range []bool{false, true} {
		tx := buildTransfer(t, pub, nil, versioned)
		require.Empty(t, tx.Signatures)

		require.NoError(t, svc.SignSolanaTransaction(t.Context(), account, tx))
		require.Len(t, tx.Signatures, 1)

		content, err := tx.Message.MarshalBinary()
		require.NoError(t, err)
		assert.True(t, tx.Signatures[0].Verify(pub, content))
		assert.Equal(t, versioned, tx.Message.IsVersioned())

		data, err := signer.EncodeTransaction(tx)
		require.NoError(t, err)
		decoded, err := signer.DecodeTransaction(data)
		require.NoError(t, err)
		assert.Equal(t, tx.Signatures, decoded.Signatures)
		assert.Equal(t, versioned, decoded.Message.IsVersioned())
	}
}

func TestSignSolanaTransactionMultipleSigners(t *testing.T) {
	svc := signer.NewService()
	payer := solanaAccount(t, 1)
	cosigner := solanaAccount(t, 2)

	payerKey, err := payer.SolanaPublicKey()
	require.NoError(t, err)
	cosignerKey, err := cosigner.SolanaPublicKey()
	require.NoError(t, err)

	tx := buildTransfer(t, payerKey, &cosignerKey, false)
	require.Equal(t, uint8(2), tx.Message.Header.NumRequiredSignatures)

	require.NoError(t, svc.SignSolanaTransaction(t.Context(), cosigner, tx))
	require.Len(t, tx.Signatures, 2)
	assert.True(t, tx.Signatures[0].IsZero())
	assert.False(t, tx.Signatures[1].IsZero())

	require.NoError(t, svc.SignSolanaTransaction(t.Context(), payer, tx))
	assert.NoError(t, tx.VerifySignatures())
}

func TestSignSolanaTransactionNotASigner(t *testing.T) {
	svc := signer.NewService()
	payer := solanaAccount(t, 1)
	stranger := solanaAccount(t, 3)

	payerKey, err := payer.SolanaPublicKey()
	require.NoError(t, err)

	tx := buildTransfer(t, payerKey, nil, false)

	err = signer.CanSign(stranger, tx)
	assert.True(t, errors.Is(err, signer.ErrSignerNotFound))

	err = svc.SignSolanaTransaction(t.Context(), stranger, tx)
	assert.True(t, errors.Is(err, signer.ErrSignerNotFound))
	assert.Empty(t, tx.Signatures)
}

func TestDecodeTransactionInvalid(t *testing.T) {
	_, err := signer.DecodeTransaction([]byte{1, 2, 3})
	assert.True(t, errors.Is(err, signer.ErrInvalidTransaction))
}
