package solana_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/test"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/wallet/signer"
)

func memoTransaction(t *testing.T, payer solana.PublicKey, versioned bool) []byte {
	t.Helper()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{solana.NewInstruction(solana.MemoProgramID, solana.AccountMetaSlice{solana.Meta(payer).WRITE().SIGNER()}, []byte("memo"))},
		solana.Hash{7},
		solana.TransactionPayer(payer),
	)
	require.NoError(t, err)

	if versioned {
		tx.Message.SetVersion(solana.MessageVersionV0)
	}

	wire, err := signer.EncodeTransaction(tx)
	require.NoError(t, err)

	return wire
}

func connect(t *testing.T, s *api.Server) types.SolanaConnectResult {
	t.Helper()

	res := test.PerformRequest(t, s, "POST", "/api/v1/solana/connect", map[string]any{}, nil)
	var result types.SolanaConnectResult
	test.RequireBridgeResult(t, res, &result)

	return result
}
