package lifecycle_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/api/httperrors"
	"github/chapool/go-mock-wallet/internal/test"
)

func TestDeleteWallet(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		accounts := s.Wallet.EVM().AccountInfo().Accounts
		require.Len(t, accounts, 2)

		res := test.PerformRequest(t, s, "DELETE", "/api/v1/wallet", nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)
		assert.True(t, s.Wallet.Destroyed())
		assert.False(t, s.Ready())

		// idempotent
		res = test.PerformRequest(t, s, "DELETE", "/api/v1/wallet", nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/api/v1/evm/accounts", nil, nil)
		test.RequireHTTPError(t, res, httperrors.ErrGoneWalletDestroyed)

		res = test.PerformRequest(t, s, "POST", "/api/v1/solana/accounts/switch", map[string]int{"index": 0}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrGoneWalletDestroyed)

		_, err := s.Wallet.GetSolanaAccountInfo()
		require.Error(t, err)
	})
}

