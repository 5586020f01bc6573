package evm

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
)

// GetAccountsRoute lists all EVM accounts in configured order, independent of
// the connection state.
func GetAccountsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1EVM.GET("/accounts", getAccountsHandler(s))
}

func getAccountsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		provider, err := s.Wallet.RequireEVM()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		info := provider.AccountInfo()

		return util.ValidateAndReturn(c, http.StatusOK, &types.AccountInfoResponse{
			CurrentIndex: info.CurrentIndex,
			Accounts:     info.Accounts,
			ChainID:      provider.ChainID(),
			Connected:    provider.IsConnected(),
		})
	}
}
