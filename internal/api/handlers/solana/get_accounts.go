package solana

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
	"github/chapool/go-mock-wallet/internal/wallet/sol"
)

func GetAccountsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.GET("/accounts", getAccountsHandler(s))
}

func getAccountsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		provider, err := s.Wallet.RequireSolana()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, accountInfoResponse(provider))
	}
}

func accountInfoResponse(provider *sol.Provider) *types.AccountInfoResponse {
	info := provider.AccountInfo()

	return &types.AccountInfoResponse{
		CurrentIndex: info.CurrentIndex,
		Accounts:     info.Accounts,
		Cluster:      provider.Network().Chain(),
		Connected:    provider.IsConnected(),
	}
}
