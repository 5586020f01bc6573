package solana

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
	"github/chapool/go-mock-wallet/internal/wallet/sol"
)

// GetStandardRoute describes the wallet as registered with the Wallet Standard.
func GetStandardRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.GET("/standard", getStandardHandler(s))
}

func getStandardHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		provider, err := s.Wallet.RequireSolana()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		std := provider.Standard()

		accounts := make([]types.SolanaStandardAccount, 0, 1)
		for _, account := range std.Accounts() {
			accounts = append(accounts, types.SolanaStandardAccount{
				Address:   account.Address,
				PublicKey: account.PublicKey,
				Chains:    account.Chains,
				Features:  account.Features,
				Label:     account.Label,
			})
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetSolanaStandardResponse{
			Version:  std.Version,
			Name:     std.Name,
			Icon:     std.Icon,
			Chains:   std.Chains,
			Features: sol.FeatureNames(),
			Accounts: accounts,
		})
	}
}
