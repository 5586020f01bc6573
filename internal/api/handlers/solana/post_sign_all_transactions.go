package solana

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
)

// PostSignAllTransactionsRoute signs every transaction or none of them.
func PostSignAllTransactionsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.POST("/sign-all-transactions", postSignAllTransactionsHandler(s))
}

func postSignAllTransactionsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostSolanaTransactionsPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		provider, err := s.Wallet.RequireSolana()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		signed, err := provider.SignAllRawTransactions(ctx, body.Transactions)
		if err != nil {
			return api.SolanaBridgeError(c, err)
		}

		return api.BridgeResult(c, &types.SolanaTransactionsResult{Transactions: signed})
	}
}
