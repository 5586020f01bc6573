package solana

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
)

// PostSignTransactionRoute signs a wire-format legacy or v0 transaction with the
// active account.
func PostSignTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.POST("/sign-transaction", postSignTransactionHandler(s))
}

func postSignTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostSolanaTransactionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		provider, err := s.Wallet.RequireSolana()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		signed, err := provider.SignRawTransaction(ctx, body.Transaction)
		if err != nil {
			return api.SolanaBridgeError(c, err)
		}

		return api.BridgeResult(c, &types.SolanaTransactionResult{Transaction: signed})
	}
}
