package solana

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
)

// PostSignAndSendTransactionRoute signs the transaction and returns a random
// signature. Nothing is broadcast.
func PostSignAndSendTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.POST("/sign-and-send-transaction", postSignAndSendTransactionHandler(s))
}

func postSignAndSendTransactionHandler(s *api.Server) echo.HandlerFunc {
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

		result, err := provider.SignAndSendRawTransaction(ctx, body.Transaction)
		if err != nil {
			return api.SolanaBridgeError(c, err)
		}

		return api.BridgeResult(c, &types.SolanaSendResult{
			Signature: result.Signature,
			PublicKey: toPublicKey(result.PublicKey),
		})
	}
}
