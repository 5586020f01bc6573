package solana

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
)

func PostSignMessageRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.POST("/sign-message", postSignMessageHandler(s))
}

func postSignMessageHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostSolanaSignMessagePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		provider, err := s.Wallet.RequireSolana()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		signed, err := provider.SignMessage(ctx, body.Message)
		if err != nil {
			return api.SolanaBridgeError(c, err)
		}

		return api.BridgeResult(c, &types.SolanaSignMessageResult{
			Signature: signed.Signature[:],
			PublicKey: toPublicKey(signed.PublicKey),
		})
	}
}
