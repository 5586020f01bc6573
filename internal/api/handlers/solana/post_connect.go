package solana

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
	"github/chapool/go-mock-wallet/internal/wallet/sol"
)

func PostConnectRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.POST("/connect", postConnectHandler(s))
}

func postConnectHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostSolanaConnectPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		provider, err := s.Wallet.RequireSolana()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		key, err := provider.Connect(ctx, sol.ConnectOptions{OnlyIfTrusted: body.OnlyIfTrusted})
		if err != nil {
			return api.SolanaBridgeError(c, err)
		}

		return api.BridgeResult(c, &types.SolanaConnectResult{PublicKey: toPublicKey(key)})
	}
}
