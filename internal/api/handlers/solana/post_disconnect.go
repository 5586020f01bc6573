package solana

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
)

func PostDisconnectRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.POST("/disconnect", postDisconnectHandler(s))
}

func postDisconnectHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		provider, err := s.Wallet.RequireSolana()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		provider.Disconnect(c.Request().Context())

		return api.BridgeResult(c, nil)
	}
}
