package lifecycle

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/util"
)

// DeleteWalletRoute destroys the wallet: both providers disconnect, listeners
// are dropped and all keys are zeroed. The server reports not ready afterwards.
func DeleteWalletRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.DELETE("/wallet", deleteWalletHandler(s))
}

func deleteWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		s.Wallet.Destroy(ctx)
		util.LogFromContext(ctx).Info().Msg("Wallet destroyed on request")

		return c.NoContent(http.StatusNoContent)
	}
}
