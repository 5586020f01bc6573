package discovery

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/discovery"
	"github/chapool/go-mock-wallet/internal/util"
	"github/chapool/go-mock-wallet/internal/wallet"
)

// GetInjectScriptRoute serves the init script as plain JavaScript, for
// harnesses that add it by URL.
func GetInjectScriptRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/inject.js", getInjectScriptHandler(s))
}

func getInjectScriptHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Wallet.Destroyed() {
			return api.WalletHTTPError(wallet.ErrDestroyed)
		}

		script, err := discovery.InitScript(discovery.NewInitScriptData(s.Wallet, s.Config.Echo.BaseURL))
		if err != nil {
			util.LogFromContext(c.Request().Context()).Error().Err(err).Msg("Failed to render init script")
			return err
		}

		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")

		return c.Blob(http.StatusOK, "application/javascript; charset=utf-8", []byte(script))
	}
}
