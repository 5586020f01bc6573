package discovery

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/discovery"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
	"github/chapool/go-mock-wallet/internal/wallet"
)

// GetDiscoveryRoute returns the EIP-6963 provider info and the injected
// providers, together with the init script a test harness adds to each page.
func GetDiscoveryRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1.GET("/discovery", getDiscoveryHandler(s))
}

func getDiscoveryHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Wallet.Destroyed() {
			return api.WalletHTTPError(wallet.ErrDestroyed)
		}

		data := discovery.NewInitScriptData(s.Wallet, s.Config.Echo.BaseURL)
		script, err := discovery.InitScript(data)
		if err != nil {
			util.LogFromContext(c.Request().Context()).Error().Err(err).Msg("Failed to render init script")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.GetDiscoveryResponse{
			Info: types.ProviderInfo{
				UUID: data.Info.UUID,
				Name: data.Info.Name,
				Icon: data.Info.Icon,
				RDNS: data.Info.RDNS,
			},
			EVM:        data.EVM,
			Solana:     data.Solana,
			IsMetaMask: data.IsMetaMask,
			IsPhantom:  data.IsPhantom,
			InitScript: script,
		})
	}
}
