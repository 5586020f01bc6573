package evm

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
)

// PostSwitchAccountRoute activates another EVM account. Connected pages receive
// accountsChanged over the event stream.
func PostSwitchAccountRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1EVM.POST("/accounts/switch", postSwitchAccountHandler(s))
}

func postSwitchAccountHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSwitchAccountPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		if err := s.Wallet.SwitchEVMAccount(*body.Index); err != nil {
			log.Debug().Err(err).Int("index", *body.Index).Msg("Failed to switch EVM account")
			return api.WalletHTTPError(err)
		}

		provider, err := s.Wallet.RequireEVM()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		info := provider.AccountInfo()

		return util.ValidateAndReturn(c, http.StatusOK, &types.AccountInfoResponse{
			CurrentIndex: info.CurrentIndex,
			Accounts:     info.Accounts,
			ChainID:      provider.ChainID(),
			Connected:    provider.IsConnected(),
		})
	}
}
