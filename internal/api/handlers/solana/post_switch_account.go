package solana

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
)

func PostSwitchAccountRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.POST("/accounts/switch", postSwitchAccountHandler(s))
}

func postSwitchAccountHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := util.LogFromContext(c.Request().Context())

		var body types.PostSwitchAccountPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		if err := s.Wallet.SwitchSolanaAccount(*body.Index); err != nil {
			log.Debug().Err(err).Int("index", *body.Index).Msg("Failed to switch Solana account")
			return api.WalletHTTPError(err)
		}

		provider, err := s.Wallet.RequireSolana()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, accountInfoResponse(provider))
	}
}
