package evm

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
	"github/chapool/go-mock-wallet/internal/wallet/evm"
)

// PostRequestRoute forwards an EIP-1193 request({method, params}) call to the provider.
func PostRequestRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1EVM.POST("/request", postRequestHandler(s))
}

func postRequestHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostEVMRequestPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		provider, err := s.Wallet.RequireEVM()
		if err != nil {
			return api.WalletHTTPError(err)
		}

		result, err := provider.Request(ctx, evm.RequestArguments{
			Method: body.Method,
			Params: body.Params,
		})
		if err != nil {
			return api.EVMBridgeError(c, err)
		}

		return api.BridgeResult(c, result)
	}
}
