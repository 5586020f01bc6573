package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/types"
	"github/chapool/go-mock-wallet/internal/util"
	"github/chapool/go-mock-wallet/internal/wallet/evm"
	"github/chapool/go-mock-wallet/internal/wallet/sol"
)

// Provider calls answer with status 200 and carry either {"result": ...} or
// {"error": {code, message, data}}, so the init script can rethrow the provider
// error unchanged. Transport and wallet lifecycle failures stay HTTP errors.

func BridgeResult(c echo.Context, result any) error {
	return util.ValidateAndReturn(c, http.StatusOK, &types.BridgeResultResponse{Result: result})
}

func bridgeError(c echo.Context, code int, message string, data any) error {
	return util.ValidateAndReturn(c, http.StatusOK, &types.BridgeErrorResponse{
		Error: types.BridgeError{Code: code, Message: message, Data: data},
	})
}

// EVMBridgeError answers with err as EIP-1193 provider error.
func EVMBridgeError(c echo.Context, err error) error {
	perr := evm.ToProviderError(err)
	util.LogFromContext(c.Request().Context()).Debug().Err(err).Int("code", perr.Code).Msg("EVM request rejected")

	return bridgeError(c, perr.Code, perr.Message, perr.Data)
}

// SolanaBridgeError answers with err as Phantom provider error.
func SolanaBridgeError(c echo.Context, err error) error {
	code := sol.ErrorCode(err)
	util.LogFromContext(c.Request().Context()).Debug().Err(err).Int("code", code).Msg("Solana request rejected")

	return bridgeError(c, code, err.Error(), nil)
}
