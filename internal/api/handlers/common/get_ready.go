package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/util"
)

// StatusNotReady is returned by the readiness probe, a non-standard code so
// proxies don't mistake it for their own errors.
const StatusNotReady = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			util.LogFromContext(c.Request().Context()).Warn().Msg("Readiness probe failed")
			return c.String(StatusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
