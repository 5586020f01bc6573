package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
)

// GetHealthyRoute is the liveness probe. It only fails when the process cannot serve.
func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

func getHealthyHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy.")
	}
}
