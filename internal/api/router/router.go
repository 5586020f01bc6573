package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/api/handlers"
	"github/chapool/go-mock-wallet/internal/api/httperrors"
	"github/chapool/go-mock-wallet/internal/api/middleware"
)

// Init sets up echo with all middlewares and routes of the wallet bridge.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true

	s.Echo.HTTPErrorHandler = HTTPErrorHandlerWithConfig(HTTPErrorHandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrorDetails,
	})

	// ---
	// General middleware
	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	} else {
		log.Warn().Msg("Disabling request ID middleware due to environment config")
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level:           s.Config.Logger.RequestLevel,
			LogRequestBody:  s.Config.Logger.LogRequestBody,
			LogResponseBody: s.Config.Logger.LogResponseBody,
			Skipper: func(c echo.Context) bool {
				// the event stream is long lived and would only be logged on close
				return c.Path() == "/api/v1/events"
			},
		}))
	} else {
		log.Warn().Msg("Disabling logger middleware due to environment config")
	}

	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
			AllowOrigins: s.Config.Echo.CORSAllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		}))
	} else {
		log.Warn().Msg("Disabling CORS middleware due to environment config")
	}

	if s.Config.Management.EnableMetrics {
		s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "mockwallet",
			Registerer: s.Metrics.Registry,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/api/v1/events"
			},
		}))
	}

	s.Router = &api.Router{
		Routes: nil,
		Root:   s.Echo.Group(""),
		// management endpoints are not versioned
		Management:  s.Echo.Group("/-"),
		APIV1:       s.Echo.Group("/api/v1"),
		APIV1EVM:    s.Echo.Group("/api/v1/evm"),
		APIV1Solana: s.Echo.Group("/api/v1/solana"),
	}

	if s.Config.Management.EnableMetrics {
		s.Router.Routes = append(s.Router.Routes, s.Router.Root.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: s.Metrics.Registry,
		})))
	}

	handlers.AttachAllRoutes(s)
}

type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig renders every error as an httperrors.HTTPError.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *httperrors.HTTPError

		var httpError *httperrors.HTTPError
		var echoHTTPError *echo.HTTPError
		switch {
		case errors.As(err, &httpError):
			he = httpError
		case errors.As(err, &echoHTTPError):
			he = httperrors.NewFromEcho(echoHTTPError)
		default:
			he = httperrors.NewHTTPError(http.StatusInternalServerError, httperrors.TypeGeneric, http.StatusText(http.StatusInternalServerError))
			if !config.HideInternalServerErrorDetails {
				he.Detail = err.Error()
			}
			he.Internal = err
		}

		if he.Code >= http.StatusInternalServerError && config.HideInternalServerErrorDetails {
			out := *he
			out.Detail = ""
			he = &out
		}

		if c.Response().Committed {
			return
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(he.Code)
		} else {
			sendErr = c.JSON(he.Code, he)
		}
		if sendErr != nil {
			log.Warn().Err(sendErr).AnErr("http_err", err).Msg("Failed to handle HTTP error")
		}
	}
}
