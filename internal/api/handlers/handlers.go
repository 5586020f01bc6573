package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/api/handlers/common"
	"github/chapool/go-mock-wallet/internal/api/handlers/discovery"
	"github/chapool/go-mock-wallet/internal/api/handlers/events"
	"github/chapool/go-mock-wallet/internal/api/handlers/evm"
	"github/chapool/go-mock-wallet/internal/api/handlers/lifecycle"
	"github/chapool/go-mock-wallet/internal/api/handlers/solana"
)

func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = append(s.Router.Routes, []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		discovery.GetDiscoveryRoute(s),
		discovery.GetInjectScriptRoute(s),
		events.GetEventsRoute(s),
		evm.GetAccountsRoute(s),
		evm.PostRequestRoute(s),
		evm.PostSwitchAccountRoute(s),
		lifecycle.DeleteWalletRoute(s),
		solana.GetAccountsRoute(s),
		solana.GetStandardRoute(s),
		solana.PostConnectRoute(s),
		solana.PostDisconnectRoute(s),
		solana.PostSignAllTransactionsRoute(s),
		solana.PostSignAndSendTransactionRoute(s),
		solana.PostSignMessageRoute(s),
		solana.PostSignTransactionRoute(s),
		solana.PostSwitchAccountRoute(s),
	}...)
}
