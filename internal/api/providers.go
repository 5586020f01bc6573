package api

import (
	"context"

	"github/chapool/go-mock-wallet/internal/config"
	"github/chapool/go-mock-wallet/internal/metrics"
	"github/chapool/go-mock-wallet/internal/wallet"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirements for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NewWallet constructs the wallet of the server config and reports its requests
// and events to the metrics service.
func NewWallet(cfg config.Server, metricsService *metrics.Service) (*wallet.Wallet, error) {
	return wallet.New(context.Background(), cfg.Wallet,
		wallet.WithRequestObserver(metricsService.ObserveRequest),
		wallet.WithEventHook(metricsService.ObserveEvent),
	)
}
