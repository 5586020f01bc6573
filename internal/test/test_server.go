package test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/api/router"
	"github/chapool/go-mock-wallet/internal/config"
)

// DefaultTestConfig returns a server config holding two EVM accounts and two
// Solana accounts, independent of the environment.
func DefaultTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Echo.Debug = false
	cfg.Echo.BaseURL = "http://127.0.0.1:8787"
	cfg.Logger.Level = zerolog.DebugLevel
	cfg.Logger.PrettyPrintConsole = false

	cfg.Wallet = config.Wallet{
		Accounts: []config.Account{
			{ChainFamily: config.ChainFamilyEVM, PrivateKey: EVMKey0},
			{ChainFamily: config.ChainFamilyEVM, PrivateKey: EVMKey1},
			{ChainFamily: config.ChainFamilySolana, PrivateKey: SolanaSeed(1)},
			{ChainFamily: config.ChainFamilySolana, PrivateKey: SolanaSeed(2)},
		},
	}
	cfg.Wallet.ApplyDefaults()

	return cfg
}

// WithTestServer returns a fully configured server (but without the HTTP listener
// started) holding a fresh wallet built from DefaultTestConfig.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(), closure)
}

// WithTestServerConfigurable is WithTestServer with an explicit config.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	zerolog.SetGlobalLevel(cfg.Logger.Level)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		t.Fatalf("Failed to init server: %v", err)
	}

	router.Init(s)

	closure(s)

	// wallet is destroyed during shutdown, which is idempotent
	if errs := s.Shutdown(context.Background()); len(errs) > 0 {
		t.Fatalf("Failed to shutdown server: %v", errs)
	}
}
