package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/config"
)

const (
	shutdownTimeout = 30 * time.Second
)

// NewSubcommandGroup returns a command that only groups the given subcommands.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("%s related subcommands", use),
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// WithServer initializes a server (without starting the HTTP listener) from the given
// config, runs f and shuts the server down again afterwards.
func WithServer(ctx context.Context, cfg config.Server, f func(ctx context.Context, s *api.Server) error) error {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(cfg.Logger.Level)
	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	}

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
			log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		}
	}()

	return f(ctx, s)
}

// ErrUsage marks errors caused by invalid command line usage.
var ErrUsage = errors.New("invalid usage")

// ServerConfig returns the server config from the environment. A non-empty
// walletConfigPath replaces the wallet part with the contents of that file.
func ServerConfig(walletConfigPath string) (config.Server, error) {
	cfg := config.DefaultServiceConfigFromEnv()
	if walletConfigPath == "" {
		if err := cfg.Wallet.ResolveBrandingIcon(); err != nil {
			return config.Server{}, err
		}
		return cfg, nil
	}

	wallet, err := config.LoadWallet(walletConfigPath)
	if err != nil {
		return config.Server{}, err
	}
	cfg.Wallet = wallet

	return cfg, nil
}
