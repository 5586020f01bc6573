package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/api/router"
	"github/chapool/go-mock-wallet/internal/util/command"
)

const (
	configFlag          = "config"
	promptSecretsFlag   = "prompt-secrets"
	gracefulShutdownSec = 30
)

type Flags struct {
	ConfigPath    string
	PromptSecrets bool
}

func New() *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Starts the wallet bridge",
		Long: `Starts the HTTP bridge that serves the wallet's EIP-1193 and Solana providers,
the event stream and the browser init script.

Requires configuration through ENV or a wallet config file.`,
		Run: func(_ *cobra.Command, _ []string) {
			runServer(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, configFlag, "c", "", "Wallet config file (toml, json or yaml), replaces MOCKWALLET_* account variables")
	cmd.Flags().BoolVar(&flags.PromptSecrets, promptSecretsFlag, true, "Prompt for missing keystore passwords and mnemonic phrases")

	return cmd
}

func runServer(flags Flags) {
	cfg, err := command.ServerConfig(flags.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(cfg.Logger.Level)
	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	}

	if flags.PromptSecrets {
		if err := command.ResolveWalletSecrets(&cfg.Wallet, command.PromptSecret); err != nil {
			log.Fatal().Err(err).Msg("Failed to read wallet secrets")
		}
	}

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	router.Init(s)

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	log.Info().
		Str("listen", cfg.Echo.ListenAddress).
		Str("inject", cfg.Echo.BaseURL+"/inject.js").
		Msg("Wallet bridge started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownSec*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		log.Fatal().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
	}

	log.Info().Msg("Server shut down")
}
