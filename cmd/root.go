package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-mock-wallet/cmd/accounts"
	"github/chapool/go-mock-wallet/cmd/env"
	"github/chapool/go-mock-wallet/cmd/probe"
	"github/chapool/go-mock-wallet/cmd/server"
	"github/chapool/go-mock-wallet/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "app",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

A mock Web3 wallet for dApp end-to-end tests. Serves EIP-1193 (window.ethereum)
and Phantom / Wallet Standard (window.solana) providers over a local bridge.
Requires configuration through ENV or a wallet config file. A .env file in the
working directory is applied to ENV first.`, config.ModuleName),
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.LoadDotEnv(config.DefaultDotEnvFile)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		accounts.New(),
		env.New(),
		probe.New(),
		server.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
