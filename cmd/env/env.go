package env

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-mock-wallet/internal/config"
	"github/chapool/go-mock-wallet/internal/util/command"
)

const configFlag = "config"

func New() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Prints the effective wallet config as TOML",
		Long: `Prints the wallet config resolved from ENV and the optional config file.
Private keys, passwords and mnemonic phrases are redacted.`,
		Run: func(_ *cobra.Command, _ []string) {
			cfg, err := command.ServerConfig(configPath)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to load config")
			}

			if err := config.EncodeTOML(os.Stdout, cfg.Wallet.Redacted()); err != nil {
				log.Fatal().Err(err).Msg("Failed to print config")
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, configFlag, "c", "", "Wallet config file (toml, json or yaml)")

	return cmd
}
