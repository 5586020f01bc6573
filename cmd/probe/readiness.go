package probe

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-mock-wallet/internal/config"
)

func newReadiness() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `Checks that the bridge holds a live, not destroyed wallet.
Exits with code 1 if the check fails.`,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()

			if err := probe(cmd.Context(), cfg, "/-/ready", verbose); err != nil {
				log.Fatal().Err(err).Msg("Readiness probe failed")
			}
		},
	}

	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
