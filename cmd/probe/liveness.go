package probe

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-mock-wallet/internal/config"
)

func newLiveness() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long: `Checks that the bridge answers its health endpoint.
Exits with code 1 if the check fails.`,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()

			if err := probe(cmd.Context(), cfg, "/-/healthy", verbose); err != nil {
				log.Fatal().Err(err).Msg("Liveness probe failed")
			}
		},
	}

	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
