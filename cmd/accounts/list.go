package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-mock-wallet/internal/api"
	"github/chapool/go-mock-wallet/internal/util/command"
	"github/chapool/go-mock-wallet/internal/wallet"
)

type listOutput struct {
	EVM    []string `json:"evm"`
	Solana []string `json:"solana"`
}

func newList() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Prints the addresses of all configured accounts",
		Long: `Builds the wallet from the configuration (including mnemonic derivation and
keystore decryption) and prints the EVM and Solana addresses in account order.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := listCmdFunc(cmd, configPath); err != nil {
				log.Fatal().Err(err).Msg("Failed to list accounts")
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, configFlag, "c", "", "Wallet config file (toml, json or yaml)")

	return cmd
}

func listCmdFunc(cmd *cobra.Command, configPath string) error {
	cfg, err := command.ServerConfig(configPath)
	if err != nil {
		return err
	}

	if err := command.ResolveWalletSecrets(&cfg.Wallet, command.PromptSecret); err != nil {
		return err
	}

	return command.WithServer(cmd.Context(), cfg, func(_ context.Context, s *api.Server) error {
		out := listOutput{EVM: []string{}, Solana: []string{}}

		if info, err := s.Wallet.GetEVMAccountInfo(); err == nil {
			out.EVM = info.Accounts
		} else if !errors.Is(err, wallet.ErrNoEVMAccounts) {
			return err
		}

		if info, err := s.Wallet.GetSolanaAccountInfo(); err == nil {
			out.Solana = info.Accounts
		} else if !errors.Is(err, wallet.ErrNoSolanaAccounts) {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to print accounts: %w", err)
		}

		return nil
	})
}
