package accounts

import (
	"github.com/spf13/cobra"
	"github/chapool/go-mock-wallet/internal/util/command"
)

const (
	configFlag = "config"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("accounts",
		newList(),
		newEncrypt(),
	)
}
