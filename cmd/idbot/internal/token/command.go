package token

import (
	"github.com/spf13/cobra"
)

func NewTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the bot token in the system keychain",
		Example: `  echo "$BOT_TOKEN" | idbot token set
  idbot token status
  idbot token delete`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set",
			Short: "Store the bot token read from stdin",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return setToken(cmd.InOrStdin(), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether a token is stored",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return tokenStatus(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Remove the stored token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return deleteToken(cmd.OutOrStdout())
			},
		},
	)

	return cmd
}
