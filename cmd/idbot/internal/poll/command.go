package poll

import (
	"github.com/spf13/cobra"

	"github.com/tinyland-inc/idbot/cmd/idbot/internal"
)

func NewPollCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:     "poll",
		Aliases: []string{"p"},
		Short:   "Run the bot with getUpdates long polling",
		Args:    cobra.NoArgs,
		Example: `  idbot poll
  idbot poll --debug
  IDBOT_TELEGRAM_TOKEN=123:abc idbot poll`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return pollCmd(cmd.Context(), internal.ConfigPath(cmd), debug)
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	return cmd
}
