package handle

import (
	"github.com/spf13/cobra"

	"github.com/tinyland-inc/idbot/cmd/idbot/internal"
)

func NewHandleCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "handle",
		Short: "Dispatch one webhook update read from stdin",
		Long: `Reads a single Telegram update (the raw webhook JSON body) from stdin,
answers it and exits. Empty input prints the bot status instead.`,
		Args: cobra.NoArgs,
		Example: `  idbot handle < update.json
  curl -s ... | idbot handle --debug`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := internal.LoadConfig(internal.ConfigPath(cmd))
			if err != nil {
				return err
			}
			if err := internal.SetupLogging(cfg, debug); err != nil {
				return err
			}
			channel, _, err := internal.NewTelegramChannel(cfg)
			if err != nil {
				return err
			}
			return handleInput(cmd.Context(), channel, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	return cmd
}
