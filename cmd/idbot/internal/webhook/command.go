package webhook

import (
	"github.com/spf13/cobra"
)

func NewWebhookCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhook",
		Aliases: []string{"w"},
		Short:   "Serve or manage the Telegram webhook",
		Example: `  idbot webhook serve
  idbot webhook set --url https://bot.example.com/telegram/webhook
  idbot webhook delete`,
	}

	cmd.AddCommand(
		newServeCommand(),
		newSetCommand(),
		newDeleteCommand(),
	)

	return cmd
}

func newServeCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook HTTP server",
		Args:  cobra.NoArgs,
		Example: `  idbot webhook serve
  idbot webhook serve --addr 127.0.0.1:8080
  idbot webhook serve --register`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveCmd(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default: webhook.host:webhook.port)")
	cmd.Flags().BoolVar(&opts.register, "register", false,
		"Call setWebhook with webhook.public_url before serving")

	return cmd
}

func newSetCommand() *cobra.Command {
	var webhookURL string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Register the webhook URL with Telegram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return setCmd(cmd, webhookURL)
		},
	}

	cmd.Flags().StringVar(&webhookURL, "url", "", "Public HTTPS URL (default: webhook.public_url)")

	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook so polling can be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return deleteCmd(cmd)
		},
	}
}
