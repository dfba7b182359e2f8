package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/idbot/cmd/idbot/internal"
	"github.com/tinyland-inc/idbot/cmd/idbot/internal/handle"
	"github.com/tinyland-inc/idbot/cmd/idbot/internal/poll"
	"github.com/tinyland-inc/idbot/cmd/idbot/internal/token"
	"github.com/tinyland-inc/idbot/cmd/idbot/internal/version"
	"github.com/tinyland-inc/idbot/cmd/idbot/internal/webhook"
)

func NewIdbotCommand() *cobra.Command {
	short := fmt.Sprintf("%s idbot - Telegram ID bot v%s\n\n", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:          "idbot",
		Short:        short,
		Example:      "idbot poll",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "",
		"Config file (default: $IDBOT_CONFIG or ~/.idbot/config.json)")

	cmd.AddCommand(
		poll.NewPollCommand(),
		webhook.NewWebhookCommand(),
		handle.NewHandleCommand(),
		token.NewTokenCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewIdbotCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
