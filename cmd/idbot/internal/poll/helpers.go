package poll

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tinyland-inc/idbot/cmd/idbot/internal"
	"github.com/tinyland-inc/idbot/pkg/logger"
)

func pollCmd(parent context.Context, configPath string, debug bool) error {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := internal.SetupLogging(cfg, debug); err != nil {
		return err
	}
	defer logger.DisableFileLogging()

	channel, _, err := internal.NewTelegramChannel(cfg)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s idbot polling (timeout %ds, interval %ds). Press Ctrl+C to stop.\n",
		internal.Logo, cfg.Polling.Timeout, cfg.Polling.Interval)

	if err := channel.Start(ctx); err != nil {
		return fmt.Errorf("polling stopped: %w", err)
	}
	fmt.Println("✓ Bot stopped")
	return nil
}
