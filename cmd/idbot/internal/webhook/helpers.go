package webhook

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/idbot/cmd/idbot/internal"
	"github.com/tinyland-inc/idbot/pkg/channels"
	"github.com/tinyland-inc/idbot/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	debug    bool
	addr     string
	register bool
}

func serveCmd(cmd *cobra.Command, opts serveOptions) error {
	cfg, err := internal.LoadConfig(internal.ConfigPath(cmd))
	if err != nil {
		return err
	}
	if err := internal.SetupLogging(cfg, opts.debug); err != nil {
		return err
	}
	defer logger.DisableFileLogging()

	channel, client, err := internal.NewTelegramChannel(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.register {
		webhookURL, err := resolveURL("", cfg.Webhook.PublicURL)
		if err != nil {
			return err
		}
		if err := client.SetWebhook(ctx, webhookURL, cfg.Webhook.SecretToken); err != nil {
			return fmt.Errorf("error registering webhook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Webhook registered at %s\n", webhookURL)
	}

	channel.ResolveBotUsername(ctx)

	addr := opts.addr
	if addr == "" {
		addr = cfg.WebhookAddr()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", addr, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s idbot webhook listening on http://%s%s\n",
		internal.Logo, ln.Addr(), cfg.Webhook.Path)
	return serve(ctx, ln, channel, cfg.Webhook.Path)
}

// serve runs the webhook server on ln until ctx is done.
func serve(ctx context.Context, ln net.Listener, channel *channels.TelegramChannel, path string) error {
	srv := &http.Server{
		Handler:           channel.NewWebhookMux(path),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	logger.InfoCF("webhook", "Webhook server started", map[string]any{
		"addr": ln.Addr().String(),
		"path": path,
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("webhook server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("webhook server shutdown: %w", err)
	}
	logger.InfoC("webhook", "Webhook server stopped")
	return nil
}

func setCmd(cmd *cobra.Command, flagURL string) error {
	cfg, err := internal.LoadConfig(internal.ConfigPath(cmd))
	if err != nil {
		return err
	}
	webhookURL, err := resolveURL(flagURL, cfg.Webhook.PublicURL)
	if err != nil {
		return err
	}

	_, client, err := internal.NewTelegramChannel(cfg)
	if err != nil {
		return err
	}
	if err := client.SetWebhook(contextOf(cmd), webhookURL, cfg.Webhook.SecretToken); err != nil {
		return fmt.Errorf("error setting webhook: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Webhook set to %s\n", webhookURL)
	return nil
}

func deleteCmd(cmd *cobra.Command) error {
	cfg, err := internal.LoadConfig(internal.ConfigPath(cmd))
	if err != nil {
		return err
	}

	_, client, err := internal.NewTelegramChannel(cfg)
	if err != nil {
		return err
	}
	if err := client.DeleteWebhook(contextOf(cmd)); err != nil {
		return fmt.Errorf("error deleting webhook: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Webhook deleted")
	return nil
}

// resolveURL picks the flag value over the configured public URL and
// requires an absolute https URL, which is all Telegram accepts.
func resolveURL(flagURL, configured string) (string, error) {
	raw := flagURL
	if raw == "" {
		raw = configured
	}
	if raw == "" {
		return "", errors.New("no webhook URL: pass --url or set webhook.public_url")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid webhook URL %q: %w", raw, err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("webhook URL must be an absolute https URL, got %q", raw)
	}
	return u.String(), nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
