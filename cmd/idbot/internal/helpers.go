package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/idbot/pkg/channels"
	"github.com/tinyland-inc/idbot/pkg/config"
	"github.com/tinyland-inc/idbot/pkg/keychain"
	"github.com/tinyland-inc/idbot/pkg/logger"
	"github.com/tinyland-inc/idbot/pkg/telegram"
)

const Logo = "🆔"

var (
	version   = "dev"
	gitCommit string
	buildTime string
	goVersion string
)

// GetConfigPath returns $IDBOT_CONFIG, or ~/.idbot/config.json.
func GetConfigPath() string {
	if p := os.Getenv("IDBOT_CONFIG"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".idbot", "config.json")
}

// ConfigPath resolves the --config flag inherited from the root command.
func ConfigPath(cmd *cobra.Command) string {
	if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return GetConfigPath()
}

// LoadConfig loads and validates the configuration at path. A token missing
// from both file and environment is looked up in the system keychain.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		token, err := keychain.Get(keychain.TokenAccount)
		switch {
		case err == nil:
			cfg.Telegram.Token = token
		case !errors.Is(err, keychain.ErrNotFound):
			logger.DebugCF("config", "Keychain unavailable", map[string]any{
				"error": err.Error(),
			})
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SetupLogging applies the configured level and file sink. --debug wins
// over the configured level.
func SetupLogging(cfg *config.Config, debug bool) error {
	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	if debug {
		level = logger.DEBUG
	}
	logger.SetLevel(level)

	if cfg.Logging.File != "" {
		if err := logger.EnableFileLogging(cfg.Logging.File); err != nil {
			return fmt.Errorf("error enabling file logging: %w", err)
		}
	}
	return nil
}

// NewTelegramChannel builds the Bot API client and the channel around it.
func NewTelegramChannel(cfg *config.Config) (*channels.TelegramChannel, *telegram.Client, error) {
	client, err := telegram.NewClient(cfg.Telegram)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating telegram client: %w", err)
	}
	return channels.NewTelegramChannel(cfg, client), client, nil
}

// FormatVersion returns the version string with optional git commit
func FormatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

// FormatBuildInfo returns build time and go version info
func FormatBuildInfo() (string, string) {
	build := buildTime
	goVer := goVersion
	if goVer == "" {
		goVer = runtime.Version()
	}
	return build, goVer
}

func GetVersion() string {
	return version
}
