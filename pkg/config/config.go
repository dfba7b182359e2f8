package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ErrMissingToken is returned by Validate when no bot token was supplied.
var ErrMissingToken = errors.New("telegram token is required (set telegram.token or IDBOT_TELEGRAM_TOKEN)")

// FlexibleStringSlice is a []string that also accepts JSON numbers,
// so allow_from can contain both "123" and 123.
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*f = ss
		return nil
	}

	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	result := make([]string, 0, len(raw))
	for _, v := range raw {
		switch val := v.(type) {
		case string:
			result = append(result, val)
		case float64:
			result = append(result, fmt.Sprintf("%.0f", val))
		default:
			result = append(result, fmt.Sprintf("%v", val))
		}
	}
	*f = result
	return nil
}

type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Polling  PollingConfig  `json:"polling"`
	Webhook  WebhookConfig  `json:"webhook"`
	Logging  LoggingConfig  `json:"logging"`
}

type TelegramConfig struct {
	Token              string              `env:"IDBOT_TELEGRAM_TOKEN"                json:"token"`
	APIBase            string              `env:"IDBOT_TELEGRAM_API_BASE"             json:"api_base"`
	Proxy              string              `env:"IDBOT_TELEGRAM_PROXY"                json:"proxy,omitempty"`
	InsecureSkipVerify bool                `env:"IDBOT_TELEGRAM_INSECURE_SKIP_VERIFY" json:"insecure_skip_verify,omitempty"`
	RequestTimeout     int                 `env:"IDBOT_TELEGRAM_REQUEST_TIMEOUT"      json:"request_timeout"` // seconds
	BotUsername        string              `env:"IDBOT_TELEGRAM_BOT_USERNAME"         json:"bot_username,omitempty"`
	AllowFrom          FlexibleStringSlice `env:"IDBOT_TELEGRAM_ALLOW_FROM"           json:"allow_from"`
}

type PollingConfig struct {
	Timeout  int `env:"IDBOT_POLLING_TIMEOUT"  json:"timeout"`  // long-poll wait, seconds
	Interval int `env:"IDBOT_POLLING_INTERVAL" json:"interval"` // pause between batches, seconds
}

type WebhookConfig struct {
	Host        string `env:"IDBOT_WEBHOOK_HOST"         json:"host"`
	Port        int    `env:"IDBOT_WEBHOOK_PORT"         json:"port"`
	Path        string `env:"IDBOT_WEBHOOK_PATH"         json:"path"`
	SecretToken string `env:"IDBOT_WEBHOOK_SECRET_TOKEN" json:"secret_token,omitempty"`
	PublicURL   string `env:"IDBOT_WEBHOOK_PUBLIC_URL"   json:"public_url,omitempty"`
}

type LoggingConfig struct {
	Level string `env:"IDBOT_LOGGING_LEVEL" json:"level"`
	File  string `env:"IDBOT_LOGGING_FILE"  json:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			APIBase:        "https://api.telegram.org",
			RequestTimeout: 10,
			AllowFrom:      FlexibleStringSlice{},
		},
		Polling: PollingConfig{
			Timeout:  30,
			Interval: 1,
		},
		Webhook: WebhookConfig{
			Host: "0.0.0.0",
			Port: 8443,
			Path: "/telegram/webhook",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads path (a missing file is not an error), then applies
// environment overrides. The result is not validated.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(expandHome(path))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	// the file carries the bot token
	return os.WriteFile(path, data, 0o600)
}

// Validate checks the fields every mode needs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return ErrMissingToken
	}
	if c.Telegram.APIBase == "" {
		return errors.New("telegram.api_base must not be empty")
	}
	if c.Telegram.RequestTimeout <= 0 {
		return fmt.Errorf("telegram.request_timeout must be positive, got %d", c.Telegram.RequestTimeout)
	}
	if c.Polling.Timeout < 0 {
		return fmt.Errorf("polling.timeout must not be negative, got %d", c.Polling.Timeout)
	}
	if c.Polling.Interval < 0 {
		return fmt.Errorf("polling.interval must not be negative, got %d", c.Polling.Interval)
	}
	if !strings.HasPrefix(c.Webhook.Path, "/") {
		return fmt.Errorf("webhook.path must start with '/', got %q", c.Webhook.Path)
	}
	return nil
}

// WebhookAddr returns the listen address of the webhook server.
func (c *Config) WebhookAddr() string {
	return fmt.Sprintf("%s:%d", c.Webhook.Host, c.Webhook.Port)
}

func expandHome(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) > 1 && path[1] == '/' {
			return home + path[1:]
		}
		return home
	}
	return path
}
