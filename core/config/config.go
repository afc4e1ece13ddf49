package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"TELEGRAM_BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
	// SendTimeoutSeconds bounds outbound media delivery; 0 -> 60
	SendTimeoutSeconds int `yaml:"send_timeout_seconds" envconfig:"TELEGRAM_SEND_TIMEOUT_SECONDS"`
}

// AccessConfig declares who may talk to the bot.
// An empty list keeps the bot open to everyone (development convenience).
type AccessConfig struct {
	AllowedIDs string `yaml:"allowed_ids" envconfig:"ALLOWED_TELEGRAM_IDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// HealthConfig controls the liveness HTTP endpoint used by hosted deployments.
type HealthConfig struct {
	Listen string `yaml:"listen" envconfig:"HEALTH_LISTEN"`
	Port   int    `yaml:"port" envconfig:"HEALTH_PORT"`
}

// RenderConfig tunes the screenshot pipeline.
type RenderConfig struct {
	// ScratchDir is where temp HTML/PNG artifacts live; empty -> os.TempDir
	ScratchDir string `yaml:"scratch_dir" envconfig:"RENDER_SCRATCH_DIR"`
	// BrowserPath overrides the Chromium binary lookup; empty -> chromedp default
	BrowserPath string `yaml:"browser_path" envconfig:"RENDER_BROWSER_PATH"`
	// NavTimeoutSeconds bounds page navigation and capture; 0 -> 30
	NavTimeoutSeconds int `yaml:"nav_timeout_seconds" envconfig:"RENDER_NAV_TIMEOUT_SECONDS"`
	// SettleMS is the post-navigation delay before capture; 0 -> 2000
	SettleMS       int `yaml:"settle_ms" envconfig:"RENDER_SETTLE_MS"`
	ViewportWidth  int `yaml:"viewport_width" envconfig:"RENDER_VIEWPORT_WIDTH"`
	ViewportHeight int `yaml:"viewport_height" envconfig:"RENDER_VIEWPORT_HEIGHT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
	// UpdateInlineQuery identifies inline query updates for rate limit exclusions.
	UpdateInlineQuery = "inline_query"
)

// RateLimitConfig holds settings for rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
// - "inline_query": inline query updates
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// Config aggregates the whole application configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Access    AccessConfig    `yaml:"access"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Health    HealthConfig    `yaml:"health"`
	Render    RenderConfig    `yaml:"render"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv builds configuration from environment variables only,
// for hosted deployments that ship no config file.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if cfg.Telegram.SendTimeoutSeconds <= 0 {
		cfg.Telegram.SendTimeoutSeconds = 60
	}
	if cfg.Render.NavTimeoutSeconds <= 0 {
		cfg.Render.NavTimeoutSeconds = 30
	}
	if cfg.Render.SettleMS <= 0 {
		cfg.Render.SettleMS = 2000
	}
	if cfg.Render.ViewportWidth <= 0 {
		cfg.Render.ViewportWidth = 1280
	}
	if cfg.Render.ViewportHeight <= 0 {
		cfg.Render.ViewportHeight = 800
	}
	if strings.TrimSpace(cfg.Render.ScratchDir) == "" {
		cfg.Render.ScratchDir = os.TempDir()
	}

	allowed := map[string]struct{}{
		UpdateCallback:    {},
		UpdateMessage:     {},
		UpdateInlineQuery: {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message, inline_query", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}
	return nil
}

// ParseAllowList parses a delimited list of Telegram user IDs.
// Commas and whitespace both act as delimiters; tokens that do not parse
// as integers are skipped.
func ParseAllowList(raw string) map[int64]struct{} {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	ids := make(map[int64]struct{}, len(fields))
	for _, tok := range fields {
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			continue
		}
		ids[id] = struct{}{}
	}
	return ids
}

// Allowed reports whether the parsed allow-list permits the user.
// An empty list permits everyone (fail-open).
func Allowed(ids map[int64]struct{}, userID int64) bool {
	if len(ids) == 0 {
		return true
	}
	_, ok := ids[userID]
	return ok
}
