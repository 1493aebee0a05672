package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/riskreport.yaml"

// Config holds all application configuration. Every field can be set from the YAML file and
// overridden by the environment variable named in its envconfig tag.
type Config struct {
	Provider string `yaml:"provider" envconfig:"RISK_PROVIDER"`
	Yahoo    struct {
		Hosts   []string      `yaml:"hosts" envconfig:"YAHOO_HOSTS"`
		Timeout time.Duration `yaml:"timeout" envconfig:"YAHOO_TIMEOUT"`
	} `yaml:"yahoo"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" envconfig:"DB_PATH"`
		SavePrices bool   `yaml:"save_prices" envconfig:"SAVE_PRICES"`
	} `yaml:"database"`
	Charts struct {
		ComparisonPath string `yaml:"comparison_path" envconfig:"CHART_COMPARISON_PATH"`
		DrawdownPath   string `yaml:"drawdown_path" envconfig:"CHART_DRAWDOWN_PATH"`
		Width          int    `yaml:"width" envconfig:"CHART_WIDTH"`
		Height         int    `yaml:"height" envconfig:"CHART_HEIGHT"`
	} `yaml:"charts"`
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   int64  `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	OpenAI struct {
		APIKey  string `yaml:"api_key" envconfig:"OPENAI_API_KEY"`
		Model   string `yaml:"model" envconfig:"OPENAI_MODEL"`
		BaseURL string `yaml:"base_url" envconfig:"OPENAI_BASE_URL"`
	} `yaml:"openai"`
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	// RiskFreeRate, when set, is used instead of prompting.
	RiskFreeRate *float64 `yaml:"risk_free_rate" envconfig:"RISK_FREE_RATE"`
}

// Load reads config from a YAML file, then a .env file, then applies environment overrides and
// defaults. Missing files are not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, "read config")
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(err, "parse config")
			}
		}
	}

	// .env never overrides variables already set in the process environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "process env")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = "yahoo"
	}
	if c.Yahoo.Timeout == 0 {
		c.Yahoo.Timeout = 30 * time.Second
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/prices.db"
	}
	if c.Charts.ComparisonPath == "" {
		c.Charts.ComparisonPath = "comparison.png"
	}
	if c.Charts.DrawdownPath == "" {
		c.Charts.DrawdownPath = "drawdown.png"
	}
	if c.Charts.Width == 0 {
		c.Charts.Width = 1200
	}
	if c.Charts.Height == 0 {
		c.Charts.Height = 600
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks value ranges and that optional integrations are either fully configured or off.
func (c *Config) Validate() error {
	switch c.Provider {
	case "yahoo", "sqlite":
	default:
		return errors.Errorf("provider must be yahoo or sqlite, got %q", c.Provider)
	}
	if c.Yahoo.Timeout < 0 {
		return errors.New("yahoo.timeout must be positive")
	}
	if c.Charts.Width < 0 || c.Charts.Height < 0 {
		return errors.New("charts.width and charts.height must be positive")
	}
	if c.RiskFreeRate != nil && *c.RiskFreeRate < 0 {
		return errors.Errorf("risk_free_rate must be non-negative, got %f", *c.RiskFreeRate)
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return errors.New("telegram.chat_id is required when telegram.bot_token is set")
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

func (c *Config) TelegramEnabled() bool { return c.Telegram.BotToken != "" }

func (c *Config) CommentaryEnabled() bool { return c.OpenAI.APIKey != "" }
