package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ConfigError marks a startup-fatal configuration problem.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// Cap scope policies for the shrinking-volume ceiling.
const (
	CapScopeComposite = "composite"
	CapScopeVolume    = "volume"
)

// Config holds all application configuration.
type Config struct {
	Feed struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"feed"`
	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"cache"`
	Schedule struct {
		ScanCron         string `yaml:"scan_cron"`
		WatchCron        string `yaml:"watch_cron"`
		TradingHoursOnly bool   `yaml:"trading_hours_only"`
	} `yaml:"schedule"`
	Portfolio struct {
		InitialCapital  float64 `yaml:"initial_capital"`
		TradeAmount     float64 `yaml:"trade_amount"`
		StreakThreshold int     `yaml:"streak_threshold"`
		AutoTrade       bool    `yaml:"auto_trade"`
	} `yaml:"portfolio"`
	Scoring struct {
		QualifyingThreshold float64 `yaml:"qualifying_threshold"`
		StrongThreshold     float64 `yaml:"strong_threshold"`
		WatchThreshold      float64 `yaml:"watch_threshold"`
		ShrinkCapScope      string  `yaml:"shrink_cap_scope"`
		MaxCandidates       int     `yaml:"max_candidates"`
	} `yaml:"scoring"`
	Advisory struct {
		Enabled        bool   `yaml:"enabled"`
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"advisory"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults and env vars still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FEED_BASE_URL"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := os.Getenv("DASHSCOPE_API_KEY"); v != "" {
		cfg.Advisory.APIKey = v
	}
	if v := os.Getenv("DASHSCOPE_BASE_URL"); v != "" {
		cfg.Advisory.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("INITIAL_CAPITAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Portfolio.InitialCapital = f
		}
	}
	if v := os.Getenv("TRADE_AMOUNT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Portfolio.TradeAmount = f
		}
	}
	if v := os.Getenv("STREAK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Portfolio.StreakThreshold = n
		}
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLSeconds = n
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = "https://push2.eastmoney.com"
	}
	if c.Feed.TimeoutSeconds == 0 {
		c.Feed.TimeoutSeconds = 30
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 300
	}
	if c.Schedule.ScanCron == "" {
		c.Schedule.ScanCron = "@every 5m"
	}
	if c.Schedule.WatchCron == "" {
		c.Schedule.WatchCron = "@every 60s"
	}
	if c.Portfolio.InitialCapital == 0 {
		c.Portfolio.InitialCapital = 1000000
	}
	if c.Portfolio.TradeAmount == 0 {
		c.Portfolio.TradeAmount = 50000
	}
	if c.Portfolio.StreakThreshold == 0 {
		c.Portfolio.StreakThreshold = 2
	}
	if c.Scoring.QualifyingThreshold == 0 {
		c.Scoring.QualifyingThreshold = 70
	}
	if c.Scoring.StrongThreshold == 0 {
		c.Scoring.StrongThreshold = 90
	}
	if c.Scoring.WatchThreshold == 0 {
		c.Scoring.WatchThreshold = 70
	}
	if c.Scoring.ShrinkCapScope == "" {
		c.Scoring.ShrinkCapScope = CapScopeComposite
	}
	if c.Scoring.MaxCandidates == 0 {
		c.Scoring.MaxCandidates = 10
	}
	if c.Advisory.BaseURL == "" {
		c.Advisory.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	}
	if c.Advisory.Model == "" {
		c.Advisory.Model = "qwen-plus"
	}
	if c.Advisory.TimeoutSeconds == 0 {
		c.Advisory.TimeoutSeconds = 15
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/sentinel.db"
	}
}

// Validate checks that the engine can run with these values. Invalid
// thresholds or amounts must prevent startup.
func (c *Config) Validate() error {
	if c.Portfolio.InitialCapital <= 0 {
		return &ConfigError{"portfolio.initial_capital", "must be positive"}
	}
	if c.Portfolio.TradeAmount <= 0 {
		return &ConfigError{"portfolio.trade_amount", "must be positive"}
	}
	if c.Portfolio.TradeAmount > c.Portfolio.InitialCapital {
		return &ConfigError{"portfolio.trade_amount", "must not exceed initial capital"}
	}
	if c.Portfolio.StreakThreshold < 1 {
		return &ConfigError{"portfolio.streak_threshold", "must be at least 1"}
	}
	if c.Scoring.QualifyingThreshold < 0 || c.Scoring.QualifyingThreshold > 100 {
		return &ConfigError{"scoring.qualifying_threshold", "must be within [0,100]"}
	}
	if c.Scoring.WatchThreshold > c.Scoring.StrongThreshold {
		return &ConfigError{"scoring.watch_threshold", "must not exceed strong_threshold"}
	}
	if s := c.Scoring.ShrinkCapScope; s != CapScopeComposite && s != CapScopeVolume {
		return &ConfigError{"scoring.shrink_cap_scope", `must be "composite" or "volume"`}
	}
	if c.Scoring.MaxCandidates < 1 {
		return &ConfigError{"scoring.max_candidates", "must be at least 1"}
	}
	if c.Cache.TTLSeconds < 1 {
		return &ConfigError{"cache.ttl_seconds", "must be at least 1"}
	}
	if c.Advisory.Enabled && c.Advisory.APIKey == "" {
		return &ConfigError{"advisory.api_key", "is required when advisory is enabled"}
	}
	return nil
}
