package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	ClientID     string `mapstructure:"pdd_client_id" validate:"required"`
	ClientSecret string `mapstructure:"pdd_client_secret" validate:"required"`
	AccessToken  string `mapstructure:"pdd_access_token"`
	GatewayURL   string `mapstructure:"pdd_gateway_url" validate:"required,url"`
	TokenURL     string `mapstructure:"pdd_token_url" validate:"required,url"`
	BodyEncoding string `mapstructure:"pdd_body_encoding" validate:"oneof=json form"`

	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds" validate:"gte=0"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	JournalType            string        `mapstructure:"journal_type" validate:"oneof=none bbolt"`
	JournalPath            string        `mapstructure:"journal_path"`
	JournalTTLSeconds      int64         `mapstructure:"journal_ttl_seconds"`
	JournalCleanupSeconds  int64         `mapstructure:"journal_cleanup_interval_seconds"`
	JournalTTL             time.Duration `mapstructure:"-"`
	JournalCleanupInterval time.Duration `mapstructure:"-"`
}

// String masks credentials so the config can be logged.
func (c Config) String() string {
	return fmt.Sprintf("Config{app=%s env=%s log_level=%s client_id=%s gateway=%s token_url=%s encoding=%s journal=%s}",
		c.AppName, c.Env, c.LogLevel, c.ClientID, c.GatewayURL, c.TokenURL, c.BodyEncoding, c.JournalType)
}

// Redacted returns a loggable view of the config.
func (c Config) Redacted() map[string]any {
	return map[string]any{
		"app_name":             c.AppName,
		"app_env":              c.Env,
		"log_level":            c.LogLevel,
		"pdd_client_id":        c.ClientID,
		"pdd_gateway_url":      c.GatewayURL,
		"pdd_token_url":        c.TokenURL,
		"pdd_body_encoding":    c.BodyEncoding,
		"has_access_token":     c.AccessToken != "",
		"http_timeout_seconds": c.HTTPTimeoutSeconds,
		"journal_type":         c.JournalType,
		"journal_path":         c.JournalPath,
	}
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "pdd-open-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("pdd_client_id", "")
	v.SetDefault("pdd_client_secret", "")
	v.SetDefault("pdd_access_token", "")
	v.SetDefault("pdd_gateway_url", "https://gw-api.pinduoduo.com/api/router")
	v.SetDefault("pdd_token_url", "http://open-api.pinduoduo.com/oauth/token")
	v.SetDefault("pdd_body_encoding", "json")
	v.SetDefault("http_timeout_seconds", 0) // no timeout
	v.SetDefault("journal_type", "none")
	v.SetDefault("journal_path", "./data/journal.db")
	v.SetDefault("journal_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("journal_cleanup_interval_seconds", int64((time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.BodyEncoding = strings.ToLower(strings.TrimSpace(cfg.BodyEncoding))
	cfg.JournalType = strings.ToLower(strings.TrimSpace(cfg.JournalType))
	if cfg.JournalType == "" {
		cfg.JournalType = "none"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.JournalType == "bbolt" {
		if strings.TrimSpace(cfg.JournalPath) == "" {
			return nil, fmt.Errorf("invalid journal_path (required for bbolt journal)")
		}
		if cfg.JournalTTLSeconds <= 0 {
			return nil, fmt.Errorf("invalid journal_ttl_seconds (must be positive seconds)")
		}
		if cfg.JournalCleanupSeconds <= 0 {
			return nil, fmt.Errorf("invalid journal_cleanup_interval_seconds (must be positive seconds)")
		}
	}

	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	cfg.JournalTTL = time.Duration(cfg.JournalTTLSeconds) * time.Second
	cfg.JournalCleanupInterval = time.Duration(cfg.JournalCleanupSeconds) * time.Second

	return &cfg, nil
}
