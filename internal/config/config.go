// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration for the splitkaro backend.
type Config struct {
	Env      string `mapstructure:"env" validate:"oneof=development staging production"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=debug info warn error"`

	HTTPPort    int `mapstructure:"http_port" validate:"min=1,max=65535"`
	MetricsPort int `mapstructure:"metrics_port" validate:"min=0,max=65535"`

	DBPath string `mapstructure:"db_path" validate:"required"`

	JWTSecret     string `mapstructure:"jwt_secret" validate:"required,min=16"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours" validate:"min=1"`

	// InviteLink is embedded in SMS invites sent to phone numbers without
	// an account.
	InviteLink string `mapstructure:"invite_link"`

	// FrontendURL restricts CORS; empty allows any origin.
	FrontendURL string `mapstructure:"frontend_url"`
}

// TokenTTL returns the configured session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// Load reads configuration from .env files and environment variables,
// applies defaults, and validates the result. Environment variables use the
// SPLITKARO_ prefix (e.g. SPLITKARO_HTTP_PORT).
func Load() (*Config, error) {
	// Missing .env files are fine outside development.
	_ = godotenv.Load(".env.local", ".env")

	v := viper.New()
	v.SetEnvPrefix("SPLITKARO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_port", 8080)
	v.SetDefault("metrics_port", 9091)
	v.SetDefault("db_path", "./data/splitkaro.db")
	v.SetDefault("token_ttl_hours", 24)
	v.SetDefault("invite_link", "https://splitkaro.app/join")

	// Defaults alone never satisfy AutomaticEnv lookups, so bind each key
	// explicitly.
	for _, key := range []string{
		"env", "log_level", "http_port", "metrics_port",
		"db_path", "jwt_secret", "token_ttl_hours", "invite_link", "frontend_url",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
