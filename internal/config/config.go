// Package config turns viper settings into a typed, validated Config.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// AI providers.
const (
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Config holds every setting the server and CLI read.
type Config struct {
	// HTTP Server
	Port       int
	StaticPath string

	// Storage
	Backend    string
	SQLitePath string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// AI
	AIProvider string
	AIAPIKey   string
	AIModel    string
	AITimeout  time.Duration

	// AIChatIdleTimeout drops chat conversations unused for this long.
	AIChatIdleTimeout time.Duration

	// AMQP, disabled when URL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Logging
	LogLevel  string
	LogFormat string

	CurrencyCode   string
	CurrencySymbol string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.static_path", "./static")
	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.sqlite_path", "./data/budgetbuddy.db")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("ai.provider", ProviderNone)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-3-flash-preview")
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("ai.chat_idle_timeout", 30*time.Minute)
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "budgetbuddy")
	v.SetDefault("amqp.queue", "budget_alerts")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("currency.code", "INR")
	v.SetDefault("currency.symbol", "₹")
}

// Load reads a Config from v after applying defaults. It does not validate.
func Load(v *viper.Viper) *Config {
	SetDefaults(v)
	return &Config{
		Port:       v.GetInt("server.port"),
		StaticPath: v.GetString("server.static_path"),

		Backend:    strings.ToLower(v.GetString("storage.backend")),
		SQLitePath: v.GetString("storage.sqlite_path"),

		JWTSecret: v.GetString("auth.jwt_secret"),
		TokenTTL:  v.GetDuration("auth.token_ttl"),

		AIProvider: strings.ToLower(v.GetString("ai.provider")),
		AIAPIKey:   v.GetString("ai.api_key"),
		AIModel:    v.GetString("ai.model"),
		AITimeout:  v.GetDuration("ai.timeout"),

		AIChatIdleTimeout: v.GetDuration("ai.chat_idle_timeout"),

		AMQPURL:      v.GetString("amqp.url"),
		AMQPExchange: v.GetString("amqp.exchange"),
		AMQPQueue:    v.GetString("amqp.queue"),

		LogLevel:  v.GetString("logging.level"),
		LogFormat: v.GetString("logging.format"),

		CurrencyCode:   strings.ToUpper(v.GetString("currency.code")),
		CurrencySymbol: v.GetString("currency.symbol"),
	}
}

// Validate validates the settings shared by every command and returns an
// error listing every problem.
func (c *Config) Validate() error {
	return c.validate(nil)
}

// ValidateServe is Validate plus the auth settings the server needs.
func (c *Config) ValidateServe() error {
	var errors []string
	if c.JWTSecret == "" {
		errors = append(errors, "JWT secret is required (auth.jwt_secret or BUDGETBUDDY_AUTH_JWT_SECRET)")
	}
	if c.TokenTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid token ttl %v: must be positive", c.TokenTTL))
	}
	return c.validate(errors)
}

func (c *Config) validate(errors []string) error {
	if c.Port < 1 || c.Port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	validBackends := []string{BackendMemory, BackendSQLite}
	if !slices.Contains(validBackends, c.Backend) {
		errors = append(errors, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.Backend, validBackends))
	}

	if c.Backend == BackendSQLite {
		if c.SQLitePath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLitePath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	validProviders := []string{ProviderGemini, ProviderNone}
	if !slices.Contains(validProviders, c.AIProvider) {
		errors = append(errors, fmt.Sprintf("invalid ai provider '%s': must be one of %v", c.AIProvider, validProviders))
	}
	if c.AIProvider == ProviderGemini && c.AIAPIKey == "" {
		errors = append(errors, "AI API key is required when using the gemini provider")
	}
	if c.AITimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid ai timeout %v: must be at least 1 second", c.AITimeout))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}
	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, strings.ToLower(c.LogFormat)) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validFormats))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
