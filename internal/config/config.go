// Package config loads process configuration from NOTES_* environment
// variables, with an optional .env file for local runs.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "NOTES_"

// Storage backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreDynamoDB = "dynamodb"
	StoreRedis    = "redis"
)

type Config struct {
	Env      string `koanf:"env" validate:"required"`
	HTTPAddr string `koanf:"http_addr" validate:"required"`
	LogLevel string `koanf:"log_level" validate:"required,oneof=trace debug info warn error"`

	Store       string `koanf:"store" validate:"required,oneof=memory postgres dynamodb redis"`
	DatabaseURL string `koanf:"database_url" validate:"required_if=Store postgres"`
	RedisAddr   string `koanf:"redis_addr" validate:"required_if=Store redis"`
	RedisPrefix string `koanf:"redis_prefix" validate:"required"`

	TableNotes       string `koanf:"table_notes" validate:"required_if=Store dynamodb"`
	TableUsers       string `koanf:"table_users" validate:"required_if=Store dynamodb"`
	AWSRegion        string `koanf:"aws_region"`
	DynamoDBEndpoint string `koanf:"dynamodb_endpoint" validate:"omitempty,url"`

	CORSAllowedOrigins   string `koanf:"cors_allowed_origins"`
	CORSAllowCredentials bool   `koanf:"cors_allow_credentials"`

	JWTSecret string `koanf:"jwt_secret"`

	ShutdownTimeoutSeconds int `koanf:"shutdown_timeout" validate:"gt=0"`
}

func defaults() Config {
	return Config{
		Env:                    "development",
		HTTPAddr:               ":8080",
		LogLevel:               "info",
		Store:                  StoreMemory,
		RedisPrefix:            "notes",
		ShutdownTimeoutSeconds: 5,
	}
}

func Load() (Config, error) {
	k := koanf.New(".")
	// Blank variables keep their defaults.
	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, any) {
		value = strings.TrimSpace(value)
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Origins splits the comma-separated CORS origin list, dropping blanks.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func (c Config) Development() bool {
	return c.Env == "development" || c.Env == "local"
}
