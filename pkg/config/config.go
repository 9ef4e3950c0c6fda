package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Credential backends understood by the CLI
const (
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// APIConfig holds the inventory service endpoint configuration
type APIConfig struct {
	BaseURL string        `envconfig:"STOCK_API_BASE_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"STOCK_HTTP_TIMEOUT" default:"0s"`
}

// CredentialConfig holds the token storage configuration
type CredentialConfig struct {
	Backend       string `envconfig:"STOCK_CREDENTIAL_BACKEND" default:"bolt"`
	Path          string `envconfig:"STOCK_CREDENTIAL_PATH"`
	RedisAddr     string `envconfig:"STOCK_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"STOCK_REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"STOCK_REDIS_DB" default:"0"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string `envconfig:"METRICS_PREFIX" default:"stockmobile"`
}

// StubConfig holds configuration for the development inventory server
type StubConfig struct {
	Port               string `envconfig:"STUB_PORT" default:"8080"`
	JWTSigningKey      string `envconfig:"JWT_SIGNING_KEY" default:"stockstubsecretkey"`
	JWTExpirationHours int    `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`
}

// Config holds all configuration
type Config struct {
	ServiceName string
	Env         string `envconfig:"APP_ENV" default:"development"`
	API         APIConfig
	Credential  CredentialConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Stub        StubConfig
}

// Load loads configuration from an optional .env file and the environment
func Load(serviceName string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	config := &Config{ServiceName: serviceName}
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if config.Credential.Path == "" {
		config.Credential.Path = defaultCredentialPath()
	}

	switch config.Credential.Backend {
	case BackendBolt, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown credential backend %q", config.Credential.Backend)
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Env),
		zap.String("api_base_url", c.API.BaseURL),
		zap.Duration("http_timeout", c.API.Timeout),
		zap.String("credential_backend", c.Credential.Backend),
		zap.String("log_level", c.Log.Level),
	}
}

func defaultCredentialPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "credentials.db"
	}
	return filepath.Join(home, ".stockmobile", "credentials.db")
}
