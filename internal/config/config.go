package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"agentdesk/internal/infrastructure/database/mongodb"
)

// Version is overridden at build time via ldflags.
var Version = "dev"

// Global singleton kept for the periodic env reload job
var globalConfig *Config

// Config holds all environment backed configuration for gpt-api.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	// Document store
	MongoURI                    string        `env:"MONGODB_URI,notEmpty"`
	MongoDatabase               string        `env:"MONGODB_DATABASE" envDefault:"agentdesk"`
	MongoMaxPoolSize            uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"20"`
	MongoConnectTimeout         time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MongoServerSelectionTimeout time.Duration `env:"MONGODB_SERVER_SELECTION_TIMEOUT" envDefault:"5s"`
	MongoSocketTimeout          time.Duration `env:"MONGODB_SOCKET_TIMEOUT" envDefault:"30s"`

	// Auth
	JWTSecret      string        `env:"JWT_SECRET,notEmpty"`
	Issuer         string        `env:"ISSUER" envDefault:"agentdesk"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
	APIKeySecret   string        `env:"APIKEY_SECRET"`

	// Invitations
	InvitationTTL          time.Duration `env:"INVITATION_TTL" envDefault:"168h"`
	InvitationSweepMinutes int           `env:"INVITATION_SWEEP_MINUTES" envDefault:"15"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"gpt-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"agentdesk"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	EnableSwagger bool   `env:"ENABLE_SWAGGER" envDefault:"true"`
	BootstrapFile string `env:"BOOTSTRAP_FILE"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := mongodb.ValidateURI(cfg.MongoURI); err != nil {
		return nil, err
	}

	if len(cfg.JWTSecret) < 16 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 16 bytes")
	}

	if cfg.APIKeySecret == "" {
		cfg.APIKeySecret = cfg.JWTSecret
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg
	return cfg, nil
}

// GetGlobal returns the most recently loaded configuration, or nil before Load.
func GetGlobal() *Config {
	return globalConfig
}

// MongoConfig maps the env-backed settings onto the connection manager config.
func (cfg *Config) MongoConfig() mongodb.Config {
	return mongodb.Config{
		URI:                    cfg.MongoURI,
		Database:               cfg.MongoDatabase,
		MaxPoolSize:            cfg.MongoMaxPoolSize,
		ConnectTimeout:         cfg.MongoConnectTimeout,
		ServerSelectionTimeout: cfg.MongoServerSelectionTimeout,
		SocketTimeout:          cfg.MongoSocketTimeout,
	}
}
