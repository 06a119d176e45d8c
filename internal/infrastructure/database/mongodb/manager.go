// Package mongodb holds the MongoDB connection manager and the generic
// document access layer the domain repositories are built on.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Sentinel errors for connection establishment. Driver-level failures during
// document operations are classified separately, see documents.go.
var (
	// ErrConfiguration marks a missing or malformed connection string.
	ErrConfiguration = errors.New("mongodb: invalid configuration")
	// ErrConnection marks a failed liveness check while dialing.
	ErrConnection = errors.New("mongodb: connection failed")
)

const (
	defaultMaxPoolSize            = 20
	defaultConnectTimeout         = 10 * time.Second
	defaultServerSelectionTimeout = 5 * time.Second
	defaultSocketTimeout          = 30 * time.Second
)

// Config holds connection configuration for the document store.
type Config struct {
	URI                    string
	Database               string
	MaxPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
}

func (cfg Config) withDefaults() Config {
	if cfg.MaxPoolSize == 0 {
		cfg.MaxPoolSize = defaultMaxPoolSize
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.ServerSelectionTimeout == 0 {
		cfg.ServerSelectionTimeout = defaultServerSelectionTimeout
	}
	if cfg.SocketTimeout == 0 {
		cfg.SocketTimeout = defaultSocketTimeout
	}
	return cfg
}

type dialFunc func(ctx context.Context, cfg Config) (*mongo.Client, error)

// Manager lazily establishes and caches a single client for the process
// lifetime. It is an injected dependency rather than a package-level
// singleton so tests can substitute a fresh instance or a stub dialer.
type Manager struct {
	mu     sync.Mutex
	cfg    Config
	client *mongo.Client
	dial   dialFunc
	logger zerolog.Logger
}

// NewManager constructs a Manager. No I/O happens until Connect.
func NewManager(cfg Config, logger zerolog.Logger) *Manager {
	return &Manager{
		cfg:    cfg.withDefaults(),
		dial:   dialAndPing,
		logger: logger,
	}
}

// Connect returns the cached client, dialing on first use. The client is
// cached only after a successful liveness check, so a transient failure on
// the first attempt is retried by the next caller instead of poisoning the
// cache.
func (m *Manager) Connect(ctx context.Context) (*mongo.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}

	if err := ValidateURI(m.cfg.URI); err != nil {
		return nil, err
	}

	client, err := m.dial(ctx, m.cfg)
	if err != nil {
		m.logger.Error().
			Str("error_code", "8c4f1b6a-0d2e-4f3a-9b7c-5e6d8a9f0c1b").
			Err(err).
			Msg("unable to connect to document store")
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	m.logger.Info().Str("database", m.cfg.Database).Msg("connected to document store")
	m.client = client
	return m.client, nil
}

// Database returns a handle on the configured database, connecting if needed.
func (m *Manager) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := m.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(m.cfg.Database), nil
}

// Ping checks liveness against the primary. Used by readiness probes.
func (m *Manager) Ping(ctx context.Context) error {
	client, err := m.Connect(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, readpref.Primary())
}

// Disconnect tears down the cached client, if any.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}

// ValidateURI rejects connection strings that are empty or do not declare a
// MongoDB scheme. Called before any network I/O.
func ValidateURI(uri string) error {
	if strings.TrimSpace(uri) == "" {
		return fmt.Errorf("%w: connection string is required", ErrConfiguration)
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return fmt.Errorf("%w: connection string must start with mongodb:// or mongodb+srv://", ErrConfiguration)
	}
	return nil
}

func dialAndPing(ctx context.Context, cfg Config) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ServerSelectionTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
