package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"agentdesk/internal/config"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/infrastructure/auth"
	"agentdesk/internal/infrastructure/crontab"
	"agentdesk/internal/infrastructure/database/mongodb"
	"agentdesk/internal/infrastructure/database/repository"
	"agentdesk/internal/infrastructure/logger"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideMongoManager provides the connection manager for the document store.
func ProvideMongoManager(cfg *config.Config, log zerolog.Logger) *mongodb.Manager {
	return mongodb.NewManager(cfg.MongoConfig(), log)
}

// ProvideDocuments establishes the initial connection and provides the
// document access layer. Startup fails fast when the store is
// unreachable.
func ProvideDocuments(cfg *config.Config, manager *mongodb.Manager, log zerolog.Logger) (*mongodb.Documents, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
	defer cancel()

	db, err := manager.Database(ctx)
	if err != nil {
		return nil, err
	}
	return mongodb.NewDocuments(db, log), nil
}

// Infrastructure holds the long-lived infrastructure handles.
type Infrastructure struct {
	Mongo  *mongodb.Manager
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(mongo *mongodb.Manager, log zerolog.Logger) *Infrastructure {
	return &Infrastructure{
		Mongo:  mongo,
		Logger: log,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Document store
	ProvideMongoManager,
	ProvideDocuments,

	// Repositories
	repository.RepositoryProvider,

	// Credentials
	auth.NewBcryptHasher,
	wire.Bind(new(user.PasswordHasher), new(*auth.BcryptHasher)),
	auth.NewAPIKeyCipher,
	wire.Bind(new(user.APIKeyCipher), new(*auth.APIKeyCipher)),
	auth.NewTokenIssuer,

	// Logger
	logger.GetLogger,

	// Crontab for invitation expiry
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
