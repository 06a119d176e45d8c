package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// stubClient builds a client without any network I/O; the v1 driver dials
// lazily, so Connect with a loopback URI never touches the wire.
func stubClient(t *testing.T) *mongo.Client {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:27017"))
	require.NoError(t, err)
	return client
}

func TestConnectCachesHandle(t *testing.T) {
	manager := NewManager(Config{URI: "mongodb://127.0.0.1:27017", Database: "agentdesk"}, zerolog.Nop())

	dials := 0
	manager.dial = func(ctx context.Context, cfg Config) (*mongo.Client, error) {
		dials++
		return stubClient(t), nil
	}

	first, err := manager.Connect(context.Background())
	require.NoError(t, err)
	second, err := manager.Connect(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, dials)
}

func TestConnectDoesNotCacheFailure(t *testing.T) {
	manager := NewManager(Config{URI: "mongodb://127.0.0.1:27017", Database: "agentdesk"}, zerolog.Nop())

	dials := 0
	cause := errors.New("ping: no reachable servers")
	manager.dial = func(ctx context.Context, cfg Config) (*mongo.Client, error) {
		dials++
		if dials == 1 {
			return nil, cause
		}
		return stubClient(t), nil
	}

	_, err := manager.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, err, cause)

	// The failed attempt must not poison the cache.
	client, err := manager.Connect(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, 2, dials)
}

func TestConnectRejectsUnknownScheme(t *testing.T) {
	manager := NewManager(Config{URI: "postgres://localhost:5432/agentdesk", Database: "agentdesk"}, zerolog.Nop())
	manager.dial = func(ctx context.Context, cfg Config) (*mongo.Client, error) {
		t.Fatal("dial must not be reached for a malformed connection string")
		return nil, nil
	}

	_, err := manager.Connect(context.Background())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestValidateURI(t *testing.T) {
	assert.NoError(t, ValidateURI("mongodb://localhost:27017"))
	assert.NoError(t, ValidateURI("mongodb+srv://cluster0.example.net"))
	assert.ErrorIs(t, ValidateURI(""), ErrConfiguration)
	assert.ErrorIs(t, ValidateURI("   "), ErrConfiguration)
	assert.ErrorIs(t, ValidateURI("mysql://localhost:3306"), ErrConfiguration)
	assert.ErrorIs(t, ValidateURI("localhost:27017"), ErrConfiguration)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{URI: "mongodb://localhost:27017", Database: "agentdesk"}.withDefaults()

	assert.Equal(t, uint64(defaultMaxPoolSize), cfg.MaxPoolSize)
	assert.Equal(t, defaultConnectTimeout, cfg.ConnectTimeout)
	assert.Equal(t, defaultServerSelectionTimeout, cfg.ServerSelectionTimeout)
	assert.Equal(t, defaultSocketTimeout, cfg.SocketTimeout)
}

func TestDisconnectClearsCache(t *testing.T) {
	manager := NewManager(Config{URI: "mongodb://127.0.0.1:27017", Database: "agentdesk"}, zerolog.Nop())

	dials := 0
	manager.dial = func(ctx context.Context, cfg Config) (*mongo.Client, error) {
		dials++
		return stubClient(t), nil
	}

	_, err := manager.Connect(context.Background())
	require.NoError(t, err)
	require.NoError(t, manager.Disconnect(context.Background()))

	_, err = manager.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, dials)
}
