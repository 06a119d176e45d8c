package conversationrepo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdesk/internal/domain/conversation"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/infrastructure/database/mongodb"
)

// Integration coverage against a live server. Gated on MONGODB_TEST_URI, e.g.
//
//	MONGODB_TEST_URI=mongodb://localhost:27017 go test ./internal/infrastructure/database/repository/conversationrepo/
func testRepository(t *testing.T) (conversation.Repository, context.Context) {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	manager := mongodb.NewManager(mongodb.Config{URI: uri, Database: fmt.Sprintf("agentdesk_test_%d", time.Now().UnixNano())}, zerolog.Nop())
	db, err := manager.Database(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = manager.Disconnect(context.Background())
	})

	return NewConversationMongoRepository(mongodb.NewDocuments(db, zerolog.Nop())), ctx
}

func TestListMessagesKeepsInsertionOrderWithinMillisecond(t *testing.T) {
	repo, ctx := testRepository(t)

	// The two turns of one exchange are written back-to-back, well inside
	// BSON's millisecond datetime precision, so createdAt alone cannot
	// order them.
	turns := []struct {
		publicID string
		role     string
		content  string
	}{
		{"msg_0001", conversation.RoleUser, "What is our refund policy?"},
		{"msg_0002", conversation.RoleAssistant, "What is our refund policy?"},
		{"msg_0003", conversation.RoleUser, "And for digital goods?"},
		{"msg_0004", conversation.RoleAssistant, "And for digital goods?"},
	}
	for _, turn := range turns {
		_, err := repo.CreateMessage(ctx, &conversation.Message{
			PublicID:       turn.publicID,
			ConversationID: "conv-order",
			Role:           turn.role,
			Content:        turn.content,
		})
		require.NoError(t, err)
	}

	msgs, err := repo.ListMessages(ctx, "conv-order", query.Pagination{Limit: 10, Order: "asc"})
	require.NoError(t, err)
	require.Len(t, msgs, len(turns))
	for i, turn := range turns {
		assert.Equal(t, turn.publicID, msgs[i].PublicID)
		assert.Equal(t, turn.role, msgs[i].Role)
	}

	msgs, err = repo.ListMessages(ctx, "conv-order", query.Pagination{Limit: 10, Order: "desc"})
	require.NoError(t, err)
	require.Len(t, msgs, len(turns))
	assert.Equal(t, "msg_0004", msgs[0].PublicID)
	assert.Equal(t, "msg_0001", msgs[3].PublicID)
}
