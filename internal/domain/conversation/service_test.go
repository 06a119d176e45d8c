package conversation

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdesk/internal/domain"
	"agentdesk/internal/domain/customgpt"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/utils/platformerrors"
)

type fakeRepo struct {
	convs    map[string]*Conversation
	msgs     []*Message
	nextConv int
	nextMsg  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{convs: map[string]*Conversation{}}
}

func (r *fakeRepo) CreateConversation(_ context.Context, conv *Conversation) (*Conversation, error) {
	r.nextConv++
	conv.ID = fmt.Sprintf("c-%d", r.nextConv)
	r.convs[conv.ID] = conv
	return conv, nil
}

func (r *fakeRepo) FindConversationByPublicID(_ context.Context, publicID string) (*Conversation, error) {
	for _, conv := range r.convs {
		if conv.PublicID == publicID {
			return conv, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListConversationsByUser(_ context.Context, userID string, _ query.Pagination) ([]*Conversation, error) {
	var out []*Conversation
	for _, conv := range r.convs {
		if conv.UserID == userID {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountConversationsByUser(ctx context.Context, userID string) (int64, error) {
	convs, _ := r.ListConversationsByUser(ctx, userID, query.Pagination{})
	return int64(len(convs)), nil
}

func (r *fakeRepo) UpdateTitle(_ context.Context, id, title string) (bool, error) {
	conv, ok := r.convs[id]
	if ok {
		conv.Title = title
	}
	return ok, nil
}

func (r *fakeRepo) UpdateLastMessage(_ context.Context, id string, summary MessageSummary) (bool, error) {
	conv, ok := r.convs[id]
	if ok {
		conv.LastMessage = &summary
	}
	return ok, nil
}

func (r *fakeRepo) DeactivateConversation(_ context.Context, id string) (bool, error) {
	conv, ok := r.convs[id]
	if ok {
		conv.IsActive = false
	}
	return ok, nil
}

func (r *fakeRepo) CreateMessage(_ context.Context, msg *Message) (*Message, error) {
	r.nextMsg++
	msg.ID = fmt.Sprintf("m-%d", r.nextMsg)
	r.msgs = append(r.msgs, msg)
	return msg, nil
}

func (r *fakeRepo) ListMessages(_ context.Context, conversationID string, pagination query.Pagination) ([]*Message, error) {
	var out []*Message
	for _, msg := range r.msgs {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if pagination.SortValue() < 0 {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeRepo) CountMessages(ctx context.Context, conversationID string) (int64, error) {
	msgs, _ := r.ListMessages(ctx, conversationID, query.Pagination{})
	return int64(len(msgs)), nil
}

type fakeGPTRepo struct {
	customgpt.Repository
	gpts map[string]*customgpt.CustomGPT
}

func (r *fakeGPTRepo) FindByID(_ context.Context, id string) (*customgpt.CustomGPT, error) {
	return r.gpts[id], nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	gpts := &fakeGPTRepo{gpts: map[string]*customgpt.CustomGPT{
		"gpt-1": {ID: "gpt-1", Name: "Helper", AssignedUserIDs: []string{"member-1"}, IsActive: true},
		"gpt-2": {ID: "gpt-2", Name: "Retired", IsActive: false},
	}}
	return NewService(repo, gpts, NewEchoResponder()), repo
}

var member = domain.Principal{UserID: "member-1"}

func TestStartRequiresUsableAssistant(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Start(ctx, domain.Principal{UserID: "member-2"}, "gpt-1", "")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	_, _, err = svc.Start(ctx, member, "gpt-2", "")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	conv, exchange, err := svc.Start(ctx, member, "gpt-1", "")
	require.NoError(t, err)
	assert.Nil(t, exchange)
	assert.Equal(t, "New conversation", conv.Title)
	assert.Contains(t, conv.PublicID, "conv_")
}

func TestStartWithFirstMessageRunsExchange(t *testing.T) {
	svc, repo := newTestService()

	conv, exchange, err := svc.Start(context.Background(), member, "gpt-1", "How do refunds work?")
	require.NoError(t, err)
	require.NotNil(t, exchange)
	assert.Equal(t, "How do refunds work?", conv.Title)
	assert.Equal(t, RoleUser, exchange.UserMessage.Role)
	assert.Equal(t, RoleAssistant, exchange.AssistantMessage.Role)
	assert.Contains(t, exchange.AssistantMessage.Content, "Helper")
	require.NotNil(t, repo.convs[conv.ID].LastMessage)
	assert.Equal(t, RoleAssistant, repo.convs[conv.ID].LastMessage.Role)
}

func TestSendMessageUpdatesPreview(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	conv, _, err := svc.Start(ctx, member, "gpt-1", "")
	require.NoError(t, err)

	exchange, err := svc.SendMessage(ctx, member, conv.PublicID, "Hello there")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", exchange.UserMessage.Content)

	stored := repo.convs[conv.ID]
	require.NotNil(t, stored.LastMessage)
	assert.Contains(t, stored.LastMessage.Content, "Hello there")

	msgs, total, err := svc.ListMessages(ctx, member, conv.PublicID, query.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
}

type recordingResponder struct {
	histories [][]*Message
}

func (r *recordingResponder) Respond(_ context.Context, _ *customgpt.CustomGPT, history []*Message, userMessage string) (string, error) {
	copied := make([]*Message, len(history))
	copy(copied, history)
	r.histories = append(r.histories, copied)
	return "reply to " + userMessage, nil
}

func TestResponderReceivesChronologicalHistory(t *testing.T) {
	repo := newFakeRepo()
	gpts := &fakeGPTRepo{gpts: map[string]*customgpt.CustomGPT{
		"gpt-1": {ID: "gpt-1", Name: "Helper", AssignedUserIDs: []string{"member-1"}, IsActive: true},
	}}
	responder := &recordingResponder{}
	svc := NewService(repo, gpts, responder)
	ctx := context.Background()

	conv, _, err := svc.Start(ctx, member, "gpt-1", "first question")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, member, conv.PublicID, "second question")
	require.NoError(t, err)

	require.Len(t, responder.histories, 2)
	history := responder.histories[1]
	require.Len(t, history, 3)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "first question", history[0].Content)
	assert.Equal(t, RoleAssistant, history[1].Role)
	assert.Equal(t, RoleUser, history[2].Role)
	assert.Equal(t, "second question", history[2].Content)
}

func TestSendMessageValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	conv, _, err := svc.Start(ctx, member, "gpt-1", "")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, member, conv.PublicID, "  ")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	require.NoError(t, svc.Deactivate(ctx, member, conv.PublicID))
	_, err = svc.SendMessage(ctx, member, conv.PublicID, "Hello")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestConversationsArePrivateToOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	conv, _, err := svc.Start(ctx, member, "gpt-1", "")
	require.NoError(t, err)

	admin := domain.Principal{UserID: "admin-1", IsAdmin: true}
	_, err = svc.Get(ctx, admin, conv.PublicID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	_, _, err = svc.ListMessages(ctx, admin, conv.PublicID, query.Pagination{})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	got, err := svc.Get(ctx, member, conv.PublicID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)
}

func TestRename(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	conv, _, err := svc.Start(ctx, member, "gpt-1", "")
	require.NoError(t, err)

	err = svc.Rename(ctx, member, conv.PublicID, "  ")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	require.NoError(t, svc.Rename(ctx, member, conv.PublicID, "Refund questions"))
	assert.Equal(t, "Refund questions", repo.convs[conv.ID].Title)
}

func TestTruncateKeepsShortStrings(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := truncate("abcdefghijk", 10)
	assert.Equal(t, 10, len([]rune(long)))
}
