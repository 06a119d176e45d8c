package conversation

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"agentdesk/internal/domain"
	"agentdesk/internal/domain/customgpt"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/utils/idgen"
	"agentdesk/internal/utils/platformerrors"
)

const (
	conversationIDPrefix = "conv_"
	messageIDPrefix      = "msg_"

	// historyWindow caps how many prior turns are handed to the responder.
	historyWindow = 20

	titleMaxLen   = 60
	previewMaxLen = 120
)

// Exchange bundles the two messages produced by one SendMessage call.
type Exchange struct {
	UserMessage      *Message
	AssistantMessage *Message
}

// Service implements chat flows on top of the repository.
type Service struct {
	repo      Repository
	gpts      customgpt.Repository
	responder Responder
	now       func() time.Time
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, gpts customgpt.Repository, responder Responder) *Service {
	return &Service{repo: repo, gpts: gpts, responder: responder, now: time.Now}
}

// Start opens a conversation against an assistant the principal may
// use. When firstMessage is non empty the first exchange runs
// immediately and titles the conversation.
func (s *Service) Start(ctx context.Context, principal domain.Principal, gptID, firstMessage string) (*Conversation, *Exchange, error) {
	gpt, err := s.usableGPT(ctx, principal, gptID)
	if err != nil {
		return nil, nil, err
	}

	publicID, err := idgen.GenerateSecureID(conversationIDPrefix, 24)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate conversation id")
	}

	title := "New conversation"
	if strings.TrimSpace(firstMessage) != "" {
		title = truncate(strings.TrimSpace(firstMessage), titleMaxLen)
	}

	conv, err := s.repo.CreateConversation(ctx, &Conversation{
		PublicID: publicID,
		UserID:   principal.UserID,
		GPTID:    gpt.ID,
		Title:    title,
		IsActive: true,
	})
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}

	var exchange *Exchange
	if strings.TrimSpace(firstMessage) != "" {
		exchange, err = s.exchange(ctx, conv, gpt, firstMessage)
		if err != nil {
			return nil, nil, err
		}
		conv.LastMessage = &MessageSummary{
			Role:      RoleAssistant,
			Content:   truncate(exchange.AssistantMessage.Content, previewMaxLen),
			CreatedAt: exchange.AssistantMessage.CreatedAt,
		}
	}
	return conv, exchange, nil
}

// SendMessage appends a user turn, produces the assistant reply, and
// refreshes the conversation preview.
func (s *Service) SendMessage(ctx context.Context, principal domain.Principal, conversationPublicID, content string) (*Exchange, error) {
	if strings.TrimSpace(content) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "message content is required", nil, "3d4e0268-593c-4b0c-b0aa-ff92a06c41f2")
	}

	conv, err := s.ownedConversation(ctx, principal, conversationPublicID)
	if err != nil {
		return nil, err
	}
	if !conv.IsActive {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "conversation is closed", nil, "26e5e937-ae7c-4c05-b153-520e6a343951")
	}

	gpt, err := s.gpts.FindByID(ctx, conv.GPTID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load assistant")
	}

	return s.exchange(ctx, conv, gpt, content)
}

// Get resolves a conversation owned by the principal.
func (s *Service) Get(ctx context.Context, principal domain.Principal, publicID string) (*Conversation, error) {
	return s.ownedConversation(ctx, principal, publicID)
}

// List returns the principal's conversations plus the total count.
func (s *Service) List(ctx context.Context, principal domain.Principal, pagination query.Pagination) ([]*Conversation, int64, error) {
	pagination = pagination.Normalize()

	convs, err := s.repo.ListConversationsByUser(ctx, principal.UserID, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}
	total, err := s.repo.CountConversationsByUser(ctx, principal.UserID)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count conversations")
	}
	return convs, total, nil
}

// ListMessages returns a page of turns from an owned conversation in
// chronological order.
func (s *Service) ListMessages(ctx context.Context, principal domain.Principal, publicID string, pagination query.Pagination) ([]*Message, int64, error) {
	conv, err := s.ownedConversation(ctx, principal, publicID)
	if err != nil {
		return nil, 0, err
	}

	pagination = pagination.Normalize()
	pagination.Order = "asc"

	msgs, err := s.repo.ListMessages(ctx, conv.ID, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list messages")
	}
	total, err := s.repo.CountMessages(ctx, conv.ID)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count messages")
	}
	return msgs, total, nil
}

// Rename sets a new conversation title.
func (s *Service) Rename(ctx context.Context, principal domain.Principal, publicID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "title is required", nil, "a03e95ba-1535-4351-b5d3-91c398d59e9a")
	}

	conv, err := s.ownedConversation(ctx, principal, publicID)
	if err != nil {
		return err
	}
	if _, err := s.repo.UpdateTitle(ctx, conv.ID, truncate(title, titleMaxLen)); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to rename conversation")
	}
	return nil
}

// Deactivate soft deletes an owned conversation.
func (s *Service) Deactivate(ctx context.Context, principal domain.Principal, publicID string) error {
	conv, err := s.ownedConversation(ctx, principal, publicID)
	if err != nil {
		return err
	}
	if _, err := s.repo.DeactivateConversation(ctx, conv.ID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to deactivate conversation")
	}
	return nil
}

func (s *Service) exchange(ctx context.Context, conv *Conversation, gpt *customgpt.CustomGPT, content string) (*Exchange, error) {
	userMsg, err := s.appendMessage(ctx, conv.ID, RoleUser, content)
	if err != nil {
		return nil, err
	}

	// Fetch newest-first to cap the window at the most recent turns, then
	// flip to the chronological order the Responder contract expects.
	history, err := s.repo.ListMessages(ctx, conv.ID, query.Pagination{Limit: historyWindow, Order: "desc"})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load history")
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	reply, err := s.responder.Respond(ctx, gpt, history, content)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "assistant failed to respond", err, "68233f74-b9f1-4cf9-8bbf-5e24c8cdffbb")
	}

	assistantMsg, err := s.appendMessage(ctx, conv.ID, RoleAssistant, reply)
	if err != nil {
		return nil, err
	}

	summary := MessageSummary{
		Role:      RoleAssistant,
		Content:   truncate(reply, previewMaxLen),
		CreatedAt: assistantMsg.CreatedAt,
	}
	if _, err := s.repo.UpdateLastMessage(ctx, conv.ID, summary); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update conversation preview")
	}

	return &Exchange{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

func (s *Service) appendMessage(ctx context.Context, conversationID, role, content string) (*Message, error) {
	publicID, err := idgen.GenerateSecureID(messageIDPrefix, 24)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate message id")
	}
	msg, err := s.repo.CreateMessage(ctx, &Message{
		PublicID:       publicID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to store message")
	}
	return msg, nil
}

// ownedConversation resolves the conversation and enforces that only
// its owner can see it. Ownership failures look identical to a missing
// conversation.
func (s *Service) ownedConversation(ctx context.Context, principal domain.Principal, publicID string) (*Conversation, error) {
	conv, err := s.repo.FindConversationByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to find conversation")
	}
	if conv == nil || conv.UserID != principal.UserID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "afd7c9bc-23b3-4191-829b-104ee20f5511")
	}
	return conv, nil
}

func (s *Service) usableGPT(ctx context.Context, principal domain.Principal, gptID string) (*customgpt.CustomGPT, error) {
	gpt, err := s.gpts.FindByID(ctx, gptID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to find assistant")
	}
	if gpt == nil || !gpt.IsActive || (!principal.IsAdmin && !gpt.IsAssigned(principal.UserID)) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "assistant not found", nil, "e7134938-103f-4d70-884c-0161cdc39b99")
	}
	return gpt, nil
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
