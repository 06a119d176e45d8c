package conversationhandler

import (
	"context"

	"agentdesk/internal/domain"
	"agentdesk/internal/domain/conversation"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/infrastructure/metrics"
	"agentdesk/internal/interfaces/httpserver/requests/convreq"
	"agentdesk/internal/interfaces/httpserver/responses/convres"
	"agentdesk/internal/utils/platformerrors"
)

type ConversationHandler struct {
	convService *conversation.Service
}

func NewConversationHandler(convService *conversation.Service) *ConversationHandler {
	return &ConversationHandler{convService: convService}
}

// Start opens a conversation with an assistant, optionally running the
// first exchange in the same call.
func (h *ConversationHandler) Start(
	ctx context.Context,
	principal domain.Principal,
	req convreq.StartConversationRequest,
) (*convres.ExchangeResponse, error) {
	conv, exchange, err := h.convService.Start(ctx, principal, req.GPTID, req.Message)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to start conversation")
	}

	metrics.ConversationsCreatedTotal.Inc()
	recordExchange(exchange)

	return convres.NewExchangeResponse(conv, exchange), nil
}

// SendMessage appends a user message and returns the assistant reply.
func (h *ConversationHandler) SendMessage(
	ctx context.Context,
	principal domain.Principal,
	conversationID string,
	req convreq.SendMessageRequest,
) (*convres.ExchangeResponse, error) {
	exchange, err := h.convService.SendMessage(ctx, principal, conversationID, req.Content)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to send message")
	}

	recordExchange(exchange)

	conv, err := h.convService.Get(ctx, principal, conversationID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to reload conversation")
	}

	return convres.NewExchangeResponse(conv, exchange), nil
}

// Get returns a single conversation owned by the caller.
func (h *ConversationHandler) Get(
	ctx context.Context,
	principal domain.Principal,
	conversationID string,
) (*convres.ConversationResponse, error) {
	conv, err := h.convService.Get(ctx, principal, conversationID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get conversation")
	}
	return convres.NewConversationResponse(conv), nil
}

// List returns the caller's conversations, most recently active first.
func (h *ConversationHandler) List(
	ctx context.Context,
	principal domain.Principal,
	pagination query.Pagination,
) (*convres.ConversationListResponse, error) {
	convs, total, err := h.convService.List(ctx, principal, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list conversations")
	}
	return convres.NewConversationListResponse(convs, total), nil
}

// ListMessages returns the transcript of a conversation in chronological order.
func (h *ConversationHandler) ListMessages(
	ctx context.Context,
	principal domain.Principal,
	conversationID string,
	pagination query.Pagination,
) (*convres.MessageListResponse, error) {
	msgs, total, err := h.convService.ListMessages(ctx, principal, conversationID, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list messages")
	}
	return convres.NewMessageListResponse(msgs, total), nil
}

// Rename sets a conversation title.
func (h *ConversationHandler) Rename(
	ctx context.Context,
	principal domain.Principal,
	conversationID string,
	req convreq.RenameConversationRequest,
) error {
	if err := h.convService.Rename(ctx, principal, conversationID, req.Title); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to rename conversation")
	}
	return nil
}

// Deactivate closes a conversation.
func (h *ConversationHandler) Deactivate(
	ctx context.Context,
	principal domain.Principal,
	conversationID string,
) error {
	if err := h.convService.Deactivate(ctx, principal, conversationID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to close conversation")
	}
	return nil
}

func recordExchange(ex *conversation.Exchange) {
	if ex == nil {
		return
	}
	if ex.UserMessage != nil {
		metrics.RecordMessage(ex.UserMessage.Role)
	}
	if ex.AssistantMessage != nil {
		metrics.RecordMessage(ex.AssistantMessage.Role)
	}
}
