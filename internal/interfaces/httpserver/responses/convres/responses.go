// Package convres defines response payloads for conversation endpoints.
package convres

import (
	"time"

	"agentdesk/internal/domain/conversation"
)

type MessageSummaryResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationResponse struct {
	ID          string                  `json:"id"`
	GPTID       string                  `json:"gpt_id"`
	Title       string                  `json:"title"`
	LastMessage *MessageSummaryResponse `json:"last_message,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func NewConversationResponse(c *conversation.Conversation) *ConversationResponse {
	if c == nil {
		return nil
	}

	resp := &ConversationResponse{
		ID:        c.PublicID,
		GPTID:     c.GPTID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.LastMessage != nil {
		resp.LastMessage = &MessageSummaryResponse{
			Role:      c.LastMessage.Role,
			Content:   c.LastMessage.Content,
			CreatedAt: c.LastMessage.CreatedAt,
		}
	}
	return resp
}

type ConversationListResponse struct {
	Items []*ConversationResponse `json:"items"`
	Total int64                   `json:"total"`
}

func NewConversationListResponse(convs []*conversation.Conversation, total int64) *ConversationListResponse {
	items := make([]*ConversationResponse, 0, len(convs))
	for _, c := range convs {
		items = append(items, NewConversationResponse(c))
	}
	return &ConversationListResponse{Items: items, Total: total}
}

type MessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessageResponse(m *conversation.Message) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		ID:        m.PublicID,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

type MessageListResponse struct {
	Items []*MessageResponse `json:"items"`
	Total int64              `json:"total"`
}

func NewMessageListResponse(msgs []*conversation.Message, total int64) *MessageListResponse {
	items := make([]*MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, NewMessageResponse(m))
	}
	return &MessageListResponse{Items: items, Total: total}
}

type ExchangeResponse struct {
	Conversation *ConversationResponse `json:"conversation"`
	UserMessage  *MessageResponse      `json:"user_message,omitempty"`
	Assistant    *MessageResponse      `json:"assistant_message,omitempty"`
}

func NewExchangeResponse(c *conversation.Conversation, ex *conversation.Exchange) *ExchangeResponse {
	resp := &ExchangeResponse{Conversation: NewConversationResponse(c)}
	if ex != nil {
		resp.UserMessage = NewMessageResponse(ex.UserMessage)
		resp.Assistant = NewMessageResponse(ex.AssistantMessage)
	}
	return resp
}
