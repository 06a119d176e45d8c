// Package conversation provides the chat domain models and behaviors.
package conversation

import (
	"context"
	"time"

	"agentdesk/internal/domain/customgpt"
	"agentdesk/internal/domain/query"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MessageSummary is the denormalized preview of the latest message,
// stored on the conversation for cheap list rendering.
type MessageSummary struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

// Conversation models a chat between one user and one assistant.
type Conversation struct {
	ID          string
	PublicID    string
	UserID      string
	GPTID       string
	Title       string
	LastMessage *MessageSummary
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Message models a single turn within a conversation.
type Message struct {
	ID             string
	PublicID       string
	ConversationID string
	Role           string
	Content        string
	CreatedAt      time.Time
}

// Repository defines storage operations for conversations and their
// messages. Find methods return (nil, nil) when no document matches.
type Repository interface {
	CreateConversation(ctx context.Context, conv *Conversation) (*Conversation, error)
	FindConversationByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	ListConversationsByUser(ctx context.Context, userID string, pagination query.Pagination) ([]*Conversation, error)
	CountConversationsByUser(ctx context.Context, userID string) (int64, error)
	UpdateTitle(ctx context.Context, id, title string) (bool, error)
	UpdateLastMessage(ctx context.Context, id string, summary MessageSummary) (bool, error)
	DeactivateConversation(ctx context.Context, id string) (bool, error)
	CreateMessage(ctx context.Context, msg *Message) (*Message, error)
	ListMessages(ctx context.Context, conversationID string, pagination query.Pagination) ([]*Message, error)
	CountMessages(ctx context.Context, conversationID string) (int64, error)
}

// Responder produces the assistant reply for a user message. history is
// the preceding turns in chronological order, oldest first.
type Responder interface {
	Respond(ctx context.Context, gpt *customgpt.CustomGPT, history []*Message, userMessage string) (string, error)
}
