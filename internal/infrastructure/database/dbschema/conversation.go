package dbschema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"agentdesk/internal/domain/conversation"
)

// Conversation represents the persisted conversation document.
type Conversation struct {
	BaseModel   `bson:",inline"`
	PublicID    string          `bson:"publicId"`
	UserID      string          `bson:"userId"`
	GPTID       string          `bson:"gptId"`
	Title       string          `bson:"title"`
	LastMessage *MessageSummary `bson:"lastMessage,omitempty"`
	IsActive    bool            `bson:"isActive"`
}

// MessageSummary is the embedded preview of the latest message.
type MessageSummary struct {
	Role      string    `bson:"role"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"createdAt"`
}

// Message represents a persisted conversation turn.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PublicID       string             `bson:"publicId"`
	ConversationID string             `bson:"conversationId"`
	Role           string             `bson:"role"`
	Content        string             `bson:"content"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty"`
}

// NewSchemaConversation converts a domain conversation into a schema instance.
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	if c == nil {
		return nil
	}

	var last *MessageSummary
	if c.LastMessage != nil {
		last = &MessageSummary{
			Role:      c.LastMessage.Role,
			Content:   c.LastMessage.Content,
			CreatedAt: c.LastMessage.CreatedAt,
		}
	}

	return &Conversation{
		BaseModel: BaseModel{
			ID:        ObjectIDFromHex(c.ID),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID:    c.PublicID,
		UserID:      c.UserID,
		GPTID:       c.GPTID,
		Title:       c.Title,
		LastMessage: last,
		IsActive:    c.IsActive,
	}
}

// EtoD converts a schema conversation back to the domain representation.
func (c *Conversation) EtoD() *conversation.Conversation {
	if c == nil {
		return nil
	}

	var last *conversation.MessageSummary
	if c.LastMessage != nil {
		last = &conversation.MessageSummary{
			Role:      c.LastMessage.Role,
			Content:   c.LastMessage.Content,
			CreatedAt: c.LastMessage.CreatedAt,
		}
	}

	return &conversation.Conversation{
		ID:          c.ID.Hex(),
		PublicID:    c.PublicID,
		UserID:      c.UserID,
		GPTID:       c.GPTID,
		Title:       c.Title,
		LastMessage: last,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// NewSchemaMessage converts a domain message into a schema instance.
func NewSchemaMessage(m *conversation.Message) *Message {
	if m == nil {
		return nil
	}

	return &Message{
		ID:             ObjectIDFromHex(m.ID),
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

// EtoD converts a schema message back to the domain representation.
func (m *Message) EtoD() *conversation.Message {
	if m == nil {
		return nil
	}

	return &conversation.Message{
		ID:             m.ID.Hex(),
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}
