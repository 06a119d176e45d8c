// Package dbschema defines the persisted document shapes and their
// conversions to and from the domain models.
package dbschema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names
const (
	CollectionUsers         = "users"
	CollectionCustomGPTs    = "custom_gpts"
	CollectionConversations = "conversations"
	CollectionMessages      = "messages"
	CollectionInvitations   = "invitations"
)

// BaseModel carries the fields shared by every persisted document.
type BaseModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty"`
}

// ObjectIDFromHex parses a domain ID back into an ObjectID. Invalid or
// empty strings return the zero ObjectID, which never matches an _id
// filter.
func ObjectIDFromHex(id string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}
