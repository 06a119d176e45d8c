package dbschema

import (
	"time"

	"agentdesk/internal/domain/invitation"
)

// Invitation represents the persisted invitation document. Tokens are
// stored hashed only.
type Invitation struct {
	BaseModel `bson:",inline"`
	Email     string    `bson:"email"`
	Role      string    `bson:"role"`
	TokenHash string    `bson:"tokenHash"`
	InvitedBy string    `bson:"invitedBy"`
	Status    string    `bson:"status"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// NewSchemaInvitation converts a domain invitation into a schema instance.
func NewSchemaInvitation(i *invitation.Invitation) *Invitation {
	if i == nil {
		return nil
	}

	return &Invitation{
		BaseModel: BaseModel{
			ID:        ObjectIDFromHex(i.ID),
			CreatedAt: i.CreatedAt,
			UpdatedAt: i.UpdatedAt,
		},
		Email:     i.Email,
		Role:      i.Role,
		TokenHash: i.TokenHash,
		InvitedBy: i.InvitedBy,
		Status:    i.Status,
		ExpiresAt: i.ExpiresAt,
	}
}

// EtoD converts a schema invitation back to the domain representation.
func (i *Invitation) EtoD() *invitation.Invitation {
	if i == nil {
		return nil
	}

	return &invitation.Invitation{
		ID:        i.ID.Hex(),
		Email:     i.Email,
		Role:      i.Role,
		TokenHash: i.TokenHash,
		InvitedBy: i.InvitedBy,
		Status:    i.Status,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
