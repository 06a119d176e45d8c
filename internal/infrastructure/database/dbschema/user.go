package dbschema

import (
	"agentdesk/internal/domain/user"
)

// User represents the persisted user document.
type User struct {
	BaseModel        `bson:",inline"`
	Name             string            `bson:"name"`
	Email            string            `bson:"email"`
	Role             string            `bson:"role"`
	PasswordHash     string            `bson:"passwordHash"`
	APIKeys          map[string]string `bson:"apiKeys,omitempty"`
	ProfilePictureID string            `bson:"profilePictureId,omitempty"`
	IsVerified       bool              `bson:"isVerified"`
	IsActive         bool              `bson:"isActive"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		BaseModel: BaseModel{
			ID:        ObjectIDFromHex(u.ID),
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		PasswordHash:     u.PasswordHash,
		APIKeys:          u.APIKeys,
		ProfilePictureID: u.ProfilePictureID,
		IsVerified:       u.IsVerified,
		IsActive:         u.IsActive,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:               u.ID.Hex(),
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		PasswordHash:     u.PasswordHash,
		APIKeys:          u.APIKeys,
		ProfilePictureID: u.ProfilePictureID,
		IsVerified:       u.IsVerified,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
