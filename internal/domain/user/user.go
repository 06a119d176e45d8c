// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"sort"
	"time"

	"agentdesk/internal/domain/query"
)

// Roles assignable to a user.
const (
	RoleAdmin  = "admin"
	RoleUser = "user"
)

// User models a workspace member. APIKeys maps a model provider name to
// the encrypted key stored for it.
type User struct {
	ID               string
	Name             string
	Email            string
	Role             string
	PasswordHash     string
	APIKeys          map[string]string
	ProfilePictureID string
	IsVerified       bool
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// HasAPIKey reports whether a key is stored for the provider.
func (u *User) HasAPIKey(provider string) bool {
	return u != nil && u.APIKeys[provider] != ""
}

// APIKeyProviders lists the providers a key is stored for, sorted.
func (u *User) APIKeyProviders() []string {
	if u == nil || len(u.APIKeys) == 0 {
		return []string{}
	}
	providers := make([]string, 0, len(u.APIKeys))
	for provider := range u.APIKeys {
		providers = append(providers, provider)
	}
	sort.Strings(providers)
	return providers
}

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// Repository defines storage operations for users. Find methods return
// (nil, nil) when no document matches.
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, pagination query.Pagination) ([]*User, error)
	Count(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, id string, input ProfileUpdate) (bool, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) (bool, error)
	UpdateRole(ctx context.Context, id, role string) (bool, error)
	UpdateAPIKey(ctx context.Context, id, provider, encrypted string) (bool, error)
	RemoveAPIKey(ctx context.Context, id, provider string) (bool, error)
	Deactivate(ctx context.Context, id string) (bool, error)
}

// ProfileUpdate carries the mutable profile fields. A nil ProfilePictureID
// leaves the stored reference untouched.
type ProfileUpdate struct {
	Name             string
	ProfilePictureID *string
}

// PasswordHasher abstracts the password hashing scheme.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// APIKeyCipher protects stored model provider keys at rest.
type APIKeyCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}
