// Package userres defines response payloads for account endpoints.
package userres

import (
	"time"

	"agentdesk/internal/domain/user"
)

// UserResponse exposes account attributes. Stored provider keys are
// never returned; only the provider names are listed.
type UserResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	APIKeyProviders  []string  `json:"api_key_providers"`
	ProfilePictureID string    `json:"profile_picture_id,omitempty"`
	IsVerified       bool      `json:"is_verified"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		APIKeyProviders:  u.APIKeyProviders(),
		ProfilePictureID: u.ProfilePictureID,
		IsVerified:       u.IsVerified,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

type UserListResponse struct {
	Items []*UserResponse `json:"items"`
	Total int64           `json:"total"`
}

func NewUserListResponse(users []*user.User, total int64) *UserListResponse {
	items := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, NewUserResponse(u))
	}
	return &UserListResponse{Items: items, Total: total}
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	User        *UserResponse `json:"user"`
}

func NewLoginResponse(token string, expiresAt time.Time, u *user.User) *LoginResponse {
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        NewUserResponse(u),
	}
}
