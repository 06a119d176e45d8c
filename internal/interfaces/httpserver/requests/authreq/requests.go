// Package authreq defines request payloads for account endpoints.
package authreq

// RegisterRequest creates the first admin account or, later, additional
// accounts created by an admin.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest renames the account. ProfilePictureID is an
// opaque reference managed by the client; omit it to keep the current
// picture, send an empty string to clear it.
type UpdateProfileRequest struct {
	Name             string  `json:"name" binding:"required"`
	ProfilePictureID *string `json:"profile_picture_id"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type SetAPIKeyRequest struct {
	Provider string `json:"provider" binding:"required"`
	APIKey   string `json:"api_key" binding:"required"`
}
