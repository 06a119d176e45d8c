// Package teamreq defines request payloads for team and invitation endpoints.
package teamreq

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=admin user"`
}

type AcceptInvitationRequest struct {
	Token    string `json:"token" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
