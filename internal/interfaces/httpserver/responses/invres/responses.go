// Package invres defines response payloads for invitation endpoints.
package invres

import (
	"time"

	"agentdesk/internal/domain/invitation"
)

type InvitationResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	InvitedBy string    `json:"invited_by"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func NewInvitationResponse(inv *invitation.Invitation) *InvitationResponse {
	if inv == nil {
		return nil
	}
	return &InvitationResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      inv.Role,
		Status:    inv.Status,
		InvitedBy: inv.InvitedBy,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}

// InvitationCreatedResponse carries the one-time token. It is returned
// only on creation and is never recoverable afterwards.
type InvitationCreatedResponse struct {
	Invitation *InvitationResponse `json:"invitation"`
	Token      string              `json:"token"`
}

func NewInvitationCreatedResponse(inv *invitation.Invitation, token string) *InvitationCreatedResponse {
	return &InvitationCreatedResponse{
		Invitation: NewInvitationResponse(inv),
		Token:      token,
	}
}

type InvitationListResponse struct {
	Items []*InvitationResponse `json:"items"`
	Total int64                 `json:"total"`
}

func NewInvitationListResponse(invs []*invitation.Invitation, total int64) *InvitationListResponse {
	items := make([]*InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		items = append(items, NewInvitationResponse(inv))
	}
	return &InvitationListResponse{Items: items, Total: total}
}
