package invitationhandler

import (
	"context"

	"agentdesk/internal/domain"
	"agentdesk/internal/domain/invitation"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/interfaces/httpserver/requests/teamreq"
	"agentdesk/internal/interfaces/httpserver/responses/invres"
	"agentdesk/internal/interfaces/httpserver/responses/userres"
	"agentdesk/internal/utils/platformerrors"
)

type InvitationHandler struct {
	invitationService *invitation.Service
}

func NewInvitationHandler(invitationService *invitation.Service) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// Invite creates an invitation and returns the one-time token. The token
// is shown once and only its hash is stored.
func (h *InvitationHandler) Invite(
	ctx context.Context,
	principal domain.Principal,
	req teamreq.InviteRequest,
) (*invres.InvitationCreatedResponse, error) {
	inv, token, err := h.invitationService.Invite(ctx, principal.UserID, req.Email, req.Role)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create invitation")
	}
	return invres.NewInvitationCreatedResponse(inv, token), nil
}

// Accept redeems an invitation token and creates the member account.
func (h *InvitationHandler) Accept(
	ctx context.Context,
	req teamreq.AcceptInvitationRequest,
) (*userres.UserResponse, error) {
	u, err := h.invitationService.Accept(ctx, req.Token, req.Name, req.Password)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to accept invitation")
	}
	return userres.NewUserResponse(u), nil
}

// List returns invitations, newest first.
func (h *InvitationHandler) List(
	ctx context.Context,
	pagination query.Pagination,
) (*invres.InvitationListResponse, error) {
	invs, total, err := h.invitationService.List(ctx, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list invitations")
	}
	return invres.NewInvitationListResponse(invs, total), nil
}

// Revoke cancels a pending invitation.
func (h *InvitationHandler) Revoke(ctx context.Context, invitationID string) error {
	if err := h.invitationService.Revoke(ctx, invitationID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to revoke invitation")
	}
	return nil
}
