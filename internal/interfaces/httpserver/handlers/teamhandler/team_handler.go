package teamhandler

import (
	"context"

	"agentdesk/internal/domain"
	"agentdesk/internal/domain/query"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/interfaces/httpserver/requests/teamreq"
	"agentdesk/internal/interfaces/httpserver/responses/userres"
	"agentdesk/internal/utils/platformerrors"
)

type TeamHandler struct {
	userService *user.Service
}

func NewTeamHandler(userService *user.Service) *TeamHandler {
	return &TeamHandler{userService: userService}
}

// List returns the active members of the workspace.
func (h *TeamHandler) List(
	ctx context.Context,
	pagination query.Pagination,
) (*userres.UserListResponse, error) {
	users, total, err := h.userService.List(ctx, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list members")
	}
	return userres.NewUserListResponse(users, total), nil
}

// Get returns a single member.
func (h *TeamHandler) Get(ctx context.Context, userID string) (*userres.UserResponse, error) {
	u, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get member")
	}
	return userres.NewUserResponse(u), nil
}

// ChangeRole promotes or demotes a member. Admins cannot demote themselves.
func (h *TeamHandler) ChangeRole(
	ctx context.Context,
	principal domain.Principal,
	userID string,
	req teamreq.ChangeRoleRequest,
) (*userres.UserResponse, error) {
	if userID == principal.UserID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation, "cannot change your own role", nil,
			"ab9f3a78-980a-479c-a7a7-4c95f5ef391c")
	}
	if err := h.userService.ChangeRole(ctx, userID, req.Role); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to change role")
	}
	return h.Get(ctx, userID)
}

// Deactivate removes a member from the workspace. Self-removal is rejected
// so a workspace cannot end up without its last admin.
func (h *TeamHandler) Deactivate(
	ctx context.Context,
	principal domain.Principal,
	userID string,
) error {
	if userID == principal.UserID {
		return platformerrors.NewError(ctx, platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation, "cannot deactivate yourself", nil,
			"9845b2ac-b3f4-41d0-bf99-3c5d7d19ff16")
	}
	if err := h.userService.Deactivate(ctx, userID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to deactivate member")
	}
	return nil
}
