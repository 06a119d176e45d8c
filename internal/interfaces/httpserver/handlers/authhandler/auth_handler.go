package authhandler

import (
	"context"

	"agentdesk/internal/domain"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/infrastructure/auth"
	"agentdesk/internal/interfaces/httpserver/requests/authreq"
	"agentdesk/internal/interfaces/httpserver/responses/userres"
	"agentdesk/internal/utils/platformerrors"
)

type AuthHandler struct {
	userService *user.Service
	tokens      *auth.TokenIssuer
}

func NewAuthHandler(userService *user.Service, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
	}
}

// Register creates a member account and signs it in.
func (h *AuthHandler) Register(
	ctx context.Context,
	req authreq.RegisterRequest,
) (*userres.LoginResponse, error) {
	registered, err := h.userService.Register(ctx, user.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to register user")
	}

	return h.issueSession(ctx, registered)
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(
	ctx context.Context,
	req authreq.LoginRequest,
) (*userres.LoginResponse, error) {
	authed, err := h.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to authenticate user")
	}

	return h.issueSession(ctx, authed)
}

func (h *AuthHandler) issueSession(ctx context.Context, u *user.User) (*userres.LoginResponse, error) {
	token, expiresAt, err := h.tokens.Issue(u)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to issue access token")
	}
	return userres.NewLoginResponse(token, expiresAt, u), nil
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(ctx context.Context, principal domain.Principal) (*userres.UserResponse, error) {
	u, err := h.userService.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to load profile")
	}
	return userres.NewUserResponse(u), nil
}

// UpdateProfile changes the caller's display name and profile picture.
func (h *AuthHandler) UpdateProfile(
	ctx context.Context,
	principal domain.Principal,
	req authreq.UpdateProfileRequest,
) (*userres.UserResponse, error) {
	input := user.ProfileUpdate{
		Name:             req.Name,
		ProfilePictureID: req.ProfilePictureID,
	}
	if err := h.userService.UpdateProfile(ctx, principal.UserID, input); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to update profile")
	}
	return h.Me(ctx, principal)
}

// ChangePassword rotates the caller's password after verifying the current one.
func (h *AuthHandler) ChangePassword(
	ctx context.Context,
	principal domain.Principal,
	req authreq.ChangePasswordRequest,
) error {
	if err := h.userService.ChangePassword(ctx, principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to change password")
	}
	return nil
}

// SetAPIKey stores the caller's key for a model provider encrypted at rest.
func (h *AuthHandler) SetAPIKey(
	ctx context.Context,
	principal domain.Principal,
	req authreq.SetAPIKeyRequest,
) (*userres.UserResponse, error) {
	if err := h.userService.SetAPIKey(ctx, principal.UserID, req.Provider, req.APIKey); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to store API key")
	}
	return h.Me(ctx, principal)
}

// RemoveAPIKey drops the caller's stored key for a model provider.
func (h *AuthHandler) RemoveAPIKey(
	ctx context.Context,
	principal domain.Principal,
	provider string,
) (*userres.UserResponse, error) {
	if err := h.userService.RemoveAPIKey(ctx, principal.UserID, provider); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to remove API key")
	}
	return h.Me(ctx, principal)
}
