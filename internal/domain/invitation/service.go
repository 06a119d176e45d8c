package invitation

import (
	"context"
	"strings"
	"time"

	"agentdesk/internal/domain/query"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/utils/idgen"
	"agentdesk/internal/utils/platformerrors"
)

const tokenPrefix = "inv_"

// Config carries the invitation policy knobs.
type Config struct {
	TTL         time.Duration
	TokenSecret []byte
}

// Service implements the invitation lifecycle on top of the repository.
type Service struct {
	repo  Repository
	users *user.Service
	cfg   Config
	now   func() time.Time
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, users *user.Service, cfg Config) *Service {
	return &Service{repo: repo, users: users, cfg: cfg, now: time.Now}
}

// Invite creates a pending invitation and returns it together with the
// one-time token the invitee needs to accept. The token is not
// recoverable afterwards.
func (s *Service) Invite(ctx context.Context, invitedBy, email, role string) (*Invitation, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid email address", nil, "cea3e2da-12de-47c9-b097-0a3dd98dc986")
	}
	if role == "" {
		role = user.RoleUser
	}
	if !user.ValidRole(role) {
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "unknown role", nil, "55e079da-bc64-4bcc-8d5f-555fab7d43dd")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "email already belongs to a member", nil, "26f7d970-0e90-45a6-ac51-c6e764c72243")
	}

	pending, err := s.repo.FindPendingByEmail(ctx, email)
	if err != nil {
		return nil, "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check pending invitations")
	}
	if pending != nil {
		return nil, "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "an invitation for this email is already pending", nil, "243d8ae6-03a5-4148-9adf-59eb52f772af")
	}

	token, err := idgen.GenerateSecureID(tokenPrefix, 32)
	if err != nil {
		return nil, "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate invitation token")
	}

	inv, err := s.repo.Create(ctx, &Invitation{
		Email:     email,
		Role:      role,
		TokenHash: idgen.HashKey256(token, s.cfg.TokenSecret),
		InvitedBy: invitedBy,
		Status:    StatusPending,
		ExpiresAt: s.now().Add(s.cfg.TTL).UTC(),
	})
	if err != nil {
		return nil, "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create invitation")
	}
	return inv, token, nil
}

// Accept redeems a token and creates the member account. Invalid,
// redeemed, revoked, and expired tokens all fail the same way.
func (s *Service) Accept(ctx context.Context, token, name, password string) (*user.User, error) {
	inv, err := s.repo.FindByTokenHash(ctx, idgen.HashKey256(token, s.cfg.TokenSecret))
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up invitation")
	}
	if !inv.IsPending() || s.now().After(inv.ExpiresAt) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "invitation is invalid or expired", nil, "17f409a1-20ae-479b-819c-d483cd28b991")
	}

	// Accepting an invitation proves the recipient controls the address.
	created, err := s.users.Register(ctx, user.RegisterInput{
		Name:     name,
		Email:    inv.Email,
		Password: password,
		Role:     inv.Role,
		Verified: true,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateStatus(ctx, inv.ID, StatusAccepted); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to mark invitation accepted")
	}
	return created, nil
}

// Revoke cancels a pending invitation.
func (s *Service) Revoke(ctx context.Context, id string) error {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to find invitation")
	}
	if inv == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "invitation not found", nil, "f0595cb2-35eb-426f-9c37-160bade3ca63")
	}
	if !inv.IsPending() {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "invitation is no longer pending", nil, "c6e4c561-3514-46a3-993e-9606928b384e")
	}
	if _, err := s.repo.UpdateStatus(ctx, id, StatusRevoked); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to revoke invitation")
	}
	return nil
}

// List returns a page of invitations plus the total count.
func (s *Service) List(ctx context.Context, pagination query.Pagination) ([]*Invitation, int64, error) {
	invs, err := s.repo.List(ctx, pagination.Normalize())
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list invitations")
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count invitations")
	}
	return invs, total, nil
}

// ExpireStale marks pending invitations past their deadline as expired
// and returns how many were affected. Invoked by the background sweep.
func (s *Service) ExpireStale(ctx context.Context) (int64, error) {
	expired, err := s.repo.ExpireBefore(ctx, s.now().UTC())
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to expire invitations")
	}
	return expired, nil
}
