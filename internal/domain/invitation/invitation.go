// Package invitation provides the team invitation domain models and behaviors.
package invitation

import (
	"context"
	"time"

	"agentdesk/internal/domain/query"
)

// Invitation statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRevoked  = "revoked"
	StatusExpired  = "expired"
)

// Invitation models a pending offer to join the workspace. Only a hash
// of the invitation token is stored; the token itself is returned once
// at creation time.
type Invitation struct {
	ID        string
	Email     string
	Role      string
	TokenHash string
	InvitedBy string
	Status    string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending reports whether the invitation can still be accepted or
// revoked.
func (i *Invitation) IsPending() bool {
	return i != nil && i.Status == StatusPending
}

// Repository defines storage operations for invitations. Find methods
// return (nil, nil) when no document matches.
type Repository interface {
	Create(ctx context.Context, inv *Invitation) (*Invitation, error)
	FindByID(ctx context.Context, id string) (*Invitation, error)
	FindByTokenHash(ctx context.Context, hash string) (*Invitation, error)
	FindPendingByEmail(ctx context.Context, email string) (*Invitation, error)
	List(ctx context.Context, pagination query.Pagination) ([]*Invitation, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
