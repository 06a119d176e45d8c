package invitation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdesk/internal/domain/query"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/utils/idgen"
	"agentdesk/internal/utils/platformerrors"
)

type fakeRepo struct {
	byID   map[string]*Invitation
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*Invitation{}}
}

func (r *fakeRepo) Create(_ context.Context, inv *Invitation) (*Invitation, error) {
	r.nextID++
	inv.ID = fmt.Sprintf("inv-%d", r.nextID)
	r.byID[inv.ID] = inv
	return inv, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Invitation, error) {
	return r.byID[id], nil
}

func (r *fakeRepo) FindByTokenHash(_ context.Context, hash string) (*Invitation, error) {
	for _, inv := range r.byID {
		if inv.TokenHash == hash {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindPendingByEmail(_ context.Context, email string) (*Invitation, error) {
	for _, inv := range r.byID {
		if inv.Email == email && inv.Status == StatusPending {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) List(_ context.Context, _ query.Pagination) ([]*Invitation, error) {
	out := make([]*Invitation, 0, len(r.byID))
	for _, inv := range r.byID {
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id, status string) (bool, error) {
	inv, ok := r.byID[id]
	if ok {
		inv.Status = status
	}
	return ok, nil
}

func (r *fakeRepo) ExpireBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, inv := range r.byID {
		if inv.Status == StatusPending && inv.ExpiresAt.Before(cutoff) {
			inv.Status = StatusExpired
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	byEmail map[string]*user.User
	nextID  int
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	r.nextID++
	u.ID = fmt.Sprintf("u-%d", r.nextID)
	r.byEmail[u.Email] = u
	return u, nil
}

func (r *fakeUserRepo) FindByID(context.Context, string) (*user.User, error) { return nil, nil }

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) List(context.Context, query.Pagination) ([]*user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Count(context.Context) (int64, error) { return 0, nil }
func (r *fakeUserRepo) UpdateProfile(context.Context, string, user.ProfileUpdate) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) UpdatePasswordHash(context.Context, string, string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) UpdateRole(context.Context, string, string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) UpdateAPIKey(context.Context, string, string, string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) RemoveAPIKey(context.Context, string, string) (bool, error) {
	return false, nil
}
func (r *fakeUserRepo) Deactivate(context.Context, string) (bool, error) { return false, nil }

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hash:" + password, nil }
func (fakeHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeCipher struct{}

func (fakeCipher) Encrypt(s string) (string, error) { return s, nil }
func (fakeCipher) Decrypt(s string) (string, error) { return s, nil }

func newTestService() (*Service, *fakeRepo, *fakeUserRepo) {
	repo := newFakeRepo()
	userRepo := &fakeUserRepo{byEmail: map[string]*user.User{}}
	users := user.NewService(userRepo, fakeHasher{}, fakeCipher{})
	svc := NewService(repo, users, Config{TTL: 7 * 24 * time.Hour, TokenSecret: []byte("test-secret")})
	return svc, repo, userRepo
}

func TestInviteStoresOnlyTokenHash(t *testing.T) {
	svc, repo, _ := newTestService()

	inv, token, err := svc.Invite(context.Background(), "admin-1", "New@Example.com", "")
	require.NoError(t, err)
	assert.Contains(t, token, "inv_")
	assert.Equal(t, "new@example.com", inv.Email)
	assert.Equal(t, user.RoleUser, inv.Role)
	assert.Equal(t, StatusPending, inv.Status)
	assert.NotEqual(t, token, inv.TokenHash)
	assert.Equal(t, idgen.HashKey256(token, []byte("test-secret")), repo.byID[inv.ID].TokenHash)
}

func TestInviteRejectsExistingMemberAndDuplicatePending(t *testing.T) {
	svc, _, userRepo := newTestService()
	ctx := context.Background()
	userRepo.byEmail["taken@example.com"] = &user.User{ID: "u-1", Email: "taken@example.com"}

	_, _, err := svc.Invite(ctx, "admin-1", "taken@example.com", "")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))

	_, _, err = svc.Invite(ctx, "admin-1", "new@example.com", "")
	require.NoError(t, err)
	_, _, err = svc.Invite(ctx, "admin-1", "new@example.com", "")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))
}

func TestAcceptCreatesMemberAndConsumesToken(t *testing.T) {
	svc, repo, userRepo := newTestService()
	ctx := context.Background()

	inv, token, err := svc.Invite(ctx, "admin-1", "new@example.com", user.RoleAdmin)
	require.NoError(t, err)

	created, err := svc.Accept(ctx, token, "Newcomer", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", created.Email)
	assert.Equal(t, user.RoleAdmin, created.Role)
	assert.True(t, created.IsVerified)
	assert.NotNil(t, userRepo.byEmail["new@example.com"])
	assert.Equal(t, StatusAccepted, repo.byID[inv.ID].Status)

	// second redemption fails
	_, err = svc.Accept(ctx, token, "Again", "supersecret")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestAcceptRejectsUnknownAndExpiredTokens(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Accept(ctx, "inv_bogus", "Name", "supersecret")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	inv, token, err := svc.Invite(ctx, "admin-1", "late@example.com", "")
	require.NoError(t, err)
	repo.byID[inv.ID].ExpiresAt = time.Now().Add(-time.Hour)

	_, err = svc.Accept(ctx, token, "Late", "supersecret")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestRevokeOnlyPending(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	inv, token, err := svc.Invite(ctx, "admin-1", "new@example.com", "")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, inv.ID))
	assert.Equal(t, StatusRevoked, repo.byID[inv.ID].Status)

	err = svc.Revoke(ctx, inv.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))

	_, err = svc.Accept(ctx, token, "Name", "supersecret")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestExpireStale(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	fresh, _, err := svc.Invite(ctx, "admin-1", "fresh@example.com", "")
	require.NoError(t, err)
	stale, _, err := svc.Invite(ctx, "admin-1", "stale@example.com", "")
	require.NoError(t, err)
	repo.byID[stale.ID].ExpiresAt = time.Now().Add(-time.Minute)

	n, err := svc.ExpireStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, StatusExpired, repo.byID[stale.ID].Status)
	assert.Equal(t, StatusPending, repo.byID[fresh.ID].Status)
}
