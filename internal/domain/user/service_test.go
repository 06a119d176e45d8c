package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdesk/internal/domain/query"
	"agentdesk/internal/utils/platformerrors"
)

type fakeRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
	created []*User
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*User{}, byEmail: map[string]*User{}}
}

func (r *fakeRepo) add(u *User) *User {
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return u
}

func (r *fakeRepo) Create(_ context.Context, u *User) (*User, error) {
	r.nextID++
	u.ID = fmt.Sprintf("id-%d", r.nextID)
	r.created = append(r.created, u)
	return r.add(u), nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*User, error) {
	return r.byID[id], nil
}

func (r *fakeRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	return r.byEmail[email], nil
}

func (r *fakeRepo) List(_ context.Context, _ query.Pagination) ([]*User, error) {
	out := make([]*User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeRepo) UpdateProfile(_ context.Context, id string, input ProfileUpdate) (bool, error) {
	u, ok := r.byID[id]
	if ok {
		u.Name = input.Name
		if input.ProfilePictureID != nil {
			u.ProfilePictureID = *input.ProfilePictureID
		}
	}
	return ok, nil
}

func (r *fakeRepo) UpdatePasswordHash(_ context.Context, id, hash string) (bool, error) {
	u, ok := r.byID[id]
	if ok {
		u.PasswordHash = hash
	}
	return ok, nil
}

func (r *fakeRepo) UpdateRole(_ context.Context, id, role string) (bool, error) {
	u, ok := r.byID[id]
	if ok {
		u.Role = role
	}
	return ok, nil
}

func (r *fakeRepo) UpdateAPIKey(_ context.Context, id, provider, encrypted string) (bool, error) {
	u, ok := r.byID[id]
	if ok {
		if u.APIKeys == nil {
			u.APIKeys = map[string]string{}
		}
		u.APIKeys[provider] = encrypted
	}
	return ok, nil
}

func (r *fakeRepo) RemoveAPIKey(_ context.Context, id, provider string) (bool, error) {
	u, ok := r.byID[id]
	if ok {
		delete(u.APIKeys, provider)
	}
	return ok, nil
}

func (r *fakeRepo) Deactivate(_ context.Context, id string) (bool, error) {
	u, ok := r.byID[id]
	if ok {
		u.IsActive = false
	}
	return ok, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeCipher struct{}

func (fakeCipher) Encrypt(plaintext string) (string, error) { return "enc:" + plaintext, nil }

func (fakeCipher) Decrypt(ciphertext string) (string, error) {
	return ciphertext[len("enc:"):], nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakeHasher{}, fakeCipher{}), repo
}

func TestRegisterCreatesMemberByDefault(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsVerified)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "hash:supersecret", repo.created[0].PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, repo := newTestService()
	repo.add(&User{ID: "u1", Email: "ada@example.com", IsActive: true})

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.co", Password: "supersecret"}},
		{"bad email", RegisterInput{Name: "Ada", Email: "not-an-email", Password: "supersecret"}},
		{"short password", RegisterInput{Name: "Ada", Email: "a@b.co", Password: "short"}},
		{"unknown role", RegisterInput{Name: "Ada", Email: "a@b.co", Password: "supersecret", Role: "owner"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.input)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc, repo := newTestService()
	repo.add(&User{ID: "u1", Email: "ada@example.com", PasswordHash: "hash:supersecret", IsActive: true})
	repo.add(&User{ID: "u2", Email: "gone@example.com", PasswordHash: "hash:supersecret", IsActive: false})
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "ADA@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = svc.Authenticate(ctx, "ada@example.com", "wrong")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))

	_, err = svc.Authenticate(ctx, "nobody@example.com", "supersecret")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))

	_, err = svc.Authenticate(ctx, "gone@example.com", "supersecret")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	svc, repo := newTestService()
	repo.add(&User{ID: "u1", Email: "ada@example.com", PasswordHash: "hash:oldsecret", IsActive: true})
	ctx := context.Background()

	err := svc.ChangePassword(ctx, "u1", "wrong", "newsecret123")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))

	err = svc.ChangePassword(ctx, "u1", "oldsecret", "newsecret123")
	require.NoError(t, err)
	assert.Equal(t, "hash:newsecret123", repo.byID["u1"].PasswordHash)
}

func TestUpdateProfile(t *testing.T) {
	svc, repo := newTestService()
	repo.add(&User{ID: "u1", Name: "Ada", Email: "ada@example.com", IsActive: true})
	ctx := context.Background()

	err := svc.UpdateProfile(ctx, "u1", ProfileUpdate{Name: "  "})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	// omitted picture leaves the stored reference alone
	repo.byID["u1"].ProfilePictureID = "pic-1"
	require.NoError(t, svc.UpdateProfile(ctx, "u1", ProfileUpdate{Name: "Ada L."}))
	assert.Equal(t, "Ada L.", repo.byID["u1"].Name)
	assert.Equal(t, "pic-1", repo.byID["u1"].ProfilePictureID)

	picture := "pic-2"
	require.NoError(t, svc.UpdateProfile(ctx, "u1", ProfileUpdate{Name: "Ada L.", ProfilePictureID: &picture}))
	assert.Equal(t, "pic-2", repo.byID["u1"].ProfilePictureID)
}

func TestChangeRoleUnknownUser(t *testing.T) {
	svc, _ := newTestService()

	err := svc.ChangeRole(context.Background(), "missing", RoleAdmin)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestSetAndDecryptAPIKey(t *testing.T) {
	svc, repo := newTestService()
	repo.add(&User{ID: "u1", Email: "ada@example.com", IsActive: true})
	ctx := context.Background()

	require.NoError(t, svc.SetAPIKey(ctx, "u1", "OpenAI", "sk-test-123"))
	assert.Equal(t, "enc:sk-test-123", repo.byID["u1"].APIKeys["openai"])

	plaintext, err := svc.DecryptedAPIKey(ctx, "u1", "openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", plaintext)

	plaintext, err = svc.DecryptedAPIKey(ctx, "u1", "anthropic")
	require.NoError(t, err)
	assert.Empty(t, plaintext)
}

func TestRemoveAPIKey(t *testing.T) {
	svc, repo := newTestService()
	repo.add(&User{ID: "u1", Email: "ada@example.com", IsActive: true,
		APIKeys: map[string]string{"openai": "enc:sk-old"}})
	ctx := context.Background()

	require.NoError(t, svc.RemoveAPIKey(ctx, "u1", "openai"))
	assert.Empty(t, repo.byID["u1"].APIKeys)
	assert.Equal(t, []string{}, repo.byID["u1"].APIKeyProviders())

	err := svc.RemoveAPIKey(ctx, "missing", "openai")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestDeactivate(t *testing.T) {
	svc, repo := newTestService()
	repo.add(&User{ID: "u1", Email: "ada@example.com", IsActive: true})

	require.NoError(t, svc.Deactivate(context.Background(), "u1"))
	assert.False(t, repo.byID["u1"].IsActive)
}
