package user

import (
	"context"
	"regexp"
	"strings"

	"agentdesk/internal/domain/query"
	"agentdesk/internal/utils/platformerrors"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 8

// RegisterInput carries the fields required to create an account.
// Verified marks the account as email-verified at creation, used for
// accounts created through an accepted invitation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Verified bool
}

// Service implements account management on top of the repository.
type Service struct {
	repo   Repository
	hasher PasswordHasher
	cipher APIKeyCipher
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, hasher PasswordHasher, cipher APIKeyCipher) *Service {
	return &Service{repo: repo, hasher: hasher, cipher: cipher}
}

// Register creates a new account after validating the input and
// rejecting duplicate emails.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "name is required", nil, "2cea513d-df4a-43f5-ac09-f00146ddb7a7")
	}
	if !emailPattern.MatchString(email) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid email address", nil, "d29a84d2-7235-4055-a039-98014d42e0c6")
	}
	if len(input.Password) < minPasswordLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "password must be at least 8 characters", nil, "28f3532c-5853-4692-a5e5-64ddecc6e394")
	}

	role := input.Role
	if role == "" {
		role = RoleUser
	}
	if !ValidRole(role) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "unknown role", nil, "2aa842ed-06a9-47e8-b0fe-d4cf3d939a0b")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check existing user")
	}
	if existing != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "email already registered", nil, "2a847c86-3d28-48ce-9e26-7dfb65f7b165")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to hash password")
	}

	created, err := s.repo.Create(ctx, &User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		IsVerified:   input.Verified,
		IsActive:     true,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create user")
	}
	return created, nil
}

// Authenticate verifies the credentials and returns the active account.
// It deliberately returns the same error for unknown email, inactive
// account, and wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up user")
	}
	if u == nil || !u.IsActive {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "invalid credentials", nil, "e176667f-3ddc-455b-92db-e4dd9f6c883e")
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "invalid credentials", nil, "4ec0038c-4c74-42e2-9610-a0ad19e1cc3c")
	}
	return u, nil
}

// GetByID resolves an account by its ID.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to find user")
	}
	if u == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "33965c40-2411-480e-81ff-290d34102939")
	}
	return u, nil
}

// GetByEmail resolves an account by email, returning (nil, nil) when
// the address is unknown.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up user")
	}
	return u, nil
}

// List returns a page of active accounts plus the total count.
func (s *Service) List(ctx context.Context, pagination query.Pagination) ([]*User, int64, error) {
	users, err := s.repo.List(ctx, pagination.Normalize())
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list users")
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count users")
	}
	return users, total, nil
}

// UpdateProfile renames the account and, when a picture reference is
// supplied, swaps the stored profile picture.
func (s *Service) UpdateProfile(ctx context.Context, id string, input ProfileUpdate) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "name is required", nil, "1276d163-0d17-4233-aff8-4c8dbe62b590")
	}
	ok, err := s.repo.UpdateProfile(ctx, id, input)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update profile")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "0c45820d-1bfc-4caa-bdc7-1ccee0206d18")
	}
	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(u.PasswordHash, current); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "current password is incorrect", nil, "ac89da76-b596-451c-b7b5-73e7701c5a82")
	}
	if len(next) < minPasswordLength {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "password must be at least 8 characters", nil, "31f8fb4d-dbf6-49b9-b9b8-ae66c68f56ac")
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to hash password")
	}
	if _, err := s.repo.UpdatePasswordHash(ctx, id, hash); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update password")
	}
	return nil
}

// ChangeRole assigns a new role to the account.
func (s *Service) ChangeRole(ctx context.Context, id, role string) error {
	if !ValidRole(role) {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "unknown role", nil, "65e37bb9-1080-4a97-a07c-a62353cd2d02")
	}
	ok, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update role")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "ab53a387-c639-4d66-be42-eb043cb61e4d")
	}
	return nil
}

// Deactivate soft deletes an account. Deactivated accounts can no
// longer authenticate and disappear from team listings.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	ok, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to deactivate user")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "6a395ba6-f988-406f-8019-ba404cb0fa1c")
	}
	return nil
}

// SetAPIKey encrypts and stores the user's key for the given model
// provider. An existing key for the same provider is replaced.
func (s *Service) SetAPIKey(ctx context.Context, id, provider, apiKey string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "provider is required", nil, "b55b1557-8c74-45f7-b5f0-cac905a3478b")
	}
	if strings.TrimSpace(apiKey) == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "api key is required", nil, "a94b88d1-5f8b-4e9b-90c3-944a08a7a165")
	}
	encrypted, err := s.cipher.Encrypt(apiKey)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to encrypt api key")
	}
	ok, err := s.repo.UpdateAPIKey(ctx, id, provider, encrypted)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to store api key")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "56759ec7-bf2e-4fc0-b2dc-da02917e473b")
	}
	return nil
}

// RemoveAPIKey deletes the stored key for the given provider. Removing
// a provider that has no key is a no-op.
func (s *Service) RemoveAPIKey(ctx context.Context, id, provider string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "provider is required", nil, "b30175ae-fecb-4b0b-a3bd-f3df0b9f60e7")
	}
	ok, err := s.repo.RemoveAPIKey(ctx, id, provider)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to remove api key")
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "c504fa50-e95f-4bcf-aebf-f6b0afa17478")
	}
	return nil
}

// DecryptedAPIKey returns the user's stored key for the provider in the
// clear. Intended for internal use when calling model providers, never
// for API output.
func (s *Service) DecryptedAPIKey(ctx context.Context, id, provider string) (string, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !u.HasAPIKey(provider) {
		return "", nil
	}
	plaintext, err := s.cipher.Decrypt(u.APIKeys[provider])
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to decrypt api key")
	}
	return plaintext, nil
}
