// Package auth provides token issuance and credential primitives.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"agentdesk/internal/domain/user"
)

// BcryptHasher hashes passwords with bcrypt at the default cost.
type BcryptHasher struct{}

var _ user.PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher constructs a BcryptHasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

func (*BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (*BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
