package auth

import (
	"agentdesk/internal/config"
	"agentdesk/internal/domain/user"
	"agentdesk/internal/utils/crypto"
)

// APIKeyCipher encrypts stored model provider keys with the configured
// secret.
type APIKeyCipher struct {
	secret string
}

var _ user.APIKeyCipher = (*APIKeyCipher)(nil)

// NewAPIKeyCipher constructs an APIKeyCipher from the app config.
func NewAPIKeyCipher(cfg *config.Config) *APIKeyCipher {
	return &APIKeyCipher{secret: cfg.APIKeySecret}
}

func (c *APIKeyCipher) Encrypt(plaintext string) (string, error) {
	return crypto.EncryptString(c.secret, plaintext)
}

func (c *APIKeyCipher) Decrypt(ciphertext string) (string, error) {
	return crypto.DecryptString(c.secret, ciphertext)
}
