// Package idgen generates URL-safe public identifiers with resource prefixes.
package idgen

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureID returns an identifier of the form "<prefix>_<random>",
// where random is `length` characters drawn from [a-z0-9] using crypto/rand.
func GenerateSecureID(prefix string, length int) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("idgen: prefix must not be empty")
	}
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + length)
	sb.WriteString(prefix)
	sb.WriteByte('_')

	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("idgen: read random: %w", err)
		}
		sb.WriteByte(alphabet[n.Int64()])
	}
	return sb.String(), nil
}

// MustGenerateSecureID is GenerateSecureID panicking on failure. Random source
// exhaustion is not a recoverable condition for request handling.
func MustGenerateSecureID(prefix string, length int) string {
	id, err := GenerateSecureID(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}

// HashKey256 returns the hex-encoded HMAC-SHA256 of key under secret. Secrets
// such as invitation tokens are stored hashed, never verbatim.
func HashKey256(key string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidateIDFormat reports whether id looks like "<expectedPrefix>_<suffix>"
// with a non-empty [a-z0-9] suffix.
func ValidateIDFormat(id, expectedPrefix string) bool {
	if id == "" || expectedPrefix == "" {
		return false
	}
	rest, ok := strings.CutPrefix(id, expectedPrefix+"_")
	if !ok || rest == "" {
		return false
	}
	for _, char := range rest {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}
