package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	// APITokenPrefix marks read-API tokens so they are recognizable in logs and configs.
	APITokenPrefix = "ddk"

	randomBytes = 24
)

// Generator produces random API tokens.
// Token format: ddk_<base64url random>. Only the SHA-256 hex digest is
// stored; the plain token is shown once at creation time.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate creates a new token. Returns the plain token and its hash for storage.
func (g *Generator) Generate() (plainToken string, tokenHash string, err error) {
	buf := make([]byte, randomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	plainToken = fmt.Sprintf("%s_%s", APITokenPrefix, base64.RawURLEncoding.EncodeToString(buf))
	return plainToken, HashToken(plainToken), nil
}

// HashToken computes the SHA-256 hex digest of a plain token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", hash)
}

// ValidateFormat checks that a presented token has the expected shape
// before any database lookup.
func ValidateFormat(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if !strings.HasPrefix(token, APITokenPrefix+"_") {
		return errors.New("invalid token prefix")
	}
	if len(token) <= len(APITokenPrefix)+1 {
		return errors.New("invalid token format")
	}
	return nil
}

// VerifyHash compares a presented token against a stored hash in constant time.
func VerifyHash(token, storedHash string) bool {
	computed := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
