/*
Package randx provides cryptographically secure random identifiers and tokens.

It generates the UUID record ids used across all stores and the opaque state
tokens used by the OAuth2 login flow.
*/
package randx

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// stateTokenBytes is the entropy of an OAuth2 state token before encoding.
const stateTokenBytes = 24

// NewID generates a UUID v4 string to serve as a record identifier.
func NewID() string {
	return uuid.New().String()
}

// IsValidID reports whether s parses as a UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// StateToken generates a URL-safe random token for the OAuth2 state parameter.
func StateToken() (string, error) {
	buf := make([]byte, stateTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
