// Package session manages ephemeral admin bearer tokens.
package session

import (
	"context"
	"crypto/rand"
	"fmt"
)

const (
	tokenLength   = 40
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Manager issues and validates admin session tokens. Tokens expire after the
// TTL configured at construction; implementations must be safe for
// concurrent use.
type Manager interface {
	// Issue creates a new token valid for the configured TTL.
	Issue(ctx context.Context) (string, error)
	// Validate reports whether token is known and unexpired.
	Validate(ctx context.Context, token string) (bool, error)
	// Revoke invalidates token immediately. Unknown tokens are not an error.
	Revoke(ctx context.Context, token string) error
}

func newToken() (string, error) {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: generate token: %w", err)
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}
