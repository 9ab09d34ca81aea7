package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session: key not found")

// Store keeps short-lived session state: revoked token ids and pending
// OAuth states.
type Store interface {
	Put(ctx context.Context, key string, value string, ttl time.Duration) error
	// Take returns the value and deletes the key.
	Take(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

func RevokedKey(tokenID string) string {
	return "revoked:" + tokenID
}

func OAuthStateKey(state string) string {
	return "oauth_state:" + state
}
