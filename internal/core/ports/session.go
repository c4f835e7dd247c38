package ports

import (
	"context"
	"time"
)

// SessionService issues and validates the opaque session capability handed to
// the web layer after a successful login.
type SessionService interface {
	Issue(username string) (string, error)
	// Validate returns the username bound to the session token, or an error
	// when the token is malformed, expired or revoked.
	Validate(ctx context.Context, token string) (string, error)
	// Revoke invalidates the session for the remainder of its lifetime.
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// RevocationStore remembers revoked session IDs until they would have
// expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
