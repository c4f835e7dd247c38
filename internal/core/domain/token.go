package domain

import "time"

// TokenValidity is the window during which a verification token may be consumed.
const TokenValidity = 24 * time.Hour

// VerificationToken is an opaque, time-limited proof of email ownership.
// An account holds at most one active token; reissuing replaces it.
type VerificationToken struct {
	Value     string    `json:"value"`
	AccountID string    `json:"account_id"`
	IssuedAt  time.Time `json:"issued_at"`
}

// ExpiredAt reports whether the token's validity window has elapsed at now.
func (t *VerificationToken) ExpiredAt(now time.Time) bool {
	return now.Sub(t.IssuedAt) > TokenValidity
}
