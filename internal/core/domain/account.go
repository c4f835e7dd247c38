package domain

import (
	"errors"
	"time"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrTokenNotFound      = errors.New("verification token not found")
	ErrTokenExpired       = errors.New("verification token expired")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionRevoked     = errors.New("session revoked")
)

// VerificationState is the account's position in the email-confirmation flow.
type VerificationState string

const (
	StateUnverified          VerificationState = "unverified"
	StatePendingConfirmation VerificationState = "pending_confirmation"
	StateVerified            VerificationState = "verified"
)

// Account models a registered user's identity and credentials.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// State derives the verification state. hasToken reports whether an active
// verification token exists for the account.
func (a *Account) State(hasToken bool) VerificationState {
	switch {
	case a.Verified:
		return StateVerified
	case hasToken:
		return StatePendingConfirmation
	default:
		return StateUnverified
	}
}
