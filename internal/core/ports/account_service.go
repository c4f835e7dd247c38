package ports

import (
	"context"

	"github.com/membersys/account-service/internal/core/domain"
)

// SignupInput carries the raw signup form fields.
type SignupInput struct {
	Name            string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ConfirmResult reports the outcome of consuming a verification token.
type ConfirmResult struct {
	// AlreadyVerified is true when the account had been verified before this
	// call; the confirmation is then a no-op success.
	AlreadyVerified bool
}

type AccountService interface {
	// Signup validates all fields at once, creates an unverified account,
	// issues a verification token and queues the confirmation email.
	// Validation failures are returned as domain.Violations.
	Signup(ctx context.Context, in SignupInput) (*domain.Account, error)
	// ResendVerification reissues the account's token and queues a fresh
	// confirmation email. Fails for unknown or already-verified emails.
	ResendVerification(ctx context.Context, email string) error
	// ConfirmEmail consumes a verification token, flipping the account to
	// verified exactly once. Re-confirming is an idempotent success.
	ConfirmEmail(ctx context.Context, token string) (*ConfirmResult, error)
	// ResetPassword replaces the stored credential for the account owning
	// email, after validating the new password.
	ResetPassword(ctx context.Context, email, password, confirmPassword string) error
	// Login authenticates username/password. Failures come back as
	// domain.Violations on the offending field.
	Login(ctx context.Context, username, password string) (*domain.Account, error)
}
