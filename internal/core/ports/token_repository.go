package ports

import (
	"context"

	"github.com/membersys/account-service/internal/core/domain"
)

// TokenRepository persists verification tokens. Saving a token for an account
// replaces any token previously issued to it, keeping at most one active
// token per account.
type TokenRepository interface {
	Save(ctx context.Context, token *domain.VerificationToken) error
	FindByValue(ctx context.Context, value string) (*domain.VerificationToken, error)
}
