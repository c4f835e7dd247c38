package ports

import (
	"context"

	"github.com/membersys/account-service/internal/core/domain"
)

// AccountRepository defines the interface for account persistence. Username
// uniqueness is enforced here; writers receive domain.ErrDuplicateUsername.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// MarkVerified flips the verified flag with a conditional update.
	// It reports false when the account was already verified, so concurrent
	// confirmations of the same token serialize to exactly one transition.
	MarkVerified(ctx context.Context, accountID string) (bool, error)
	UpdateCredential(ctx context.Context, accountID, passwordHash string) error
}
