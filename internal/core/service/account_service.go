package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/membersys/account-service/internal/core/domain"
	"github.com/membersys/account-service/internal/core/ports"
)

const confirmationSubject = "Please confirm your email"

type accountService struct {
	accounts ports.AccountRepository
	tokens   ports.TokenRepository
	hasher   *Hasher
	mail     ports.MailQueue
	baseURL  string
	log      zerolog.Logger
	now      func() time.Time
}

// NewAccountService returns an AccountService implementation. baseURL is the
// externally reachable origin embedded in confirmation links.
func NewAccountService(
	accounts ports.AccountRepository,
	tokens ports.TokenRepository,
	hasher *Hasher,
	mail ports.MailQueue,
	baseURL string,
	log zerolog.Logger,
) ports.AccountService {
	return &accountService{
		accounts: accounts,
		tokens:   tokens,
		hasher:   hasher,
		mail:     mail,
		baseURL:  baseURL,
		log:      log,
		now:      time.Now,
	}
}

func (s *accountService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	var v domain.Violations
	if !validUsernameLength(in.Username) {
		v.Add("username", msgUsernameLength)
	}
	if !validUsernameCharset(in.Username) {
		v.Add("username", msgUsernameCharset)
	}
	if !validEmail(in.Email) {
		v.Add("email", msgEmailInvalid)
	}
	if _, err := s.accounts.FindByUsername(ctx, in.Username); err == nil {
		v.Add("username", msgUsernameTaken)
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, fmt.Errorf("signup: lookup username: %w", err)
	}
	if !validPasswordLength(in.Password) {
		v.Add("password", msgPasswordLength)
	}
	if in.Password != in.ConfirmPassword {
		v.Add("confirm_password", msgPasswordMatch)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	account := &domain.Account{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: s.hasher.Hash(in.Password),
		Verified:     false,
		CreatedAt:    s.now().UTC(),
	}
	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			// Lost the race after the pre-check; same user-facing outcome.
			return nil, domain.Violations{{Field: "username", Message: msgUsernameTaken}}
		}
		return nil, fmt.Errorf("signup: create account: %w", err)
	}

	// The account is committed from here on. A token or mail problem must not
	// fail the signup; the resend flow recovers.
	if err := s.issueAndSend(ctx, created); err != nil {
		s.log.Warn().Err(err).
			Str("username", created.Username).
			Msg("confirmation email not queued, resend required")
	}

	s.log.Info().Str("username", created.Username).Msg("account created")
	return created, nil
}

func (s *accountService) ResendVerification(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("resend verification: %w", err)
	}
	if account.Verified {
		return domain.ErrAlreadyVerified
	}
	if err := s.issueAndSend(ctx, account); err != nil {
		return fmt.Errorf("resend verification: %w", err)
	}
	return nil
}

func (s *accountService) ConfirmEmail(ctx context.Context, token string) (*ports.ConfirmResult, error) {
	tok, err := s.tokens.FindByValue(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("confirm email: %w", err)
	}
	if tok.ExpiredAt(s.now()) {
		return nil, domain.ErrTokenExpired
	}

	// The flag flips at most once; a concurrent confirm that loses the
	// conditional update lands on the idempotent path.
	modified, err := s.accounts.MarkVerified(ctx, tok.AccountID)
	if err != nil {
		return nil, fmt.Errorf("confirm email: %w", err)
	}
	if modified {
		s.log.Info().Str("account_id", tok.AccountID).Msg("email verified")
	}
	return &ports.ConfirmResult{AlreadyVerified: !modified}, nil
}

func (s *accountService) ResetPassword(ctx context.Context, email, password, confirmPassword string) error {
	var v domain.Violations
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("reset password: %w", err)
		}
		v.Add("email", "This email address is not on file, click register")
	}
	if !validPasswordLength(password) {
		v.Add("password", msgPasswordLength)
	}
	if password != confirmPassword {
		v.Add("confirm_password", msgPasswordMatch)
	}
	if err := v.OrNil(); err != nil {
		return err
	}

	if err := s.accounts.UpdateCredential(ctx, account.ID, s.hasher.Hash(password)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	s.log.Info().Str("username", account.Username).Msg("credential replaced")
	return nil
}

func (s *accountService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.Violations{{Field: "username", Message: "Username does not exist"}}
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, domain.Violations{{Field: "password", Message: "Password is not valid"}}
	}
	return account, nil
}

// issueAndSend replaces the account's verification token and queues the
// confirmation email carrying the new link.
func (s *accountService) issueAndSend(ctx context.Context, account *domain.Account) error {
	tok := &domain.VerificationToken{
		Value:     uuid.NewString(),
		AccountID: account.ID,
		IssuedAt:  s.now().UTC(),
	}
	if err := s.tokens.Save(ctx, tok); err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	body, err := confirmationEmailBody(s.baseURL, tok.Value)
	if err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}
	s.mail.Enqueue(ports.Message{
		To:      account.Email,
		Subject: confirmationSubject,
		HTML:    body,
	})
	return nil
}
