package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/membersys/account-service/internal/core/domain"
)

type stubRevocations struct {
	revoked map[string]time.Duration
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Duration)}
}

func (s *stubRevocations) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	s.revoked[sessionID] = ttl
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	_, ok := s.revoked[sessionID]
	return ok, nil
}

func TestSessionService_IssueAndValidate(t *testing.T) {
	svc := NewSessionService("secret", time.Hour, newStubRevocations())

	token, err := svc.Issue("bob1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	username, err := svc.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if username != "bob1" {
		t.Fatalf("expected bob1, got %q", username)
	}
}

func TestSessionService_WrongSecretRejected(t *testing.T) {
	issuer := NewSessionService("secret", time.Hour, newStubRevocations())
	verifier := NewSessionService("other-secret", time.Hour, newStubRevocations())

	token, _ := issuer.Issue("bob1")
	if _, err := verifier.Validate(context.Background(), token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_RevokeBlocksValidation(t *testing.T) {
	revocations := newStubRevocations()
	svc := NewSessionService("secret", time.Hour, revocations)

	token, _ := svc.Issue("bob1")
	if err := svc.Revoke(context.Background(), token); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if len(revocations.revoked) != 1 {
		t.Fatalf("expected one revocation entry, got %d", len(revocations.revoked))
	}
	for _, ttl := range revocations.revoked {
		if ttl <= 0 || ttl > time.Hour {
			t.Fatalf("revocation ttl must match remaining session life, got %v", ttl)
		}
	}

	if _, err := svc.Validate(context.Background(), token); !errors.Is(err, domain.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
}

func TestSessionService_RevokeGarbageIsNoop(t *testing.T) {
	revocations := newStubRevocations()
	svc := NewSessionService("secret", time.Hour, revocations)

	if err := svc.Revoke(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("revoking garbage must not error: %v", err)
	}
	if len(revocations.revoked) != 0 {
		t.Fatalf("nothing should be revoked for a garbage token")
	}
}
