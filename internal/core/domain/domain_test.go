package domain

import (
	"testing"
	"time"
)

func TestVerificationToken_ExpiredAt(t *testing.T) {
	issued := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	tok := &VerificationToken{Value: "t", AccountID: "a", IssuedAt: issued}

	if tok.ExpiredAt(issued.Add(TokenValidity)) {
		t.Fatalf("token must still be valid exactly at the window edge")
	}
	if !tok.ExpiredAt(issued.Add(TokenValidity + time.Second)) {
		t.Fatalf("token must be expired past the window")
	}
}

func TestViolations_Accumulate(t *testing.T) {
	var v Violations
	if v.OrNil() != nil {
		t.Fatalf("empty violations must be nil error")
	}

	v.Add("username", "too short")
	v.Add("password", "too short")
	err := v.OrNil()
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(v) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(v))
	}
	if err.Error() != "username: too short; password: too short" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestAccount_State(t *testing.T) {
	a := &Account{}
	if got := a.State(false); got != StateUnverified {
		t.Fatalf("expected unverified, got %s", got)
	}
	if got := a.State(true); got != StatePendingConfirmation {
		t.Fatalf("expected pending, got %s", got)
	}
	a.Verified = true
	if got := a.State(true); got != StateVerified {
		t.Fatalf("expected verified, got %s", got)
	}
}
