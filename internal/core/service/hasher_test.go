package service

import "testing"

func TestHasher_Deterministic(t *testing.T) {
	h := NewHasher("secret")
	a := h.Hash("password")
	b := h.Hash("password")
	if a != b {
		t.Fatalf("same input must hash identically: %s != %s", a, b)
	}
}

func TestHasher_FixedLength(t *testing.T) {
	h := NewHasher("secret")
	for _, pw := range []string{"", "a", "a much longer password than usual"} {
		if got := len(h.Hash(pw)); got != 64 {
			t.Fatalf("digest for %q has length %d, want 64", pw, got)
		}
	}
}

func TestHasher_SecretChangesDigest(t *testing.T) {
	if NewHasher("one").Hash("password") == NewHasher("two").Hash("password") {
		t.Fatalf("different secrets must yield different digests")
	}
}

func TestHasher_Verify(t *testing.T) {
	h := NewHasher("secret")
	digest := h.Hash("password")
	if !h.Verify("password", digest) {
		t.Fatalf("correct password must verify")
	}
	if h.Verify("Password", digest) {
		t.Fatalf("wrong password must not verify")
	}
}
