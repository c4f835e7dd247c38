package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 4096
	hashKeyLen     = 32
)

// Hasher derives stored credentials from passwords using PBKDF2-SHA256 keyed
// with a server-wide secret. The same (secret, password) pair always yields
// the same digest, so stored hashes can be compared directly.
type Hasher struct {
	secret []byte
}

func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// Hash returns the hex-encoded digest of password.
func (h *Hasher) Hash(password string) string {
	key := pbkdf2.Key([]byte(password), h.secret, hashIterations, hashKeyLen, sha256.New)
	return hex.EncodeToString(key)
}

// Verify reports whether password hashes to digest. Comparison is
// constant-time.
func (h *Hasher) Verify(password, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(h.Hash(password)), []byte(digest)) == 1
}
