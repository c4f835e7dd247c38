package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/membersys/account-service/internal/core/domain"
	"github.com/membersys/account-service/internal/core/ports"
)

type sessionService struct {
	secret  string
	ttl     time.Duration
	revoked ports.RevocationStore
	now     func() time.Time
}

// NewSessionService returns a SessionService backed by HS256 tokens. Revoked
// session IDs are tracked in the given store until their natural expiry.
func NewSessionService(secret string, ttl time.Duration, revoked ports.RevocationStore) ports.SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionService{secret: secret, ttl: ttl, revoked: revoked, now: time.Now}
}

func (s *sessionService) TTL() time.Duration { return s.ttl }

func (s *sessionService) Issue(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"jti":      uuid.NewString(),
		"exp":      s.now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func (s *sessionService) Validate(ctx context.Context, token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}

	jti, _ := claims["jti"].(string)
	if jti != "" {
		revoked, err := s.revoked.IsRevoked(ctx, jti)
		if err != nil {
			return "", fmt.Errorf("session revocation check: %w", err)
		}
		if revoked {
			return "", domain.ErrSessionRevoked
		}
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return "", domain.ErrInvalidCredentials
	}
	return username, nil
}

func (s *sessionService) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		// Nothing to revoke for a token that no longer validates.
		return nil
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil
	}

	ttl := s.ttl
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := exp.Sub(s.now()); remaining > 0 {
			ttl = remaining
		}
	}
	return s.revoked.Revoke(ctx, jti, ttl)
}

func (s *sessionService) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidCredentials
	}
	return claims, nil
}
