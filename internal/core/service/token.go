package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/contactkeep/contacts-api/internal/core/domain"
)

// DefaultTokenTTL is the lifetime applied when the caller does not supply one.
const DefaultTokenTTL = 15 * time.Minute

// TokenService issues and verifies HS256 bearer tokens carrying the user's
// email as subject. The secret is fixed at construction and never mutated.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// WithClock replaces the time source. Intended for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs a token for subject valid for ttl. A non-positive ttl falls
// back to DefaultTokenTTL.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject claim. Tokens
// signed with any algorithm other than HS256 are rejected regardless of
// whether the signature would otherwise check out.
func (s *TokenService) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", domain.ErrTokenSignature
		default:
			return "", domain.ErrTokenMalformed
		}
	}
	if !tkn.Valid {
		return "", domain.ErrTokenSignature
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", domain.ErrTokenMalformed
	}
	return subject, nil
}
