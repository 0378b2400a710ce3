package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the token payload: the subject (user id) plus the
// account email, on top of the registered JWT fields.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens. The signing key
// is fixed at construction; rotating it invalidates all outstanding tokens.
type TokenService struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenService initializes a token service with the given signing
// secret and default lifetime.
func NewTokenService(secret string, defaultTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// WithClock overrides the time source, for deterministic tests.
func (t *TokenService) WithClock(now func() time.Time) *TokenService {
	t.now = now
	return t
}

// Issue creates a signed token for the subject expiring after ttl.
// A non-positive ttl falls back to the service default.
func (t *TokenService) Issue(subject, email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = t.defaultTTL
	}
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims, or
// nil for any invalid token. Failures here are expected data (stale or
// forged requests), not faults, so no error is surfaced.
func (t *TokenService) Verify(tokenString string) *Claims {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}
