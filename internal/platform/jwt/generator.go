// Package jwtmw issues and verifies session tokens (HS256 JWT) and provides the
// gin middleware that gates protected routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"task_backend/internal/shared/ids"
)

// ErrEmptySecret is returned when a Generator or Verifier is built without a signing secret.
var ErrEmptySecret = errors.New("jwt secret must not be empty")

// Option configures a Generator or Verifier.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source. Used by tests to control expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Generator mints signed session tokens.
type Generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration, opts ...Option) (*Generator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if expiration <= 0 {
		return nil, fmt.Errorf("jwt expiration must be positive, got %v", expiration)
	}
	o := buildOptions(opts)
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        o.now,
	}, nil
}

// GenerateToken creates a signed token whose subject is userID.
// The token carries iat = now and exp = now + expiration.
func (g *Generator) GenerateToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("cannot issue token for empty user id")
	}

	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
		ID:        ids.NewAt(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
