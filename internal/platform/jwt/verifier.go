package jwtmw

import (
	"crypto/hmac"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. The Auth Gate collapses all of them into a
// single 401 response; the distinction is only kept for logs.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

// Verifier checks session tokens statelessly against the signing secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier creates a Verifier for tokens signed with secret.
func NewVerifier(secret string, opts ...Option) (*Verifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	o := buildOptions(opts)
	return &Verifier{secret: []byte(secret), now: o.now}, nil
}

// Verify checks tokenStr's HS256 signature in constant time, then its claims
// and expiry, and returns the subject user id. The signature is checked
// before anything is decoded, so any altered byte yields ErrTokenSignatureInvalid.
func (v *Verifier) Verify(tokenStr string) (string, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		return "", ErrTokenMalformed
	}
	if !v.signatureMatches(parts[0]+"."+parts[1], parts[2]) {
		return "", ErrTokenSignatureInvalid
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return "", classify(err)
	}
	if claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}

// signatureMatches compares sig with the canonical encoding of the expected MAC.
func (v *Verifier) signatureMatches(signingString, sig string) bool {
	want, err := jwt.SigningMethodHS256.Sign(signingString, v.secret)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(base64.RawURLEncoding.EncodeToString(want)), []byte(sig))
}

// classify maps jwt library errors onto the three verification failure kinds.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenMalformed
	}
}

// Reason returns a short label for a verification error, for logging.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenSignatureInvalid):
		return "bad_signature"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
