package jwtmw

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock はテスト用の可変時計です。
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newPair(t *testing.T, secret string, ttl time.Duration, clock *testClock) (*Generator, *Verifier) {
	t.Helper()
	gen, err := NewGenerator(secret, ttl, WithClock(clock.Now))
	require.NoError(t, err)
	ver, err := NewVerifier(secret, WithClock(clock.Now))
	require.NoError(t, err)
	return gen, ver
}

func TestNewVerifier_EmptySecret(t *testing.T) {
	t.Parallel()

	v, err := NewVerifier("")
	assert.ErrorIs(t, err, ErrEmptySecret)
	assert.Nil(t, v)
}

// TestVerifier_RoundTrip は発行直後のトークンが同じユーザーIDに検証されることを検証します。
func TestVerifier_RoundTrip(t *testing.T) {
	t.Parallel()

	clock := &testClock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	gen, ver := newPair(t, "round-trip-secret", time.Hour, clock)

	for _, userID := range []string{"01HZX8Y3M9Q4V5R6S7T8U9W0XA", "u-2", "ana"} {
		token, err := gen.GenerateToken(userID)
		require.NoError(t, err)

		got, err := ver.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	}
}

// TestVerifier_Expiry は TTL 経過後に ErrTokenExpired となることを検証します。
func TestVerifier_Expiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := &testClock{t: issued}
	gen, ver := newPair(t, "expiry-secret", time.Hour, clock)

	token, err := gen.GenerateToken("user-1")
	require.NoError(t, err)

	clock.Set(issued.Add(59 * time.Minute))
	_, err = ver.Verify(token)
	assert.NoError(t, err, "still valid before expiry")

	clock.Set(issued.Add(time.Hour + time.Second))
	_, err = ver.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, "expired", Reason(err))
}

// TestVerifier_TamperedSignature は署名部分を1バイト改ざんすると ErrTokenSignatureInvalid となることを検証します。
func TestVerifier_TamperedSignature(t *testing.T) {
	t.Parallel()

	clock := &testClock{t: time.Now()}
	gen, ver := newPair(t, "tamper-secret", time.Hour, clock)

	token, err := gen.GenerateToken("user-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	// Flip the first character; the last one may only carry padding bits.
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = ver.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

// TestVerifier_TamperedPayload はペイロードを書き換えたトークンが受理されないことを検証します。
func TestVerifier_TamperedPayload(t *testing.T) {
	t.Parallel()

	clock := &testClock{t: time.Now()}
	gen, ver := newPair(t, "tamper-secret", time.Hour, clock)

	token, err := gen.GenerateToken("user-1")
	require.NoError(t, err)
	parts := strings.Split(token, ".")

	// Re-encode a payload claiming another subject, keeping the original signature.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-2",
		ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
	})
	forgedStr, err := forged.SignedString([]byte("other"))
	require.NoError(t, err)
	forgedParts := strings.Split(forgedStr, ".")

	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]
	_, err = ver.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

// TestVerifier_EveryAlteredByte はトークンのどの1バイトを書き換えても
// ErrTokenSignatureInvalid となることを検証します。
func TestVerifier_EveryAlteredByte(t *testing.T) {
	t.Parallel()

	clock := &testClock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	gen, ver := newPair(t, "alter-secret", time.Hour, clock)

	token, err := gen.GenerateToken("01HZX8Y3M9Q4V5R6S7T8U9W0XA")
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		for _, repl := range []byte{'A', 'B', '-', '!'} {
			if token[i] == repl {
				continue
			}
			altered := []byte(token)
			altered[i] = repl

			got, err := ver.Verify(string(altered))
			assert.ErrorIs(t, err, ErrTokenSignatureInvalid, "byte %d -> %q", i, repl)
			assert.Empty(t, got)
		}
	}
}

func TestVerifier_Failures(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := &testClock{t: now}
	_, ver := newPair(t, "verify-secret", time.Hour, clock)

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	valid := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", ErrTokenMalformed},
		{"random string", "randomstring", ErrTokenMalformed},
		{"four segments", "not.a.valid.token", ErrTokenMalformed},
		{"garbage segments", "a.b.c", ErrTokenSignatureInvalid},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("rotated"), valid), ErrTokenSignatureInvalid},
		{"HS512 not accepted", sign(jwt.SigningMethodHS512, []byte("verify-secret"), valid), ErrTokenSignatureInvalid},
		{"none algorithm", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid), ErrTokenSignatureInvalid},
		{
			"missing exp",
			sign(jwt.SigningMethodHS256, []byte("verify-secret"), jwt.RegisteredClaims{Subject: "user-1"}),
			ErrTokenMalformed,
		},
		{
			"missing sub",
			sign(jwt.SigningMethodHS256, []byte("verify-secret"), jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}),
			ErrTokenMalformed,
		},
		{
			"expired",
			sign(jwt.SigningMethodHS256, []byte("verify-secret"), jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}),
			ErrTokenExpired,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ver.Verify(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, got)
		})
	}
}

func TestReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "malformed", Reason(ErrTokenMalformed))
	assert.Equal(t, "bad_signature", Reason(ErrTokenSignatureInvalid))
	assert.Equal(t, "expired", Reason(ErrTokenExpired))
	assert.Equal(t, "unknown", Reason(assert.AnError))
}
