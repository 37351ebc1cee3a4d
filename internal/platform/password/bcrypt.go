// Package password provides one-way hashing and verification of user passwords.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentialInput is returned when an empty plaintext is passed to Hash.
var ErrInvalidCredentialInput = errors.New("invalid credential input")

// Hasher hashes passwords with bcrypt using a configurable cost (work factor).
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher creates a Hasher with the given bcrypt cost.
// Costs outside [bcrypt.MinCost, bcrypt.MaxCost] are clamped.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	// A real hash at the same cost, compared against when the user does not exist
	// so that login timing does not reveal whether an email is registered.
	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &Hasher{cost: cost, dummy: dummy}, nil
}

// Cost returns the bcrypt cost in use.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns a salted bcrypt hash of plaintext. Each call uses a fresh random salt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrInvalidCredentialInput
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash.
// bcrypt compares in constant time; an empty plaintext never matches.
func (h *Hasher) Verify(plaintext, hash string) bool {
	if plaintext == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// DummyHash returns a valid hash at the configured cost that matches no real password.
func (h *Hasher) DummyHash() string {
	return string(h.dummy)
}
