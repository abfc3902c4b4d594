package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

// PasswordHasher wraps bcrypt with a tunable work factor. Verification is
// constant-time with respect to match/mismatch by bcrypt's contract.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the one-way salted hash of plaintext. It fails only on an
// internal bcrypt fault, never on input shape.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", domain.ErrHashing
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored hash.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
