package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("Str0ng!Pass#1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "Str0ng!Pass#1" {
		t.Fatalf("hash equals plaintext")
	}
	if !h.Verify("Str0ng!Pass#1", hash) {
		t.Fatalf("verify rejected matching password")
	}
	if h.Verify("wrongpass", hash) {
		t.Fatalf("verify accepted wrong password")
	}
}

func TestPasswordHasher_DistinctSalts(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password-123!A")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	b, err := h.Hash("same-password-123!A")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password are identical")
	}
}

func TestPasswordHasher_CostClamped(t *testing.T) {
	h := NewPasswordHasher(99)

	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash failed with out-of-range cost: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %s", hash)
	}
}
