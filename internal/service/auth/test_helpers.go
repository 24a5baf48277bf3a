package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// mustHash hashes a password at the minimum bcrypt cost for fast tests.
func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}
