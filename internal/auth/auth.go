// Package auth holds the password hashing and policy used by the account
// endpoints and the first-run admin provisioning.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// hashCost trades login latency for brute-force resistance. Logins are
	// rare here; translation sessions are long-lived.
	hashCost = 14

	// MinPasswordLength applies to registration and password changes.
	MinPasswordLength = 8
)

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword enforces the password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
