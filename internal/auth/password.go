// Package auth provides password hashing and session token utilities.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor. Cost 10 takes tens of
// milliseconds per call on commodity hardware, which keeps brute-forcing
// expensive without making login latency noticeable.
const PasswordCost = 10

// HashPassword creates a bcrypt hash of the given plaintext password.
// The salt is generated per call and embedded in the output.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the hash.
// A malformed hash returns false rather than an error so callers can never
// mistake a parse failure for a successful authentication.
func CheckPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
