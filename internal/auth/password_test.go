package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_Format(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	// bcrypt hashes embed version and cost: $2a$10$...
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash should be in bcrypt format, got: %s", hash)
	}
	if hash == "secret123" {
		t.Error("Hash must not equal the plaintext")
	}
}

func TestHashPassword_Uniqueness(t *testing.T) {
	t.Parallel()

	password := "the_same_password_12345"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	// Same password should produce different hashes (different salts)
	if hash1 == hash2 {
		t.Error("Same password should produce different hashes due to random salt")
	}

	if !CheckPassword(password, hash1) || !CheckPassword(password, hash2) {
		t.Error("Both hashes should verify correctly")
	}
}

func TestCheckPassword_Correct(t *testing.T) {
	t.Parallel()

	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !CheckPassword(password, hash) {
		t.Error("Correct password should verify")
	}
}

func TestCheckPassword_Incorrect(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("right-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if CheckPassword("wrong-password", hash) {
		t.Error("Wrong password should not verify")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"garbage", "not-a-bcrypt-hash"},
		{"truncated", "$2a$10$tooshort"},
		{"wrong algorithm", "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Malformed hashes must fail closed, never panic or report a match.
			if CheckPassword("anything", tt.hash) {
				t.Errorf("Malformed hash %q should not verify", tt.hash)
			}
		})
	}
}
