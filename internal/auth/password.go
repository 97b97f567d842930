package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	hashScheme  = "argon2id"
	argonTime   = 1
	argonMemory = 64 * 1024
	argonLanes  = 4
	argonKeyLen = 32
	saltLen     = 16
)

// HashPassword returns "argon2id$<salt>$<hash>" with base64 parts.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonLanes, argonKeyLen)
	return strings.Join([]string{
		hashScheme,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(hash),
	}, "$"), nil
}

// VerifyPassword compares password with a stored hash or legacy plain value.
func VerifyPassword(stored, password string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != hashScheme {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
	}

	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonLanes, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// IsHashed reports whether stored was produced by HashPassword.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, hashScheme+"$")
}
