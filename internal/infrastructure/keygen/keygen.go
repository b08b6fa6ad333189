package keygen

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// TokenPrefix identifies planner session tokens so they are recognizable
// in logs and browser storage without revealing the secret.
const TokenPrefix = "ps"

// GenerateSessionToken creates an opaque bearer token of the form
// {prefix}-{secret}, where the secret is 32 random bytes base64-encoded
// (43 chars).
func GenerateSessionToken() (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(secretBytes)

	return fmt.Sprintf("%s-%s", TokenPrefix, secret), nil
}

// HashSecret computes BLAKE2b-256 hash of the secret and returns hex-encoded string.
// BLAKE2b is faster than SHA-256 while maintaining security for high-entropy tokens.
func HashSecret(secret string) string {
	hash := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(hash[:])
}

// MaskToken returns a safe-to-log version of a token showing only the prefix.
// Example: "ps-8h3k2jf9s7d6..." -> "ps-***"
func MaskToken(token string) string {
	prefix, _, ok := strings.Cut(token, "-")
	if !ok {
		return "***"
	}
	return prefix + "-***"
}
