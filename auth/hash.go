package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashToken creates a SHA-256 hash of a token for secure storage.
// Store the hash in config or a secrets file, never the token itself.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// VerifyTokenHash reports whether token hashes to storedHash.
// The comparison is constant-time so callers can use it directly
// on bearer tokens from untrusted clients.
func VerifyTokenHash(token, storedHash string) bool {
	h := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(h), []byte(storedHash)) == 1
}
