// Package crypt collects the small cryptographic helpers the app needs.
package crypt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the hex SHA-256 of the input.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SecureCompare reports whether two strings are equal in constant time.
// Used for webhook callback token verification.
func SecureCompare(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
