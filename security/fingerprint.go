// Package security holds helpers for handling the DataMall account key.
package security

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a short, stable, non-reversible identifier for an API
// key, suitable for logs. An empty key yields "none".
func Fingerprint(key string) string {
	if key == "" {
		return "none"
	}
	sum := blake2b.Sum256([]byte(key))
	return hex.EncodeToString(sum[:6])
}

// Mask hides all but the last four characters of a key.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// ConstantTimeCompare compares two byte slices in constant time.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ConstantTimeCompareString compares two strings in constant time.
func ConstantTimeCompareString(a, b string) bool {
	return ConstantTimeCompare([]byte(a), []byte(b))
}
