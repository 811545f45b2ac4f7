package sealbox

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns the lowercase-hex SHA-256 digest of text.
// It is case- and whitespace-sensitive. Used internally as the tamper check
// of the ciphertext wire format, and independently as an equality-searchable
// fingerprint of field values. Empty and whitespace-only strings hash
// normally.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// NormalizedFingerprint returns the SHA-256 digest of the trimmed,
// lowercased text. Use for values with variable formatting (emails, names)
// where fingerprints must compare equal across representations.
func NormalizedFingerprint(text string) string {
	return Fingerprint(strings.ToLower(strings.TrimSpace(text)))
}

// VerifyFingerprint reports whether sum is the fingerprint of text.
func VerifyFingerprint(text, sum string) bool {
	return Fingerprint(text) == sum
}

// VerifyNormalizedFingerprint reports whether sum is the normalized
// fingerprint of text.
func VerifyNormalizedFingerprint(text, sum string) bool {
	return NormalizedFingerprint(text) == sum
}
