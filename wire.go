package sealbox

import "strings"

// Ciphertext wire formats, joined by '^':
//
//	current: VERSION ^ ENVELOPE_KEY ^ DIGEST ^ SECRET_DATA
//	legacy:  VERSION ^ SECRET_DATA
//
// VERSION is exactly 4 ASCII characters. ENVELOPE_KEY and SECRET_DATA are
// base64 (standard alphabet, padded) of IV || ciphertext. DIGEST is 64
// lowercase hex characters. The separator cannot appear inside base64 or
// hex payloads, so splitting on it is unambiguous for real ciphertexts.
const wireSeparator = "^"

// envelope is the decoded form of a ciphertext string.
type envelope struct {
	Version string
	Key     string // data key encrypted under the named root key version
	Digest  string // SHA-256 of the plaintext, hex
	Data    string // plaintext encrypted under the data key
}

// wireKind classifies a decoded ciphertext string.
type wireKind int

const (
	wireMalformed wireKind = iota
	wireCurrent
	wireLegacy
)

// encodeWire assembles the four-part current format.
func encodeWire(e envelope) string {
	return strings.Join([]string{e.Version, e.Key, e.Digest, e.Data}, wireSeparator)
}

// decodeWire splits a ciphertext string and dispatches on field count:
// 4 fields is the current format, 2 is the legacy format, anything else is
// malformed. No field content is validated here; that is the sealer's job.
func decodeWire(text string) (envelope, wireKind) {
	parts := strings.Split(text, wireSeparator)
	switch len(parts) {
	case 4:
		return envelope{Version: parts[0], Key: parts[1], Digest: parts[2], Data: parts[3]}, wireCurrent
	case 2:
		return envelope{Version: parts[0], Data: parts[1]}, wireLegacy
	default:
		return envelope{}, wireMalformed
	}
}

// LooksEncrypted reports whether text has the shape of a ciphertext.
// The encrypt path uses it to avoid double-encrypting values that are
// already ciphertext.
//
// The check is best-effort: a plaintext that happens to contain three '^'
// characters with non-empty segments of the right shape is misclassified as
// ciphertext and skipped on encryption. This is a known limitation, kept
// loose deliberately so behavior stays stable for data already persisted
// under this rule.
func LooksEncrypted(text string) bool {
	parts := strings.Split(text, wireSeparator)
	switch len(parts) {
	case 4:
		return len(parts[0]) == versionLength &&
			parts[1] != "" && parts[2] != "" && parts[3] != ""
	case 2:
		return parts[0] == LegacyVersion && parts[1] != ""
	default:
		return false
	}
}
