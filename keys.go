package sealbox

import "encoding/hex"

// LegacyVersion is the key version of the legacy two-part wire format.
// Legacy ciphertexts are encrypted directly under the master key; the
// keyring only ever decrypts them, never produces them.
const LegacyVersion = "0001"

const (
	masterKeySize = 32 // bytes
	rootKeySize   = 16 // bytes
	versionLength = 4  // characters
)

// Keyring holds the master key and the set of versioned root keys.
// It is immutable after construction and safe for concurrent use.
//
// Root key rotation is additive: register a new, higher-sorting version and
// keep the old ones so historical ciphertexts stay decryptable.
type Keyring struct {
	master  []byte
	roots   map[string][]byte
	current string
}

// NewKeyring validates and loads key material.
//
// masterKeyHex must be exactly 64 hex characters (32 bytes). Every entry in
// rootKeys maps a 4-character version to exactly 32 hex characters
// (16 bytes). The current version is the lexicographically greatest version
// string; deployments are expected to use zero-padded numeric versions
// ("0001", "0002", ...) so lexicographic order matches rotation order.
func NewKeyring(masterKeyHex string, rootKeys map[string]string) (*Keyring, error) {
	master, err := hex.DecodeString(masterKeyHex)
	if err != nil || len(master) != masterKeySize {
		return nil, newKeyError(ErrMasterKeySize, "")
	}

	if len(rootKeys) == 0 {
		return nil, newKeyError(ErrNoRootKeys, "")
	}

	roots := make(map[string][]byte, len(rootKeys))
	current := ""
	for version, keyHex := range rootKeys {
		if len(version) != versionLength {
			return nil, newKeyError(ErrVersionLength, version)
		}
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != rootKeySize {
			return nil, newKeyError(ErrRootKeySize, version)
		}
		roots[version] = key
		if version > current {
			current = version
		}
	}

	return &Keyring{
		master:  master,
		roots:   roots,
		current: current,
	}, nil
}

// Lookup returns the root key registered for version.
func (k *Keyring) Lookup(version string) ([]byte, bool) {
	key, ok := k.roots[version]
	return key, ok
}

// Current returns the current (highest-sorting) version and its root key.
func (k *Keyring) Current() (string, []byte) {
	return k.current, k.roots[k.current]
}

// Versions returns the number of registered root key versions.
func (k *Keyring) Versions() int {
	return len(k.roots)
}
