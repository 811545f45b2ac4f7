package sealbox

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrMasterKeySize indicates the master key hex string does not decode
	// to exactly 32 bytes.
	ErrMasterKeySize = errors.New("invalid master key size")

	// ErrNoRootKeys indicates an empty root key set was supplied.
	ErrNoRootKeys = errors.New("no root keys")

	// ErrVersionLength indicates a root key version is not exactly 4 characters.
	ErrVersionLength = errors.New("invalid key version length")

	// ErrRootKeySize indicates a root key hex string does not decode to
	// exactly 16 bytes.
	ErrRootKeySize = errors.New("invalid root key size")

	// ErrUnknownKeyVersion indicates a ciphertext references a key version
	// that is not registered in the keyring.
	ErrUnknownKeyVersion = errors.New("unknown key version")

	// ErrInvalidKeySize indicates an encryption key has an invalid size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrDecryptionFailed indicates a ciphertext could not be decrypted.
	// The cause (bad encoding, wrong key, corrupt padding) is deliberately
	// not distinguished.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrDigestMismatch indicates the recovered plaintext does not match the
	// digest stored in the ciphertext.
	ErrDigestMismatch = errors.New("digest mismatch")

	// ErrMalformedCiphertext indicates a value is not a recognized ciphertext
	// wire format.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// ErrEmptyPathSegment indicates a field path contains an empty key.
	ErrEmptyPathSegment = errors.New("empty path segment")

	// ErrMissingHasher indicates a required hasher was not registered.
	ErrMissingHasher = errors.New("missing hasher")

	// ErrInvalidPolicy indicates a field policy has an invalid option value.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrEncrypt indicates encryption of a field failed.
	ErrEncrypt = errors.New("encrypt failed")

	// ErrDecrypt indicates decryption of a field failed.
	ErrDecrypt = errors.New("decrypt failed")
)

// KeyError represents invalid key material supplied to NewKeyring, or a key
// lookup failure during decryption. It wraps a sentinel error with the
// affected version. Key bytes are never included.
type KeyError struct {
	Err     error  // Underlying sentinel error (ErrMasterKeySize, etc.)
	Version string // Root key version that triggered the error, if any
}

func (e *KeyError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("%s (version %q)", e.Err.Error(), e.Version)
	}
	return e.Err.Error()
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// PathError represents a malformed field path string. Paths are compiled
// once at configuration time, so a PathError always surfaces at
// construction, never per record.
type PathError struct {
	Err  error  // Underlying sentinel error (ErrEmptyPathSegment)
	Path string // Path string that failed to parse
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s in path %q", e.Err.Error(), e.Path)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ConfigError represents a protector configuration error.
// It wraps a sentinel error with the field and algorithm involved.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrMissingHasher, etc.)
	Field     string // Field name that triggered the error
	Algorithm string // Algorithm that was missing or invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents an error while transforming a matched leaf.
// It wraps a sentinel error with context about which field and path failed.
type TransformError struct {
	Err   error  // Underlying sentinel error (ErrEncrypt, ErrDecrypt)
	Field string // Field name from the policy
	Path  string // Path expression that addressed the leaf
	Cause error  // Original error from the sealer
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (field %s, path %q): %v", e.Err.Error(), e.Field, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s (field %s, path %q)", e.Err.Error(), e.Field, e.Path)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// newKeyError creates a KeyError for bad key material or version lookups.
func newKeyError(sentinel error, version string) error {
	return &KeyError{Err: sentinel, Version: version}
}

// newPathError creates a PathError for malformed path strings.
func newPathError(sentinel error, path string) error {
	return &PathError{Err: sentinel, Path: path}
}

// newConfigError creates a ConfigError for missing handler scenarios.
func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{Err: sentinel, Algorithm: algorithm, Field: field}
}

// newTransformError creates a TransformError for leaf transformation failures.
func newTransformError(sentinel error, field, path string, cause error) error {
	return &TransformError{Err: sentinel, Field: field, Path: path, Cause: cause}
}
