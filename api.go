// Package sealbox protects sensitive string fields inside structured
// records by converting them to and from a versioned, tamper-evident
// ciphertext, and by locating the fields to protect inside arbitrarily
// nested JSON documents with a small declarative path grammar.
//
// # Envelope Encryption
//
// Every Encrypt call generates a fresh random 16-byte data key, encrypts
// the plaintext under it (AES-128-CBC, PKCS#7, random IV), and encrypts the
// data key under the keyring's current root key. Rotating the root key is
// therefore additive: register a new version and old ciphertexts stay
// decryptable without re-encryption.
//
// # Wire Format
//
// Ciphertexts are strings of four '^'-separated fields:
//
//	VERSION ^ ENVELOPE_KEY ^ DIGEST ^ SECRET_DATA
//
// VERSION is the 4-character root key version. ENVELOPE_KEY and SECRET_DATA
// are base64(IV || ciphertext). DIGEST is the hex SHA-256 of the plaintext,
// verified after decryption as a tamper check. A legacy two-part format
// (VERSION ^ SECRET_DATA, encrypted directly under the master key) is
// decrypted for backward compatibility but never produced.
//
// # Path Syntax
//
// Field paths address string leaves inside a parsed-JSON document:
//
//	"name"                          - object member
//	"contactInfo.email"             - nested member
//	"[].street"                     - the field's value is an array; each
//	                                  element's street member
//	"addresses[].contacts[].email"  - nested array iteration
//
// There is no escaping for literal '.' or '[' in key names.
//
// # Basic Usage
//
//	keyring, _ := sealbox.NewKeyring(masterKeyHex, map[string]string{
//	    "0001": rootKeyHex,
//	})
//	sealer := sealbox.NewSealer(keyring)
//
//	protector, _ := sealbox.NewProtector(sealer, []sealbox.FieldPolicy{
//	    {Field: "email", AutoEncrypt: true, AutoDecrypt: true, HashField: "emailHash"},
//	    {Field: "addresses", Paths: []string{"[].street"}, AutoEncrypt: true, AutoDecrypt: true},
//	})
//
//	var doc map[string]any
//	_ = json.Unmarshal(row, &doc)
//	_ = protector.Encrypt(ctx, doc) // before store
//	_ = protector.Decrypt(ctx, doc) // after load
//
// Struct-tag derivation is available as optional glue:
//
//	type User struct {
//	    Email string `seal.encrypt:"." seal.hash:"emailHash"`
//	}
//	protector, _ := sealbox.For[User](sealer)
//
// # Failure Policy
//
// Encryption failures are always hard failures; the walker never leaves a
// leaf silently unprotected. Decryption failures on individual leaves are
// recoverable: the value is left as-is (assumed plaintext from before an
// encryption migration), a SignalDecryptMiss event is emitted, and the walk
// continues. Malformed paths fail at Protector construction, bad key
// material fails at NewKeyring.
//
// # Hash Fields
//
// A policy's HashField names a sibling key that receives a deterministic
// fingerprint of the plaintext before encryption, so records stay
// equality-searchable after the value itself becomes ciphertext. SHA-256
// hex is the default; SHA-512, base64 encoding, and salted password hashers
// (Argon2id, bcrypt) are available.
//
// # Observability
//
// Operations emit capitan signals (SignalEncryptStart/Complete,
// SignalDecryptStart/Complete, SignalDecryptMiss, SignalTypeMismatch) with
// typed fields for durations, leaf counts, and errors.
//
// # Concurrency
//
// Keyring, Sealer, and Protector are read-only after construction and safe
// for concurrent use without coordination.
//
// # Known Limitations
//
// LooksEncrypted is a shape heuristic: a plaintext containing three '^'
// characters with the right segment shape is skipped on encryption. Key
// names containing '.' or '[' cannot be addressed by paths. Both are
// documented behavior, kept stable for data persisted under these rules.
package sealbox
