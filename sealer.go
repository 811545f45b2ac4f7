package sealbox

// Sealer performs envelope encryption of string values.
//
// Encrypt generates a fresh random data key per value, encrypts the
// plaintext under it, encrypts the data key under the keyring's current
// root key, and emits the versioned four-part wire format. Decrypt reverses
// the process and additionally accepts the legacy two-part format encrypted
// directly under the master key.
//
// A Sealer only reads its keyring, so a single instance is safe for
// concurrent use once constructed.
type Sealer struct {
	keyring *Keyring
}

// NewSealer returns a Sealer backed by the given keyring.
func NewSealer(keyring *Keyring) *Sealer {
	return &Sealer{keyring: keyring}
}

// Encrypt converts plaintext into a versioned ciphertext string.
// Empty and whitespace-only plaintexts are processed normally.
//
// Encryption failures are always hard failures. The sealer never substitutes
// empty output for an error, because doing so risks persisting sensitive
// plaintext under the illusion it was protected.
func (s *Sealer) Encrypt(plaintext string) (string, error) {
	version, rootKey := s.keyring.Current()

	dataKey, err := newDataKey()
	if err != nil {
		return "", err
	}

	secretData, err := encryptCBC([]byte(plaintext), dataKey)
	if err != nil {
		return "", err
	}

	envelopeKey, err := encryptCBC(dataKey, rootKey)
	if err != nil {
		return "", err
	}

	return encodeWire(envelope{
		Version: version,
		Key:     envelopeKey,
		Digest:  Fingerprint(plaintext),
		Data:    secretData,
	}), nil
}

// Decrypt converts a ciphertext string back into plaintext.
//
// Current-format ciphertexts require the referenced root key version to be
// registered and the recovered plaintext to match the embedded digest.
// Legacy-format ciphertexts must name the legacy version and decrypt
// directly under the master key. Anything else is ErrMalformedCiphertext.
func (s *Sealer) Decrypt(text string) (string, error) {
	env, kind := decodeWire(text)

	switch kind {
	case wireCurrent:
		return s.decryptCurrent(env)
	case wireLegacy:
		return s.decryptLegacy(env)
	default:
		return "", ErrMalformedCiphertext
	}
}

func (s *Sealer) decryptCurrent(env envelope) (string, error) {
	rootKey, ok := s.keyring.Lookup(env.Version)
	if !ok {
		return "", newKeyError(ErrUnknownKeyVersion, env.Version)
	}

	dataKey, err := decryptCBC(env.Key, rootKey)
	if err != nil {
		return "", err
	}
	if len(dataKey) != rootKeySize {
		return "", ErrDecryptionFailed
	}

	plaintext, err := decryptCBC(env.Data, dataKey)
	if err != nil {
		return "", err
	}

	if Fingerprint(string(plaintext)) != env.Digest {
		return "", ErrDigestMismatch
	}
	return string(plaintext), nil
}

func (s *Sealer) decryptLegacy(env envelope) (string, error) {
	if env.Version != LegacyVersion {
		return "", newKeyError(ErrUnknownKeyVersion, env.Version)
	}

	plaintext, err := decryptCBC(env.Data, s.keyring.master)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
