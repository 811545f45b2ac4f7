package sealbox

// HashAlgo represents a supported hash-field algorithm.
type HashAlgo string

const (
	// HashSHA256 uses SHA-256 for deterministic fingerprints (fast, no salt).
	// The default for hash fields. NOT for passwords.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512 for deterministic fingerprints (fast, no salt).
	// NOT for passwords.
	HashSHA512 HashAlgo = "sha512"

	// HashArgon2 uses Argon2id for password hashing (salted, slow).
	// Salted hashes are not equality-searchable.
	HashArgon2 HashAlgo = "argon2"

	// HashBcrypt uses bcrypt for password hashing (salted, slow).
	// Salted hashes are not equality-searchable.
	HashBcrypt HashAlgo = "bcrypt"
)

// Encoding selects the output encoding of deterministic hash fields.
type Encoding string

const (
	// EncodingHex encodes digests as lowercase hex. The default.
	EncodingHex Encoding = "hex"

	// EncodingBase64 encodes digests with the standard base64 alphabet.
	EncodingBase64 Encoding = "base64"
)

// validHashAlgos contains all valid hash algorithms for policy validation.
var validHashAlgos = map[HashAlgo]bool{
	HashSHA256: true,
	HashSHA512: true,
	HashArgon2: true,
	HashBcrypt: true,
}

// validEncodings contains all valid hash encodings for policy validation.
var validEncodings = map[Encoding]bool{
	EncodingHex:    true,
	EncodingBase64: true,
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return validHashAlgos[algo]
}

// IsValidEncoding returns true if the encoding is a known hash encoding.
func IsValidEncoding(enc Encoding) bool {
	return validEncodings[enc]
}
