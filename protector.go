package sealbox

import (
	"context"
	"sync"
	"time"
)

// FieldPolicy declares how one record field is protected. Policies are an
// explicit, caller-supplied table; the core performs no discovery of its
// own. See PoliciesFor for optional struct-tag derivation.
type FieldPolicy struct {
	// Field is the name of the protected field, used in errors and signals.
	Field string

	// Paths address the string leaves to protect inside the field's value.
	// When empty, the field name itself is used as a single plain-key path.
	Paths []string

	// AutoEncrypt enables this policy during Protector.Encrypt.
	AutoEncrypt bool

	// AutoDecrypt enables this policy during Protector.Decrypt.
	AutoDecrypt bool

	// HashField, when set, names a sibling key that receives a plaintext
	// fingerprint before encryption, giving an equality-searchable column.
	HashField string

	// HashAlgo selects the hash-field algorithm. Defaults to HashSHA256.
	HashAlgo HashAlgo

	// HashEncoding selects the hash-field output encoding for deterministic
	// algorithms. Defaults to EncodingHex. Ignored by salted algorithms,
	// which define their own output format.
	HashEncoding Encoding
}

// fieldPlan is a FieldPolicy with its paths compiled.
type fieldPlan struct {
	field        string
	rawPaths     []string
	paths        []Path
	autoEncrypt  bool
	autoDecrypt  bool
	hashField    string
	hashAlgo     HashAlgo
	hashEncoding Encoding
}

// Protector applies a field policy table to parsed-JSON documents.
//
// Protectors are safe for concurrent use. SetHasher may be called to
// register custom hash algorithms; configure all required hashers before
// the first operation, as validation runs once on first use.
type Protector struct {
	sealer *Sealer

	// Mutable configuration protected by mu
	mu      sync.RWMutex
	hashers map[HashAlgo]Hasher

	// Validation state (runs once on first operation)
	validateOnce sync.Once
	validateErr  error

	// Immutable after construction
	plans []fieldPlan

	// Per-plan hash functions, resolved during validation
	hashFns []func(string) (string, error)
}

// NewProtector compiles a policy table against a sealer.
//
// All paths are parsed here, so malformed path strings fail construction
// with a PathError rather than surfacing per record at runtime. Invalid
// hash encodings fail with a ConfigError.
func NewProtector(sealer *Sealer, policies []FieldPolicy) (*Protector, error) {
	plans := make([]fieldPlan, 0, len(policies))
	for _, policy := range policies {
		raw := policy.Paths
		if len(raw) == 0 {
			raw = []string{policy.Field}
		}

		paths := make([]Path, 0, len(raw))
		for _, expr := range raw {
			path, err := ParsePath(expr)
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}

		algo := policy.HashAlgo
		if algo == "" {
			algo = HashSHA256
		}
		enc := policy.HashEncoding
		if enc == "" {
			enc = EncodingHex
		}
		if !IsValidEncoding(enc) {
			return nil, newConfigError(ErrInvalidPolicy, string(enc), policy.Field)
		}

		plans = append(plans, fieldPlan{
			field:        policy.Field,
			rawPaths:     raw,
			paths:        paths,
			autoEncrypt:  policy.AutoEncrypt,
			autoDecrypt:  policy.AutoDecrypt,
			hashField:    policy.HashField,
			hashAlgo:     algo,
			hashEncoding: enc,
		})
	}

	p := &Protector{
		sealer:  sealer,
		hashers: builtinHashers(),
		plans:   plans,
	}

	emitProtectorCreated(context.Background(), len(plans))
	return p, nil
}

// SetHasher registers a hasher for the given algorithm.
// Returns the protector for chaining. Safe for concurrent use.
func (p *Protector) SetHasher(algo HashAlgo, h Hasher) *Protector {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hashers[algo] = h
	return p
}

// Validate checks that every policy's hash algorithm is registered.
// Validation also runs automatically on first operation; calling Validate
// explicitly allows catching configuration errors at startup.
func (p *Protector) Validate() error {
	return p.ensureValidated()
}

// ensureValidated runs validation once and caches the result.
func (p *Protector) ensureValidated() error {
	p.validateOnce.Do(func() {
		p.mu.RLock()
		defer p.mu.RUnlock()
		p.validateErr = p.resolveHashFns()
	})
	return p.validateErr
}

// resolveHashFns binds each plan's hash field to a concrete hash function.
// Deterministic built-ins honor the plan's encoding directly; every other
// algorithm must be present in the hasher registry.
func (p *Protector) resolveHashFns() error {
	p.hashFns = make([]func(string) (string, error), len(p.plans))
	for i, plan := range p.plans {
		if plan.hashField == "" {
			continue
		}

		switch plan.hashAlgo {
		case HashSHA256:
			h := SHA256Hasher(plan.hashEncoding)
			p.hashFns[i] = func(s string) (string, error) { return h.Hash([]byte(s)) }
		case HashSHA512:
			h := SHA512Hasher(plan.hashEncoding)
			p.hashFns[i] = func(s string) (string, error) { return h.Hash([]byte(s)) }
		default:
			h, ok := p.hashers[plan.hashAlgo]
			if !ok {
				return newConfigError(ErrMissingHasher, string(plan.hashAlgo), plan.field)
			}
			p.hashFns[i] = func(s string) (string, error) { return h.Hash([]byte(s)) }
		}
	}
	return nil
}

// Encrypt walks doc and encrypts every leaf addressed by a policy with
// AutoEncrypt set, writing hash fields where configured. doc is a
// parsed-JSON tree and is mutated in place.
//
// Any leaf encryption failure aborts with a TransformError; partial output
// is possible in the document but the error guarantees the caller never
// mistakes it for a protected record.
func (p *Protector) Encrypt(ctx context.Context, doc any) error {
	if err := p.ensureValidated(); err != nil {
		return err
	}

	start := time.Now()
	emitEncryptStart(ctx, len(p.plans))

	var encrypted, skipped int
	var retErr error
	defer func() {
		emitEncryptComplete(ctx, time.Since(start), encrypted, skipped, retErr)
	}()

	for i, plan := range p.plans {
		if !plan.autoEncrypt {
			continue
		}
		for j, path := range plan.paths {
			w := &walker{
				ctx:       ctx,
				dir:       DirectionEncrypt,
				fn:        p.sealer.Encrypt,
				field:     plan.field,
				path:      plan.rawPaths[j],
				hashField: plan.hashField,
				hashFn:    p.hashFns[i],
			}
			err := w.walk(doc, path, 0)
			encrypted += w.applied
			skipped += w.skipped
			if err != nil {
				retErr = err
				return err
			}
		}
	}
	return nil
}

// Decrypt walks doc and decrypts every leaf addressed by a policy with
// AutoDecrypt set. doc is a parsed-JSON tree and is mutated in place.
//
// Leaves that fail to decrypt are left untouched and reported through
// SignalDecryptMiss; the walk continues. This keeps mixed plaintext and
// ciphertext documents loadable during a migration window.
func (p *Protector) Decrypt(ctx context.Context, doc any) error {
	if err := p.ensureValidated(); err != nil {
		return err
	}

	start := time.Now()
	emitDecryptStart(ctx, len(p.plans))

	var decrypted, misses int
	defer func() {
		emitDecryptComplete(ctx, time.Since(start), decrypted, misses, nil)
	}()

	for _, plan := range p.plans {
		if !plan.autoDecrypt {
			continue
		}
		for j, path := range plan.paths {
			w := &walker{
				ctx:   ctx,
				dir:   DirectionDecrypt,
				fn:    p.sealer.Decrypt,
				field: plan.field,
				path:  plan.rawPaths[j],
			}
			// Decrypt-mode walks only fail on internal invariants, never
			// on leaf decryption.
			_ = w.walk(doc, path, 0)
			decrypted += w.applied
			misses += w.misses
		}
	}
	return nil
}
