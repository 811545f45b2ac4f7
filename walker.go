package sealbox

import "context"

// Direction selects the walker's transform mode. The two modes differ in
// failure policy: encryption failures abort the walk, decryption failures
// leave the leaf untouched and continue.
type Direction int

const (
	// DirectionEncrypt applies the transform to plaintext leaves.
	DirectionEncrypt Direction = iota

	// DirectionDecrypt applies the transform to ciphertext leaves.
	DirectionDecrypt
)

// TransformFunc converts one string leaf value.
type TransformFunc func(string) (string, error)

// maxWalkDepth caps recursion. JSON trees are acyclic by construction, but
// the cap bounds pathological inputs; descent stops silently beyond it.
const maxWalkDepth = 64

// Walk applies fn to every string leaf of root addressed by path, mutating
// matched leaves in place. root is a parsed-JSON tree (map[string]any,
// []any, scalars), as produced by encoding/json into any.
//
// Traversal is tolerant of heterogeneous historical data: an array segment
// addressing a non-array records a mismatch signal and skips; a missing or
// null intermediate value skips silently; a non-string leaf skips silently.
//
// In DirectionEncrypt, leaves that already look encrypted are skipped, and
// a transform failure aborts the walk with a TransformError. In
// DirectionDecrypt, a transform failure leaves the original value in place,
// emits a warning signal, and the walk continues; the common case is a
// plaintext value from before an encryption migration.
func Walk(ctx context.Context, root any, path Path, fn TransformFunc, dir Direction) error {
	w := &walker{ctx: ctx, dir: dir, fn: fn, path: path.String()}
	return w.walk(root, path, 0)
}

// walker carries one walk invocation's state and counters.
type walker struct {
	ctx   context.Context
	dir   Direction
	fn    TransformFunc
	field string // owning policy field, empty for bare Walk
	path  string

	hashField string
	hashFn    func(string) (string, error)

	applied int // leaves transformed
	misses  int // decrypt failures left as-is
	skipped int // already-encrypted leaves and type mismatches
}

// walk consumes one segment per call.
func (w *walker) walk(node any, segs Path, depth int) error {
	if len(segs) == 0 || depth > maxWalkDepth {
		return nil
	}
	seg, rest := segs[0], segs[1:]

	if seg.IsRootArray {
		arr, ok := node.([]any)
		if !ok {
			w.mismatch()
			return nil
		}
		return w.walkArray(arr, rest, depth)
	}

	obj, ok := node.(map[string]any)
	if !ok {
		return nil
	}
	val, ok := obj[seg.Key]
	if !ok || val == nil {
		return nil
	}

	if seg.IsArray {
		arr, ok := val.([]any)
		if !ok {
			w.mismatch()
			return nil
		}
		return w.walkArray(arr, rest, depth)
	}

	if len(rest) == 0 {
		leaf, ok := val.(string)
		if !ok {
			return nil
		}
		return w.apply(leaf, obj, func(out string) { obj[seg.Key] = out })
	}

	return w.walk(val, rest, depth+1)
}

// walkArray recurses into every element with the remaining segments. When
// no segments remain the elements themselves are the leaves.
func (w *walker) walkArray(arr []any, rest Path, depth int) error {
	if len(rest) == 0 {
		for i, el := range arr {
			leaf, ok := el.(string)
			if !ok {
				continue
			}
			if err := w.apply(leaf, nil, func(out string) { arr[i] = out }); err != nil {
				return err
			}
		}
		return nil
	}
	for _, el := range arr {
		if err := w.walk(el, rest, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// apply transforms one leaf. parent is the enclosing object when the leaf
// is an object member, used to write the hash field; array-element leaves
// have no enclosing object and get no hash field.
func (w *walker) apply(leaf string, parent map[string]any, set func(string)) error {
	if w.dir == DirectionEncrypt {
		if LooksEncrypted(leaf) {
			w.skipped++
			return nil
		}
		if w.hashFn != nil && parent != nil {
			sum, err := w.hashFn(leaf)
			if err != nil {
				return newTransformError(ErrEncrypt, w.field, w.path, err)
			}
			parent[w.hashField] = sum
		}
		out, err := w.fn(leaf)
		if err != nil {
			return newTransformError(ErrEncrypt, w.field, w.path, err)
		}
		set(out)
		w.applied++
		return nil
	}

	out, err := w.fn(leaf)
	if err != nil {
		emitDecryptMiss(w.ctx, w.field, w.path, err)
		w.misses++
		return nil
	}
	set(out)
	w.applied++
	return nil
}

// mismatch records an array segment addressing a non-array value.
func (w *walker) mismatch() {
	w.skipped++
	emitTypeMismatch(w.ctx, w.field, w.path)
}
