package sealbox

import "strings"

// Segment is one parsed unit of a field path expression.
//
// A plain key addresses an object member. A key with IsArray addresses an
// array-valued member whose elements the remaining segments apply to. The
// root-array marker (empty key, IsRootArray) means the field's own value is
// the array to iterate; it can only appear as the first segment.
type Segment struct {
	Key         string
	IsArray     bool
	IsRootArray bool
}

// Path is a compiled field path: an ordered sequence of segments.
type Path []Segment

// ParsePath compiles a path string into segments.
//
// Grammar: dot-separated keys, where any key may be suffixed with "[]" to
// mark its value as an array to iterate, and a path may begin with "[]" to
// mark the field's own value as the array. Examples:
//
//	"name"
//	"contactInfo.email"
//	"[].street"
//	"addresses[].contacts[].email"
//
// There is no escaping mechanism for literal '.' or '[' in key names; keys
// containing those characters cannot be addressed. Any empty non-root key
// ("", "a..b", ".a", "a.") fails with ErrEmptyPathSegment.
func ParsePath(path string) (Path, error) {
	var segs Path
	var key strings.Builder
	inBracket := false
	closed := false // previous segment was just emitted by a bracket pair

	for _, r := range path {
		switch {
		case inBracket:
			// Only ']' is meaningful inside brackets; index content is
			// ignored, brackets are pure array markers.
			if r == ']' {
				inBracket = false
				closed = true
			}

		case r == '[':
			inBracket = true
			if key.Len() == 0 {
				if len(segs) != 0 || closed {
					return nil, newPathError(ErrEmptyPathSegment, path)
				}
				segs = append(segs, Segment{IsArray: true, IsRootArray: true})
				continue
			}
			segs = append(segs, Segment{Key: key.String(), IsArray: true})
			key.Reset()

		case r == '.':
			if key.Len() == 0 {
				if !closed {
					return nil, newPathError(ErrEmptyPathSegment, path)
				}
				closed = false
				continue
			}
			segs = append(segs, Segment{Key: key.String()})
			key.Reset()
			closed = false

		default:
			// A bracket pair must be followed by '.' or the end of the
			// path; "a[]b" is malformed, not shorthand for "a[].b".
			if closed {
				return nil, newPathError(ErrEmptyPathSegment, path)
			}
			key.WriteRune(r)
		}
	}

	if key.Len() > 0 {
		segs = append(segs, Segment{Key: key.String()})
	} else if !closed {
		// Empty path, trailing '.', or unclosed bracket.
		return nil, newPathError(ErrEmptyPathSegment, path)
	}

	return segs, nil
}

// String reassembles the path expression from its segments.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if !seg.IsRootArray && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Key)
		if seg.IsArray {
			b.WriteString("[]")
		}
	}
	return b.String()
}
