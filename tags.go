package sealbox

import (
	"fmt"
	"strings"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register compound tags with sentinel
	sentinel.Tag("seal.encrypt")
	sentinel.Tag("seal.hash")
	sentinel.Tag("seal.hashalgo")
	sentinel.Tag("seal.hashenc")
}

// PoliciesFor derives a field policy table from struct tags.
//
// This is optional glue: the core consumes explicit []FieldPolicy tables
// and never depends on struct metadata. Tag syntax:
//
//	type User struct {
//	    Name     string `seal.encrypt:"."`
//	    Contacts string `seal.encrypt:"[].email,[].phone"`
//	    Email    string `seal.encrypt:"." seal.hash:"emailHash" seal.hashenc:"base64"`
//	}
//
// seal.encrypt holds a comma-separated list of path expressions; the value
// "." addresses the field itself. The marker must be non-empty because tags
// with empty values are dropped during metadata extraction. seal.hash names
// the sibling hash field, seal.hashalgo and seal.hashenc select algorithm
// and encoding. Derived policies have both AutoEncrypt and AutoDecrypt set.
func PoliciesFor[T any]() ([]FieldPolicy, error) {
	spec := sentinel.Scan[T]()

	policies := make([]FieldPolicy, 0, len(spec.Fields))
	for _, field := range spec.Fields {
		raw, ok := field.Tags["seal.encrypt"]
		if !ok {
			continue
		}

		var paths []string
		for _, expr := range strings.Split(raw, ",") {
			switch expr = strings.TrimSpace(expr); expr {
			case "":
			case ".":
				paths = append(paths, field.Name)
			default:
				paths = append(paths, expr)
			}
		}

		policy := FieldPolicy{
			Field:       field.Name,
			Paths:       paths,
			AutoEncrypt: true,
			AutoDecrypt: true,
		}

		if hashField, ok := field.Tags["seal.hash"]; ok {
			policy.HashField = hashField
		}
		if algo, ok := field.Tags["seal.hashalgo"]; ok {
			if !IsValidHashAlgo(HashAlgo(algo)) {
				return nil, fmt.Errorf("invalid hash algorithm %q for field %s", algo, field.Name)
			}
			policy.HashAlgo = HashAlgo(algo)
		}
		if enc, ok := field.Tags["seal.hashenc"]; ok {
			if !IsValidEncoding(Encoding(enc)) {
				return nil, fmt.Errorf("invalid hash encoding %q for field %s", enc, field.Name)
			}
			policy.HashEncoding = Encoding(enc)
		}

		policies = append(policies, policy)
	}

	return policies, nil
}
