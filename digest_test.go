package sealbox

import "testing"

func TestFingerprint_KnownValue(t *testing.T) {
	// SHA-256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := Fingerprint("hello"); got != want {
		t.Errorf("Fingerprint(hello) = %q, want %q", got, want)
	}
}

func TestFingerprint_EmptyString(t *testing.T) {
	// Empty strings hash normally, never short-circuit.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Fingerprint(""); got != want {
		t.Errorf("Fingerprint(\"\") = %q, want %q", got, want)
	}
}

func TestFingerprint_CaseSensitive(t *testing.T) {
	if Fingerprint("Hello") == Fingerprint("hello") {
		t.Error("Fingerprint should be case-sensitive")
	}
	if Fingerprint(" hello") == Fingerprint("hello") {
		t.Error("Fingerprint should be whitespace-sensitive")
	}
}

func TestNormalizedFingerprint(t *testing.T) {
	a := NormalizedFingerprint("  Alice@Example.COM ")
	b := NormalizedFingerprint("alice@example.com")
	if a != b {
		t.Errorf("normalized fingerprints differ: %q vs %q", a, b)
	}

	if NormalizedFingerprint("alice@example.com") == NormalizedFingerprint("bob@example.com") {
		t.Error("distinct values should have distinct fingerprints")
	}
}

func TestVerifyFingerprint(t *testing.T) {
	sum := Fingerprint("hello")

	if !VerifyFingerprint("hello", sum) {
		t.Error("VerifyFingerprint should accept the matching value")
	}
	if VerifyFingerprint("Hello", sum) {
		t.Error("VerifyFingerprint should reject a different value")
	}
}

func TestVerifyNormalizedFingerprint(t *testing.T) {
	sum := NormalizedFingerprint("Alice@Example.com")

	if !VerifyNormalizedFingerprint("  alice@example.COM ", sum) {
		t.Error("VerifyNormalizedFingerprint should accept equivalent formatting")
	}
	if VerifyNormalizedFingerprint("bob@example.com", sum) {
		t.Error("VerifyNormalizedFingerprint should reject a different value")
	}
}
