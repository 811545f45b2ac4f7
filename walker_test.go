package sealbox

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, expr string) Path {
	t.Helper()
	path, err := ParsePath(expr)
	if err != nil {
		t.Fatalf("ParsePath(%q) error: %v", expr, err)
	}
	return path
}

func jsonDoc(t *testing.T, text string) any {
	t.Helper()
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		t.Fatalf("unmarshal test document: %v", err)
	}
	return doc
}

func upper(s string) (string, error) {
	return strings.ToUpper(s), nil
}

func TestWalk_PlainKey(t *testing.T) {
	doc := jsonDoc(t, `{"name": "alice", "age": 30}`)

	if err := Walk(context.Background(), doc, mustParse(t, "name"), upper, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	obj := doc.(map[string]any)
	if obj["name"] != "ALICE" {
		t.Errorf("name = %v, want ALICE", obj["name"])
	}
	if obj["age"] != float64(30) {
		t.Errorf("age = %v, should be untouched", obj["age"])
	}
}

func TestWalk_NestedKey(t *testing.T) {
	doc := jsonDoc(t, `{"contactInfo": {"email": "a@b.c", "phone": "555"}}`)

	if err := Walk(context.Background(), doc, mustParse(t, "contactInfo.email"), upper, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	contact := doc.(map[string]any)["contactInfo"].(map[string]any)
	if contact["email"] != "A@B.C" {
		t.Errorf("email = %v, want A@B.C", contact["email"])
	}
	if contact["phone"] != "555" {
		t.Errorf("phone = %v, should be untouched", contact["phone"])
	}
}

func TestWalk_RootArray(t *testing.T) {
	doc := jsonDoc(t, `[{"street": "main st"}, {"street": "side st"}]`)

	if err := Walk(context.Background(), doc, mustParse(t, "[].street"), upper, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	arr := doc.([]any)
	if arr[0].(map[string]any)["street"] != "MAIN ST" {
		t.Errorf("first street = %v", arr[0].(map[string]any)["street"])
	}
	if arr[1].(map[string]any)["street"] != "SIDE ST" {
		t.Errorf("second street = %v", arr[1].(map[string]any)["street"])
	}
}

func TestWalk_NestedArrays(t *testing.T) {
	doc := jsonDoc(t, `[
		{"contacts": [{"email": "one@x.y"}]},
		{"contacts": [{"email": "two@x.y"}]}
	]`)

	var count int
	fn := func(s string) (string, error) {
		count++
		return strings.ToUpper(s), nil
	}

	if err := Walk(context.Background(), doc, mustParse(t, "[].contacts[].email"), fn, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	if count != 2 {
		t.Errorf("transformed %d leaves, want 2", count)
	}
}

func TestWalk_ArrayOfStrings(t *testing.T) {
	doc := jsonDoc(t, `{"tags": ["red", "blue"]}`)

	if err := Walk(context.Background(), doc, mustParse(t, "tags[]"), upper, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	tags := doc.(map[string]any)["tags"].([]any)
	if tags[0] != "RED" || tags[1] != "BLUE" {
		t.Errorf("tags = %v", tags)
	}
}

func TestWalk_NullIntermediateSkipped(t *testing.T) {
	doc := jsonDoc(t, `{"addresses": null}`)

	var count int
	fn := func(s string) (string, error) {
		count++
		return s, nil
	}

	if err := Walk(context.Background(), doc, mustParse(t, "addresses[].city"), fn, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if count != 0 {
		t.Errorf("transformed %d leaves, want 0", count)
	}
}

func TestWalk_MissingKeySkipped(t *testing.T) {
	doc := jsonDoc(t, `{"other": "value"}`)

	if err := Walk(context.Background(), doc, mustParse(t, "contactInfo.email"), upper, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
}

func TestWalk_TypeMismatchSkipped(t *testing.T) {
	// Heterogeneous historical data: addresses is a string, not an array.
	doc := jsonDoc(t, `{"addresses": "not an array"}`)

	if err := Walk(context.Background(), doc, mustParse(t, "addresses[].city"), upper, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	if doc.(map[string]any)["addresses"] != "not an array" {
		t.Error("mismatched value should be untouched")
	}
}

func TestWalk_NonStringLeafSkipped(t *testing.T) {
	doc := jsonDoc(t, `{"name": 42}`)

	if err := Walk(context.Background(), doc, mustParse(t, "name"), upper, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if doc.(map[string]any)["name"] != float64(42) {
		t.Error("non-string leaf should be untouched")
	}
}

func TestWalk_EncryptFailureIsHard(t *testing.T) {
	doc := jsonDoc(t, `{"name": "alice"}`)

	fail := func(string) (string, error) {
		return "", errors.New("boom")
	}

	err := Walk(context.Background(), doc, mustParse(t, "name"), fail, DirectionEncrypt)
	if !errors.Is(err, ErrEncrypt) {
		t.Fatalf("error = %v, want ErrEncrypt", err)
	}

	var transformErr *TransformError
	if !errors.As(err, &transformErr) {
		t.Fatal("error is not *TransformError")
	}
}

func TestWalk_DecryptFailureTolerated(t *testing.T) {
	doc := jsonDoc(t, `{"a": "plain", "b": "also plain"}`)

	var count int
	fn := func(s string) (string, error) {
		count++
		if s == "plain" {
			return "", errors.New("not ciphertext")
		}
		return strings.ToUpper(s), nil
	}

	for _, expr := range []string{"a", "b"} {
		if err := Walk(context.Background(), doc, mustParse(t, expr), fn, DirectionDecrypt); err != nil {
			t.Fatalf("Walk(%q) error: %v", expr, err)
		}
	}

	obj := doc.(map[string]any)
	if obj["a"] != "plain" {
		t.Errorf("failed leaf should keep original value, got %v", obj["a"])
	}
	if obj["b"] != "ALSO PLAIN" {
		t.Errorf("sibling leaf should still be transformed, got %v", obj["b"])
	}
	if count != 2 {
		t.Errorf("transform called %d times, want 2", count)
	}
}

func TestWalk_EncryptSkipsAlreadyEncrypted(t *testing.T) {
	s := newTestSealer(t)
	doc := jsonDoc(t, `{"name": "alice"}`)
	path := mustParse(t, "name")
	ctx := context.Background()

	if err := Walk(ctx, doc, path, s.Encrypt, DirectionEncrypt); err != nil {
		t.Fatalf("first Walk() error: %v", err)
	}
	once := doc.(map[string]any)["name"].(string)

	if err := Walk(ctx, doc, path, s.Encrypt, DirectionEncrypt); err != nil {
		t.Fatalf("second Walk() error: %v", err)
	}
	twice := doc.(map[string]any)["name"].(string)

	if once != twice {
		t.Error("second walk should be a no-op on already-encrypted value")
	}

	decrypted, err := s.Decrypt(twice)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	if decrypted != "alice" {
		t.Errorf("Decrypt() = %q, want %q", decrypted, "alice")
	}
}

func TestWalk_EmptyPath(t *testing.T) {
	doc := jsonDoc(t, `{"name": "alice"}`)
	if err := Walk(context.Background(), doc, nil, upper, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
}

func TestWalk_DepthCap(t *testing.T) {
	// Build a document nested beyond the recursion cap.
	leaf := map[string]any{"name": "deep"}
	node := any(leaf)
	expr := "name"
	for i := 0; i < maxWalkDepth+10; i++ {
		node = map[string]any{"next": node}
		expr = "next." + expr
	}

	if err := Walk(context.Background(), node, mustParse(t, expr), upper, DirectionEncrypt); err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if leaf["name"] != "deep" {
		t.Error("leaf beyond the depth cap should be untouched")
	}
}
