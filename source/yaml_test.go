package source_test

import (
	"context"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/reoring/objenc"
	"github.com/reoring/objenc/source"
)

func TestYAML_TagsAndShapes(t *testing.T) {
	in := []byte(`
name: svc
replicas: 3
ratio: 0.5
enabled: yes
nothing: ~
quoted: "42"
big: 18446744073709551615
ports: [80, 443]
1: one
`)
	got, err := objenc.Encode(context.Background(), source.YAML(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"name":     "svc",
		"replicas": int64(3),
		"ratio":    0.5,
		"enabled":  "yes", // YAML 1.2 core schema: not a bool
		"nothing":  nil,
		"quoted":   "42",
		"big":      uint64(18446744073709551615),
		"ports":    []any{int64(80), int64(443)},
		"1":        "one",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v\nwant %#v", got, want)
	}
}

func TestYAML_MergeKeysAndAliases(t *testing.T) {
	in := []byte(`
base: &base
  a: 1
  b: 2
extra: &extra
  b: 20
  c: 30
merged:
  <<: [*base, *extra]
  c: 300
alias: *base
`)
	got, err := objenc.Encode(context.Background(), source.YAML(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := got.(map[string]any)
	wantMerged := map[string]any{"a": int64(1), "b": int64(2), "c": int64(300)}
	if !reflect.DeepEqual(m["merged"], wantMerged) {
		t.Fatalf("merged = %#v want %#v", m["merged"], wantMerged)
	}
	if !reflect.DeepEqual(m["alias"], map[string]any{"a": int64(1), "b": int64(2)}) {
		t.Fatalf("alias = %#v", m["alias"])
	}
}

func TestYAML_NonFinitePolicy(t *testing.T) {
	in := []byte("v: .inf\n")
	_, err := objenc.Encode(context.Background(), source.YAML(in))
	iss, ok := objenc.AsIssues(err)
	if !ok || iss[0].Code != objenc.CodeNonFinite || iss[0].Path != "/v" {
		t.Fatalf("expected non_finite at /v, got %v", err)
	}
	opt := objenc.Options{Strictness: objenc.Strictness{AllowNonFinite: true}}
	if _, err := objenc.Encode(context.Background(), source.YAML(in), opt); err != nil {
		t.Fatalf("allowed non-finite must encode: %v", err)
	}
}

func TestYAML_EmptyAndInvalid(t *testing.T) {
	got, err := objenc.Encode(context.Background(), source.YAML(nil))
	if err != nil || got != nil {
		t.Fatalf("empty document: got %#v, %v", got, err)
	}
	_, err = objenc.Encode(context.Background(), source.YAML([]byte("a: [1, 2\n")))
	iss, ok := objenc.AsIssues(err)
	if !ok || iss[0].Code != objenc.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
	_, err = objenc.Encode(context.Background(), source.YAML([]byte("? [a, b]\n: v\n")))
	iss, ok = objenc.AsIssues(err)
	if !ok || iss[0].Code != objenc.CodeUnsupported {
		t.Fatalf("expected unsupported for sequence key, got %v", err)
	}
}

func TestYAMLStream(t *testing.T) {
	got, err := objenc.Encode(context.Background(), source.YAMLStream([]byte("a: 1\n---\n- x\n---\nplain\n")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{map[string]any{"a": int64(1)}, []any{"x"}, "plain"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestYAMLNode(t *testing.T) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte("k: [true, null]"), &n); err != nil {
		t.Fatal(err)
	}
	got, err := objenc.Encode(context.Background(), source.YAMLNode(&n))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]any{"k": []any{true, nil}}) {
		t.Fatalf("got %#v", got)
	}
}
