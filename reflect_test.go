package objenc_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/reoring/objenc"
)

type Base struct {
	ID      string `json:"id"`
	Created time.Time
}

type Item struct {
	SKU   string  `json:"sku"`
	Price float64 `objenc:"name=unitPrice"`
}

type Order struct {
	Base
	Status   string            `json:"status"`
	Note     string            `json:"note,omitempty"`
	Secret   string            `json:"-"`
	Items    []Item            `json:"items"`
	Labels   map[string]string `json:"labels"`
	Counts   map[int]uint8     `json:"counts"`
	Raw      []byte            `json:"raw"`
	Parent   *Order            `json:"parent"`
	internal int
}

func TestValue_Struct(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	o := Order{
		Base:     Base{ID: "o-1", Created: created},
		Status:   "open",
		Secret:   "hidden",
		Items:    []Item{{SKU: "a", Price: 1.5}},
		Labels:   map[string]string{"team": "x"},
		Counts:   map[int]uint8{2: 1},
		Raw:      []byte("hi"),
		internal: 9,
	}
	got, err := objenc.Encode(context.Background(), objenc.Value(o))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"id":      "o-1",
		"Created": "2024-05-01T12:00:00Z",
		"status":  "open",
		"items":   []any{map[string]any{"sku": "a", "unitPrice": 1.5}},
		"labels":  map[string]any{"team": "x"},
		"counts":  map[string]any{"2": uint64(1)},
		"raw":     "aGk=",
		"parent":  nil,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v\nwant %#v", got, want)
	}
}

func TestValue_NilsAndPointers(t *testing.T) {
	var nilSlice []int
	var nilMap map[string]int
	n := 3
	got, err := objenc.Encode(context.Background(), objenc.Value([]any{nil, nilSlice, nilMap, &n, []int{}}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{nil, nil, nil, int64(3), []any{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

type upperName string

func (u upperName) EncodeObject(s *objenc.Scope) error {
	s.Scalar().SetString("NAME:" + string(u))
	return nil
}

func TestValue_UsesEncodable(t *testing.T) {
	got, err := objenc.Encode(context.Background(), objenc.Value(map[string]any{"n": upperName("x")}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]any{"n": "NAME:x"}) {
		t.Fatalf("unexpected tree %#v", got)
	}
}

func TestValue_Unsupported(t *testing.T) {
	_, err := objenc.Encode(context.Background(), objenc.Value(map[string]any{"fn": func() {}}))
	iss, ok := objenc.AsIssues(err)
	if !ok || iss[0].Code != objenc.CodeUnsupported || iss[0].Path != "/fn" {
		t.Fatalf("expected unsupported at /fn, got %v", err)
	}
}

type node struct {
	Next *node `json:"next"`
}

func TestValue_CycleStopsWithTooDeep(t *testing.T) {
	n := &node{}
	n.Next = n
	_, err := objenc.Encode(context.Background(), objenc.Value(n), objenc.Options{MaxDepth: 8})
	iss, ok := objenc.AsIssues(err)
	if !ok || iss[0].Code != objenc.CodeTooDeep {
		t.Fatalf("expected too_deep, got %v", err)
	}
}

type selfEmbed struct {
	*selfEmbed
	V int
}

func TestValue_SelfEmbeddedPointerTerminates(t *testing.T) {
	c := &selfEmbed{V: 1}
	c.selfEmbed = c
	got, err := objenc.Encode(context.Background(), objenc.Value(c))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]any{"V": int64(1)}) {
		t.Fatalf("got %#v", got)
	}
}

type ptrEncoder struct{ X int }

func (p *ptrEncoder) EncodeObject(s *objenc.Scope) error {
	s.Scalar().SetString("custom")
	return nil
}

type ptrText struct{ n int }

func (p *ptrText) MarshalText() ([]byte, error) { return []byte("text"), nil }

type methodHolder struct {
	P ptrEncoder
	T ptrText
}

func TestValue_PointerReceiverMethods(t *testing.T) {
	got, err := objenc.Encode(context.Background(), objenc.Value(&methodHolder{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"P": "custom", "T": "text"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}

	// Passed by value the fields are not addressable and are walked as
	// plain structs.
	got, err = objenc.Encode(context.Background(), objenc.Value(methodHolder{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = map[string]any{"P": map[string]any{"X": int64(0)}, "T": map[string]any{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestResolveStructKey(t *testing.T) {
	rt := reflect.TypeOf(struct {
		A int `objenc:"name=alpha" json:"a"`
		B int `json:"b,omitempty"`
		C int
		D int `json:"-"`
	}{})
	want := []string{"alpha", "b", "C", "-"}
	for i, w := range want {
		if got := objenc.ResolveStructKey(rt.Field(i)); got != w {
			t.Fatalf("field %d: got %q want %q", i, got, w)
		}
	}
}
