package tree

import (
	"errors"
	"reflect"
	"testing"
)

type resolverFunc func() (any, error)

func (f resolverFunc) Resolve() (any, error) { return f() }

func TestMap_OverwriteKeepsSingleBinding(t *testing.T) {
	m := NewMap()
	m.Set("a", Scalar(int64(1)))
	m.Set("a", Scalar("x"))
	if m.Len() != 1 {
		t.Fatalf("expected 1 binding, got %d", m.Len())
	}
	got, err := m.Materialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]any{"a": "x"}) {
		t.Fatalf("unexpected map: %#v", got)
	}
}

func TestSeq_LenTracksAppends(t *testing.T) {
	s := NewSeq()
	if s.Len() != 0 {
		t.Fatalf("expected empty sequence")
	}
	s.Append(Scalar(true))
	s.Append(MapNode(NewMap()))
	if s.Len() != 2 {
		t.Fatalf("expected len 2, got %d", s.Len())
	}
	got, err := s.Materialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{true, map[string]any{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestNode_DeferredResolvesAtMaterialize(t *testing.T) {
	calls := 0
	n := Deferred(resolverFunc(func() (any, error) {
		calls++
		return "late", nil
	}))
	if calls != 0 {
		t.Fatalf("resolver must not run before materialization")
	}
	v, err := n.Materialize()
	if err != nil || v != "late" || calls != 1 {
		t.Fatalf("got v=%v err=%v calls=%d", v, err, calls)
	}
}

func TestNode_FirstFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	s := NewSeq()
	s.Append(Scalar(int64(1)))
	s.Append(Deferred(resolverFunc(func() (any, error) { return nil, boom })))
	outer := NewMap()
	outer.Set("items", SeqNode(s))

	v, err := MapNode(outer).Materialize()
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if v != nil {
		t.Fatalf("expected no partial value, got %#v", v)
	}
}

func TestNode_KindAccessors(t *testing.T) {
	m := NewMap()
	if got, ok := MapNode(m).AsMap(); !ok || got != m {
		t.Fatalf("AsMap should return the same builder")
	}
	if _, ok := Scalar(nil).AsSeq(); ok {
		t.Fatalf("scalar must not report sequence")
	}
	if KindDeferred.String() != "deferred" {
		t.Fatalf("unexpected kind name %q", KindDeferred.String())
	}
}
