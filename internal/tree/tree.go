// Package tree holds the mutable intermediate tree built during one encode
// call. It is internal and not part of the public API.
package tree

// Kind identifies the active case of a Node.
type Kind int

const (
	KindScalar Kind = iota
	KindMap
	KindSeq
	KindDeferred
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMap:
		return "map"
	case KindSeq:
		return "sequence"
	case KindDeferred:
		return "deferred"
	}
	return "unknown"
}

// Resolver produces the materialized value of a deferred position. The
// encoder scope that owns the deferred subtree implements it.
type Resolver interface {
	Resolve() (any, error)
}

// Node is a tagged union; exactly one of the payload fields matches Kind.
type Node struct {
	kind     Kind
	scalar   any
	m        *Map
	seq      *Seq
	deferred Resolver
}

// Scalar returns a leaf node holding an already materialized value.
func Scalar(v any) Node { return Node{kind: KindScalar, scalar: v} }

// MapNode wraps a map builder.
func MapNode(m *Map) Node { return Node{kind: KindMap, m: m} }

// SeqNode wraps a sequence builder.
func SeqNode(s *Seq) Node { return Node{kind: KindSeq, seq: s} }

// Deferred returns a node whose value is whatever r resolves to at
// materialization time.
func Deferred(r Resolver) Node { return Node{kind: KindDeferred, deferred: r} }

func (n Node) Kind() Kind { return n.kind }

// AsMap returns the map builder when n is a map node.
func (n Node) AsMap() (*Map, bool) { return n.m, n.kind == KindMap }

// AsSeq returns the sequence builder when n is a sequence node.
func (n Node) AsSeq() (*Seq, bool) { return n.seq, n.kind == KindSeq }

// Materialize converts n into plain map[string]any / []any / scalar values.
// The first failure aborts the walk; no partial value is returned.
func (n Node) Materialize() (any, error) {
	switch n.kind {
	case KindMap:
		return n.m.Materialize()
	case KindSeq:
		return n.seq.Materialize()
	case KindDeferred:
		return n.deferred.Resolve()
	default:
		return n.scalar, nil
	}
}

// Map accumulates key bindings for one scope. Keys are unique; a repeated
// write replaces the previous binding.
type Map struct {
	entries map[string]Node
}

func NewMap() *Map { return &Map{entries: make(map[string]Node)} }

// Get returns the binding for key, if any.
func (m *Map) Get(key string) (Node, bool) {
	n, ok := m.entries[key]
	return n, ok
}

// Set binds key to n, overwriting any previous binding.
func (m *Map) Set(key string, n Node) { m.entries[key] = n }

func (m *Map) Len() int { return len(m.entries) }

func (m *Map) Materialize() (map[string]any, error) {
	out := make(map[string]any, len(m.entries))
	for k, n := range m.entries {
		v, err := n.Materialize()
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// Seq is an append-only ordered list of nodes.
type Seq struct {
	items []Node
}

func NewSeq() *Seq { return &Seq{} }

// Len reports the number of appended nodes. Callers use it as the index of
// the next slot before that slot's value is known.
func (s *Seq) Len() int { return len(s.items) }

func (s *Seq) Append(n Node) { s.items = append(s.items, n) }

func (s *Seq) Materialize() ([]any, error) {
	out := make([]any, 0, len(s.items))
	for _, n := range s.items {
		v, err := n.Materialize()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
