package objenc

import (
	"context"

	"go.uber.org/zap"

	"github.com/reoring/objenc/internal/tree"
)

// Scope is the encoding state of a single tree position. A value handed a
// Scope commits it to exactly one shape by requesting a writer: Map,
// Sequence or Scalar. Requesting a second, different shape panics with a
// ContractViolation.
type Scope struct {
	st     *encodeState
	path   Path
	result *tree.Node
}

func newScope(st *encodeState, p Path) *Scope {
	return &Scope{st: st, path: p}
}

// Path returns the keys leading from the root value to this scope.
func (s *Scope) Path() Path { return s.path }

// Context returns the context given to Encode. Values use it to read
// caller-supplied settings.
func (s *Scope) Context() context.Context { return s.st.ctx }

// Options returns the options of the running Encode call.
func (s *Scope) Options() Options { return s.st.opt }

// Map commits the scope to a keyed shape. Repeated calls return writers over
// the same underlying map.
func (s *Scope) Map() *MapWriter {
	if s.result == nil {
		m := tree.NewMap()
		n := tree.MapNode(m)
		s.result = &n
		s.st.trace("objenc: scope committed", s.path, zap.Stringer("shape", tree.KindMap))
		return &MapWriter{st: s.st, path: s.path, m: m}
	}
	m, ok := s.result.AsMap()
	if !ok {
		s.st.violate(s.path, "map requested but scope already holds a "+s.result.Kind().String())
	}
	return &MapWriter{st: s.st, path: s.path, m: m}
}

// Sequence commits the scope to an ordered shape. Repeated calls return
// writers over the same underlying sequence.
func (s *Scope) Sequence() *SeqWriter {
	if s.result == nil {
		q := tree.NewSeq()
		n := tree.SeqNode(q)
		s.result = &n
		s.st.trace("objenc: scope committed", s.path, zap.Stringer("shape", tree.KindSeq))
		return &SeqWriter{st: s.st, path: s.path, s: q}
	}
	q, ok := s.result.AsSeq()
	if !ok {
		s.st.violate(s.path, "sequence requested but scope already holds a "+s.result.Kind().String())
	}
	return &SeqWriter{st: s.st, path: s.path, s: q}
}

// Scalar returns a fresh one-shot writer. The scope must still be empty when
// the writer is created and again when it is written through; merely
// obtaining a second writer is allowed.
func (s *Scope) Scalar() *ScalarWriter {
	w := &ScalarWriter{scope: s}
	w.requireEmpty()
	return w
}

// finalize materializes the scope's node tree. A scope that never received a
// value is a contract violation, not a null.
func (s *Scope) finalize() (any, error) {
	if s.result == nil {
		s.st.violate(s.path, "scope finalized without a value")
	}
	v, err := s.result.Materialize()
	if err != nil {
		s.st.trace("objenc: finalize failed", s.path, zap.Error(err))
		return nil, err
	}
	return v, nil
}

// encodeAt runs v against a fresh scope at p and returns its materialized
// value. Nested encodes are eager: failures surface to the caller at once.
func (st *encodeState) encodeAt(p Path, v Encodable) (any, error) {
	if v == nil {
		return nil, nil
	}
	if st.opt.MaxDepth > 0 && len(p) > st.opt.MaxDepth {
		return nil, newIssue(p, CodeTooDeep, nil, map[string]any{"max": st.opt.MaxDepth})
	}
	child := newScope(st, p)
	if err := v.EncodeObject(child); err != nil {
		return nil, err
	}
	return child.finalize()
}

// deferredScope resolves a super scope when the enclosing tree is
// materialized.
type deferredScope struct{ s *Scope }

func (d deferredScope) Resolve() (any, error) { return d.s.finalize() }

func (st *encodeState) deferred(p Path) (*Scope, tree.Node) {
	child := newScope(st, p)
	st.trace("objenc: super scope reserved", p)
	return child, tree.Deferred(deferredScope{s: child})
}
