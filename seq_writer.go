package objenc

import "github.com/reoring/objenc/internal/tree"

// SeqWriter appends elements to one sequence of the tree. Every open or
// append call produces exactly one new slot; nothing merges into an earlier
// element.
type SeqWriter struct {
	st   *encodeState
	path Path
	s    *tree.Seq
}

// Path returns the path of the sequence being written.
func (w *SeqWriter) Path() Path { return w.path }

// Len reports the number of elements written so far, which is also the index
// of the next element.
func (w *SeqWriter) Len() int { return w.s.Len() }

func (w *SeqWriter) next() Path { return w.path.Index(w.s.Len()) }

func (w *SeqWriter) AppendNull()           { w.s.Append(tree.Scalar(nil)) }
func (w *SeqWriter) AppendBool(v bool)     { w.s.Append(tree.Scalar(v)) }
func (w *SeqWriter) AppendString(v string) { w.s.Append(tree.Scalar(v)) }
func (w *SeqWriter) AppendInt(v int64)     { w.s.Append(tree.Scalar(w.st.intLeaf(v))) }
func (w *SeqWriter) AppendUint(v uint64)   { w.s.Append(tree.Scalar(w.st.uintLeaf(v))) }

// AppendFloat appends v under the non-finite policy; nothing is appended on
// failure.
func (w *SeqWriter) AppendFloat(v float64) error {
	leaf, err := w.st.floatLeaf(w.next(), v, 64)
	if err != nil {
		return err
	}
	w.s.Append(tree.Scalar(leaf))
	return nil
}

// AppendScalar appends any native scalar, as MapWriter.PutScalar does.
func (w *SeqWriter) AppendScalar(v any) error {
	leaf, err := w.st.scalarLeaf(w.next(), v)
	if err != nil {
		return err
	}
	w.s.Append(tree.Scalar(leaf))
	return nil
}

// Append encodes v eagerly into a child scope indexed by the current length
// and appends the materialized result.
func (w *SeqWriter) Append(v Encodable) error {
	out, err := w.st.encodeAt(w.next(), v)
	if err != nil {
		return err
	}
	w.s.Append(tree.Scalar(out))
	return nil
}

// Map appends a new empty map and returns a writer over it.
func (w *SeqWriter) Map() *MapWriter {
	p := w.next()
	m := tree.NewMap()
	w.s.Append(tree.MapNode(m))
	return &MapWriter{st: w.st, path: p, m: m}
}

// Sequence appends a new empty sequence and returns a writer over it.
func (w *SeqWriter) Sequence() *SeqWriter {
	p := w.next()
	q := tree.NewSeq()
	w.s.Append(tree.SeqNode(q))
	return &SeqWriter{st: w.st, path: p, s: q}
}

// Super appends a slot filled later by the returned scope.
func (w *SeqWriter) Super() *Scope {
	s, n := w.st.deferred(w.next())
	w.s.Append(n)
	return s
}
