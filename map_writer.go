package objenc

import "github.com/reoring/objenc/internal/tree"

// SuperKey is the key reserved by MapWriter.Super.
const SuperKey = "super"

// MapWriter writes keyed entries into one map of the tree. Writers over the
// same map share it; a repeated key overwrites the earlier binding.
type MapWriter struct {
	st   *encodeState
	path Path
	m    *tree.Map
}

// Path returns the path of the map being written.
func (w *MapWriter) Path() Path { return w.path }

// Len reports the number of distinct keys bound so far.
func (w *MapWriter) Len() int { return w.m.Len() }

func (w *MapWriter) PutNull(key string)             { w.m.Set(key, tree.Scalar(nil)) }
func (w *MapWriter) PutBool(key string, v bool)     { w.m.Set(key, tree.Scalar(v)) }
func (w *MapWriter) PutString(key string, v string) { w.m.Set(key, tree.Scalar(v)) }
func (w *MapWriter) PutInt(key string, v int64)     { w.m.Set(key, tree.Scalar(w.st.intLeaf(v))) }
func (w *MapWriter) PutUint(key string, v uint64)   { w.m.Set(key, tree.Scalar(w.st.uintLeaf(v))) }

// PutFloat binds key to v, failing with a non_finite Issue for NaN/±Inf
// unless Strictness.AllowNonFinite is set.
func (w *MapWriter) PutFloat(key string, v float64) error {
	leaf, err := w.st.floatLeaf(w.path.Field(key), v, 64)
	if err != nil {
		return err
	}
	w.m.Set(key, tree.Scalar(leaf))
	return nil
}

// PutScalar binds key to any native scalar (bool, string, integer and float
// kinds, json.Number, nil). Other types fail with an invalid_type Issue.
func (w *MapWriter) PutScalar(key string, v any) error {
	leaf, err := w.st.scalarLeaf(w.path.Field(key), v)
	if err != nil {
		return err
	}
	w.m.Set(key, tree.Scalar(leaf))
	return nil
}

// Put encodes v eagerly into a child scope at path+key and binds key to the
// materialized result. A nil v binds null.
func (w *MapWriter) Put(key string, v Encodable) error {
	out, err := w.st.encodeAt(w.path.Field(key), v)
	if err != nil {
		return err
	}
	w.m.Set(key, tree.Scalar(out))
	return nil
}

// Map returns a writer for the nested map at key. An existing nested map is
// reused so several writers can contribute to it; an absent or scalar
// binding is replaced by a fresh map. A sequence or deferred binding panics.
func (w *MapWriter) Map(key string) *MapWriter {
	p := w.path.Field(key)
	cur, ok := w.m.Get(key)
	if ok {
		switch cur.Kind() {
		case tree.KindMap:
			m, _ := cur.AsMap()
			return &MapWriter{st: w.st, path: p, m: m}
		case tree.KindSeq, tree.KindDeferred:
			w.st.violate(p, "nested map requested but key holds a "+cur.Kind().String())
		}
	}
	m := tree.NewMap()
	w.m.Set(key, tree.MapNode(m))
	return &MapWriter{st: w.st, path: p, m: m}
}

// Sequence returns a writer for the nested sequence at key, with the same
// reuse and replacement rules as Map.
func (w *MapWriter) Sequence(key string) *SeqWriter {
	p := w.path.Field(key)
	cur, ok := w.m.Get(key)
	if ok {
		switch cur.Kind() {
		case tree.KindSeq:
			q, _ := cur.AsSeq()
			return &SeqWriter{st: w.st, path: p, s: q}
		case tree.KindMap, tree.KindDeferred:
			w.st.violate(p, "nested sequence requested but key holds a "+cur.Kind().String())
		}
	}
	q := tree.NewSeq()
	w.m.Set(key, tree.SeqNode(q))
	return &SeqWriter{st: w.st, path: p, s: q}
}

// Super reserves SuperKey for a scope that is encoded later. See SuperFor.
func (w *MapWriter) Super() *Scope { return w.SuperFor(SuperKey) }

// SuperFor reserves key for a deferred scope and returns it. The caller
// encodes into the scope at any point before Encode finalizes the tree; a
// scope left empty makes finalization panic. A key already holding a map,
// sequence or deferred scope panics.
func (w *MapWriter) SuperFor(key string) *Scope {
	p := w.path.Field(key)
	if cur, ok := w.m.Get(key); ok && cur.Kind() != tree.KindScalar {
		w.st.violate(p, "super scope requested but key holds a "+cur.Kind().String())
	}
	s, n := w.st.deferred(p)
	w.m.Set(key, n)
	return s
}
