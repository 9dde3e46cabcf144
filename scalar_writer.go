package objenc

import "github.com/reoring/objenc/internal/tree"

// ScalarWriter sets the single value of a scope. At most one write succeeds;
// any write after the scope holds a value panics with a ContractViolation.
type ScalarWriter struct {
	scope *Scope
}

// Path returns the path of the owning scope.
func (w *ScalarWriter) Path() Path { return w.scope.path }

func (w *ScalarWriter) requireEmpty() {
	if r := w.scope.result; r != nil {
		w.scope.st.violate(w.scope.path, "scalar writer used but scope already holds a "+r.Kind().String())
	}
}

func (w *ScalarWriter) set(leaf any) {
	n := tree.Scalar(leaf)
	w.scope.result = &n
}

func (w *ScalarWriter) SetNull() {
	w.requireEmpty()
	w.set(nil)
}

func (w *ScalarWriter) SetBool(v bool) {
	w.requireEmpty()
	w.set(v)
}

func (w *ScalarWriter) SetString(v string) {
	w.requireEmpty()
	w.set(v)
}

func (w *ScalarWriter) SetInt(v int64) {
	w.requireEmpty()
	w.set(w.scope.st.intLeaf(v))
}

func (w *ScalarWriter) SetUint(v uint64) {
	w.requireEmpty()
	w.set(w.scope.st.uintLeaf(v))
}

// SetFloat sets v under the non-finite policy. On failure the scope stays
// empty.
func (w *ScalarWriter) SetFloat(v float64) error {
	w.requireEmpty()
	leaf, err := w.scope.st.floatLeaf(w.scope.path, v, 64)
	if err != nil {
		return err
	}
	w.set(leaf)
	return nil
}

// SetScalar sets any native scalar, as MapWriter.PutScalar does.
func (w *ScalarWriter) SetScalar(v any) error {
	w.requireEmpty()
	leaf, err := w.scope.st.scalarLeaf(w.scope.path, v)
	if err != nil {
		return err
	}
	w.set(leaf)
	return nil
}

// Set encodes v eagerly into a fresh scope sharing this scope's path, then
// stores the materialized result.
func (w *ScalarWriter) Set(v Encodable) error {
	w.requireEmpty()
	out, err := w.scope.st.encodeAt(w.scope.path, v)
	if err != nil {
		return err
	}
	// v may have been handed this very scope through a closure; re-check.
	w.requireEmpty()
	w.set(out)
	return nil
}
