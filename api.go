package objenc

import (
	"context"

	"go.uber.org/zap"
)

// Encodable is implemented by values that can describe themselves into a
// Scope. Implementations request exactly one writer shape from s and write
// through it; returning an error aborts the whole Encode call.
type Encodable interface {
	EncodeObject(s *Scope) error
}

// EncodableFunc adapts a function to Encodable.
type EncodableFunc func(s *Scope) error

func (f EncodableFunc) EncodeObject(s *Scope) error { return f(s) }

// Encode materializes v into a loosely typed tree made of map[string]any,
// []any and scalars (bool, string, int64, uint64, float64, json.Number under
// NumberJSONNumber, nil).
//
// Errors returned by v or any nested value are returned unchanged and no
// partial tree is produced. Protocol misuse (conflicting shapes, a second
// scalar write, a scope left without a value) panics with a
// *ContractViolation instead.
func Encode(ctx context.Context, v Encodable, opts ...Options) (any, error) {
	if v == nil {
		return nil, nil
	}
	opt := normalizeOpt(opts)
	if ctx == nil {
		ctx = context.Background()
	}
	st := &encodeState{ctx: ctx, opt: opt, log: opt.Logger}
	root := newScope(st, nil)
	if err := v.EncodeObject(root); err != nil {
		st.trace("objenc: encode failed", root.path, zap.Error(err))
		return nil, err
	}
	return root.finalize()
}

// Scalar returns an Encodable writing a single native scalar, as accepted by
// ScalarWriter.SetScalar.
func Scalar(v any) Encodable {
	return EncodableFunc(func(s *Scope) error { return s.Scalar().SetScalar(v) })
}
