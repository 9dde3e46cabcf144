// Package objenc encodes typed Go values into loosely typed object trees:
// nested map[string]any, []any and scalar leaves, ready to be handed to
// consumers that only understand untyped values (FFI bridges, templating,
// dynamic configuration layers).
//
// A value opts in by implementing Encodable. Encode hands it a root Scope;
// the value commits the scope to one shape and writes through the matching
// writer:
//
//	func (p Point) EncodeObject(s *objenc.Scope) error {
//		m := s.Map()
//		if err := m.PutFloat("x", p.X); err != nil {
//			return err
//		}
//		return m.PutFloat("y", p.Y)
//	}
//
//	tree, err := objenc.Encode(ctx, Point{1, 2})
//	// tree == map[string]any{"x": 1.0, "y": 2.0}
//
// Nested values are encoded eagerly through Put/Append/Set. Super scopes
// (MapWriter.Super, SeqWriter.Super) reserve a slot that is filled later and
// resolved when the whole tree is finalized.
//
// Two kinds of failure exist. Domain failures are ordinary errors, returned
// by Encode unchanged. Protocol misuse is a programming error and panics with
// a *ContractViolation.
//
// Design policy:
//   - Keep only public APIs in the root package; put the node tree under internal/.
//   - Input adapters (JSON, YAML) live under source/, value codecs under codec/,
//     and the CLI under cmd/objenc.
//   - Prefer black-box testing against public APIs.
package objenc
