package objenc

import (
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Cycle guard for Value when Options.MaxDepth is unset.
const _maxReflectDepth = 512

var (
	encodableType     = reflect.TypeOf((*Encodable)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	jsonNumberType    = reflect.TypeOf(json.Number(""))
)

// Value returns an Encodable for an arbitrary Go value, walked by reflection:
//
//   - values implementing Encodable encode themselves;
//   - encoding.TextMarshaler values (time.Time among them) become strings;
//   - structs become maps keyed per ResolveStructKey, honoring omitempty and
//     flattening untagged embedded structs;
//   - maps with string, integer or TextMarshaler keys become maps;
//   - slices and arrays become sequences, []byte becomes base64 text;
//   - nil pointers, interfaces, maps and slices become null.
//
// Channels, functions and complex numbers fail with an unsupported Issue.
func Value(v any) Encodable { return reflectValue{rv: reflect.ValueOf(v)} }

type reflectValue struct{ rv reflect.Value }

func (r reflectValue) EncodeObject(s *Scope) error {
	if s.st.opt.MaxDepth == 0 && len(s.path) > _maxReflectDepth {
		return newIssue(s.path, CodeTooDeep, nil, map[string]any{"max": _maxReflectDepth})
	}
	return encodeReflect(s, r.rv)
}

func encodeReflect(s *Scope, rv reflect.Value) error {
	if !rv.IsValid() {
		s.Scalar().SetNull()
		return nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			s.Scalar().SetNull()
			return nil
		}
	}
	t := rv.Type()
	if t != jsonNumberType {
		if recv, ok := methodReceiver(rv, encodableType); ok {
			return recv.Interface().(Encodable).EncodeObject(s)
		}
		if recv, ok := methodReceiver(rv, textMarshalerType); ok {
			b, err := recv.Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return newIssue(s.path, CodeUnsupported, err, map[string]any{"got": t.String()})
			}
			s.Scalar().SetString(string(b))
			return nil
		}
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return encodeReflect(s, rv.Elem())
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return s.Scalar().SetScalar(scalarInterface(rv))
	case reflect.Struct:
		return encodeStructFields(s.Map(), rv, map[reflect.Type]bool{})
	case reflect.Map:
		return encodeMap(s, rv)
	case reflect.Slice:
		if rv.IsNil() {
			s.Scalar().SetNull()
			return nil
		}
		if t.Elem().Kind() == reflect.Uint8 {
			s.Scalar().SetString(base64.StdEncoding.EncodeToString(rv.Bytes()))
			return nil
		}
		return encodeSeq(s.Sequence(), rv)
	case reflect.Array:
		return encodeSeq(s.Sequence(), rv)
	}
	return newIssue(s.path, CodeUnsupported, nil, map[string]any{"got": t.String()})
}

// methodReceiver returns the value on which iface's methods can be called:
// rv itself, or its address when only the pointer type implements iface and
// rv is addressable.
func methodReceiver(rv reflect.Value, iface reflect.Type) (reflect.Value, bool) {
	if !rv.CanInterface() {
		return reflect.Value{}, false
	}
	if rv.Type().Implements(iface) {
		return rv, true
	}
	if rv.Kind() != reflect.Pointer && rv.CanAddr() && reflect.PointerTo(rv.Type()).Implements(iface) {
		return rv.Addr(), true
	}
	return reflect.Value{}, false
}

// scalarInterface returns rv as an interface even when it was reached
// through an unexported path, where rv.Interface would panic.
func scalarInterface(rv reflect.Value) any {
	if rv.CanInterface() {
		return rv.Interface()
	}
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return rv.Uint()
	}
}

// encodeStructFields writes rv's fields into m. flattening holds the struct
// types whose fields are being promoted into m; an embedded struct of a type
// already in it is skipped, since every field it could add is shadowed by
// the shallower copy.
func encodeStructFields(m *MapWriter, rv reflect.Value, flattening map[reflect.Type]bool) error {
	t := rv.Type()
	flattening[t] = true
	defer delete(flattening, t)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, omitEmpty, tagged := resolveStructField(sf)
		if name == "-" {
			continue
		}
		fv := rv.Field(i)
		if sf.Anonymous && !tagged {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if flattening[ft] {
					continue
				}
				if fv.Kind() == reflect.Pointer {
					if fv.IsNil() {
						continue
					}
					fv = fv.Elem()
				}
				// Promote the embedded struct's fields into the same map.
				if err := encodeStructFields(m, fv, flattening); err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if omitEmpty && isEmptyValue(fv) {
			continue
		}
		if err := m.Put(name, reflectValue{rv: fv}); err != nil {
			return err
		}
	}
	return nil
}

func encodeMap(s *Scope, rv reflect.Value) error {
	if rv.IsNil() {
		s.Scalar().SetNull()
		return nil
	}
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := mapKeyString(s.path, iter.Key())
		if err != nil {
			return err
		}
		entries = append(entries, entry{key: k, val: iter.Value()})
	}
	// Deterministic order so the first failure is reproducible.
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	m := s.Map()
	for _, e := range entries {
		if err := m.Put(e.key, reflectValue{rv: e.val}); err != nil {
			return err
		}
	}
	return nil
}

func mapKeyString(p Path, k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if k.CanInterface() && k.Type().Implements(textMarshalerType) {
		if k.Kind() == reflect.Pointer && k.IsNil() {
			return "", nil
		}
		b, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", newIssue(p, CodeUnsupported, err, map[string]any{"got": k.Type().String()})
		}
		return string(b), nil
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", newIssue(p, CodeUnsupported, nil, map[string]any{"got": fmt.Sprintf("map key %s", k.Type())})
}

func encodeSeq(w *SeqWriter, rv reflect.Value) error {
	for i := 0; i < rv.Len(); i++ {
		if err := w.Append(reflectValue{rv: rv.Index(i)}); err != nil {
			return err
		}
	}
	return nil
}
