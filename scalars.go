package objenc

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"go.uber.org/zap"
)

// encodeState is shared by every scope and writer of one Encode call. All
// builders reachable from the root scope live exactly as long as the call.
type encodeState struct {
	ctx context.Context
	opt Options
	log *zap.Logger
}

func (st *encodeState) trace(msg string, p Path, fields ...zap.Field) {
	if ce := st.log.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(append([]zap.Field{zap.String("path", p.Pointer())}, fields...)...)
	}
}

// violate logs and panics with a ContractViolation. It never returns.
func (st *encodeState) violate(p Path, rule string) {
	cv := &ContractViolation{Path: p.Pointer(), Rule: rule}
	st.log.Error("objenc: contract violation", zap.String("path", cv.Path), zap.String("rule", rule))
	panic(cv)
}

func (st *encodeState) intLeaf(i int64) any {
	if st.opt.NumberMode == NumberJSONNumber {
		return json.Number(strconv.FormatInt(i, 10))
	}
	return i
}

func (st *encodeState) uintLeaf(u uint64) any {
	if st.opt.NumberMode == NumberJSONNumber {
		return json.Number(strconv.FormatUint(u, 10))
	}
	return u
}

// floatLeaf applies the non-finite policy. bits is 32 or 64 and only affects
// the shortest text form under NumberJSONNumber.
func (st *encodeState) floatLeaf(p Path, f float64, bits int) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if !st.opt.Strictness.AllowNonFinite {
			return nil, newIssue(p, CodeNonFinite, nil, map[string]any{"got": strconv.FormatFloat(f, 'g', -1, 64)})
		}
		// json.Number cannot carry NaN/Inf; keep the float.
		return f, nil
	}
	if st.opt.NumberMode == NumberJSONNumber {
		return json.Number(strconv.FormatFloat(f, 'g', -1, bits)), nil
	}
	return f, nil
}

// numberLeaf converts json.Number input into the configured representation.
func (st *encodeState) numberLeaf(p Path, n json.Number) (any, error) {
	if st.opt.NumberMode == NumberJSONNumber {
		if _, err := strconv.ParseFloat(string(n), 64); err != nil {
			return nil, newIssue(p, CodeInvalidType, err, map[string]any{"got": string(n)})
		}
		return n, nil
	}
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
		return u, nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return nil, newIssue(p, CodeInvalidType, err, map[string]any{"got": string(n)})
	}
	return st.floatLeaf(p, f, 64)
}

// scalarLeaf accepts any native scalar, including named types whose
// underlying kind is a scalar, and returns its materialized form.
func (st *encodeState) scalarLeaf(p Path, v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return x, nil
	case string:
		return x, nil
	case int:
		return st.intLeaf(int64(x)), nil
	case int8:
		return st.intLeaf(int64(x)), nil
	case int16:
		return st.intLeaf(int64(x)), nil
	case int32:
		return st.intLeaf(int64(x)), nil
	case int64:
		return st.intLeaf(x), nil
	case uint:
		return st.uintLeaf(uint64(x)), nil
	case uint8:
		return st.uintLeaf(uint64(x)), nil
	case uint16:
		return st.uintLeaf(uint64(x)), nil
	case uint32:
		return st.uintLeaf(uint64(x)), nil
	case uint64:
		return st.uintLeaf(x), nil
	case float32:
		return st.floatLeaf(p, float64(x), 32)
	case float64:
		return st.floatLeaf(p, x, 64)
	case json.Number:
		return st.numberLeaf(p, x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return st.intLeaf(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return st.uintLeaf(rv.Uint()), nil
	case reflect.Float32:
		return st.floatLeaf(p, rv.Float(), 32)
	case reflect.Float64:
		return st.floatLeaf(p, rv.Float(), 64)
	}
	return nil, newIssue(p, CodeInvalidType, nil, map[string]any{"got": fmt.Sprintf("%T", v)})
}
