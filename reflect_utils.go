package objenc

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct
// field's output key. Priority: objenc:"name=..." > json tag name > field
// name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	name, _, _ := resolveStructField(sf)
	return name
}

// resolveStructField returns the key, whether zero values are omitted, and
// whether the key was given explicitly by a tag.
func resolveStructField(sf reflect.StructField) (name string, omitEmpty bool, tagged bool) {
	if gt := sf.Tag.Get("objenc"); gt != "" {
		if gt == "-" {
			return "-", false, true
		}
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			switch {
			case strings.HasPrefix(p, "name="):
				name = strings.TrimPrefix(p, "name=")
				tagged = true
			case p == "omitempty":
				omitEmpty = true
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-", false, true
		}
		parts := strings.Split(jt, ",")
		if name == "" && parts[0] != "" {
			name = parts[0]
			tagged = true
		}
		for _, p := range parts[1:] {
			if p == "omitempty" {
				omitEmpty = true
			}
		}
	}
	if name == "" {
		name = sf.Name
	}
	return name, omitEmpty, tagged
}

// isEmptyValue mirrors encoding/json's omitempty rule.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
