package tome

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
)

// Conjure builds a new, detached tree from a Go value.
//
// map[string]any and maps with string keys become objects, slices and
// arrays (except []byte) become arrays, structs are decomposed through their
// JSON encoding, and anything implementing Snapshotter (including other
// nodes) is copied from its snapshot. Other values are stored as leaves
// untouched.
func Conjure(value any) (Node, error) {
	switch v := value.(type) {
	case nil:
		return newLeaf(nil), nil
	case Snapshotter:
		return Conjure(v.Snapshot())
	case map[string]any:
		o := NewObject()
		for _, k := range sortedKeys(v) {
			n, err := Conjure(v[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			o.put(k, n)
		}
		return o, nil
	case []any:
		a := NewArray()
		for i, e := range v {
			n, err := Conjure(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			a.elems = append(a.elems, n)
		}
		a.reindex(0)
		return a, nil
	case string, bool, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number, []byte:
		return newLeaf(v), nil
	}
	return conjureReflect(reflect.ValueOf(value))
}

func conjureReflect(rv reflect.Value) (Node, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return newLeaf(nil), nil
		}
		return Conjure(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrUnsupportedValue, rv.Type().Key())
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return Conjure(m)
	case reflect.Slice, reflect.Array:
		s := make([]any, rv.Len())
		for i := range s {
			s[i] = rv.Index(i).Interface()
		}
		return Conjure(s)
	case reflect.Struct:
		raw, err := json.Marshal(rv.Interface())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedValue, rv.Type(), err)
		}
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedValue, rv.Type(), err)
		}
		return Conjure(decoded)
	case reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedValue, rv.Type())
	default:
		// Named scalar types (type Level string, ...) stay as they are.
		return newLeaf(rv.Interface()), nil
	}
}

// sortedKeys gives map-built objects a deterministic key order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
