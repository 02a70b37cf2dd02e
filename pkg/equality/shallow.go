// Package equality decides whether two state values are different enough to
// be worth rendering.
//
// The comparison is deliberately one level deep. Values reachable through a
// record's fields or map entries are compared by identity, never recursively.
package equality

import "reflect"

// Identical reports whether a and b are the same value in the reference
// sense: pointers, maps, slices and channels must share their backing
// storage, scalars and strings must be equal, and arrays and struct values
// must be identical element by element. Non-nil funcs are never identical.
func Identical(a, b any) bool {
	return same(reflect.ValueOf(a), reflect.ValueOf(b))
}

// Shallow reports whether a and b are shallowly equivalent.
//
// Identical values are always equivalent. Otherwise both values must be
// records of the same kind: two maps with the same key type, or two structs
// (possibly behind non-nil pointers). Records are equivalent when they have
// the same number of keys and every key of a exists in b with an identical
// value. Any other combination falls back to Identical.
func Shallow(a, b any) bool {
	if Identical(a, b) {
		return true
	}
	va, ok := record(reflect.ValueOf(a))
	if !ok {
		return false
	}
	vb, ok := record(reflect.ValueOf(b))
	if !ok {
		return false
	}
	switch {
	case va.Kind() == reflect.Map && vb.Kind() == reflect.Map:
		return shallowMap(va, vb)
	case va.Kind() == reflect.Struct && vb.Kind() == reflect.Struct:
		return shallowStruct(va, vb)
	}
	return false
}

// Func adapts Shallow to a typed comparison for stream operators.
func Func[T any]() func(a, b T) bool {
	return func(a, b T) bool {
		return Shallow(a, b)
	}
}

func record(v reflect.Value) (reflect.Value, bool) {
	if !v.IsValid() {
		return v, false
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() || v.Elem().Kind() != reflect.Struct {
			return v, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Map:
		return v, !v.IsNil()
	case reflect.Struct:
		return v, true
	}
	return v, false
}

func shallowMap(a, b reflect.Value) bool {
	if a.Type().Key() != b.Type().Key() || a.Len() != b.Len() {
		return false
	}
	iter := a.MapRange()
	for iter.Next() {
		other := b.MapIndex(iter.Key())
		if !other.IsValid() || !same(iter.Value(), other) {
			return false
		}
	}
	return true
}

func shallowStruct(a, b reflect.Value) bool {
	ta, tb := a.Type(), b.Type()
	if ta.NumField() != tb.NumField() {
		return false
	}
	for i := 0; i < ta.NumField(); i++ {
		field, ok := tb.FieldByName(ta.Field(i).Name)
		if !ok || len(field.Index) != 1 {
			return false
		}
		if !same(a.Field(i), b.Field(field.Index[0])) {
			return false
		}
	}
	return true
}

// same compares without calling Interface so unexported fields can be read.
func same(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	case reflect.String:
		return a.String() == b.String()
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Slice:
		return a.Pointer() == b.Pointer() && a.Len() == b.Len() && a.IsNil() == b.IsNil()
	case reflect.Func:
		return a.IsNil() && b.IsNil()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return same(a.Elem(), b.Elem())
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !same(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !same(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	}
	return false
}
