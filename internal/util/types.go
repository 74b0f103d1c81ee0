// Package util holds reflection helpers shared by the handle, core and
// dispatch packages. This lives in internal to avoid committing to public API
// stability prematurely.
package util

import (
	"reflect"
)

// Nilable reports whether a value of type t can be nil.
func Nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// IsNil reports whether v is nil or an interface holding a nil pointer, map,
// slice, func or chan.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	if Nilable(rv.Type()) {
		return rv.IsNil()
	}
	return false
}

// Accepts reports whether v can be passed where a t is expected.
func Accepts(t reflect.Type, v any) bool {
	if v == nil {
		return Nilable(t)
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

// ValueFor converts v into a reflect.Value usable as an argument of type t.
// A nil v yields the zero value of t. The second result is false when v is
// not assignable to t.
func ValueFor(t reflect.Type, v any) (reflect.Value, bool) {
	if v == nil {
		if !Nilable(t) {
			return reflect.Value{}, false
		}
		return reflect.Zero(t), true
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return rv, true
}

// Zero returns the zero value of t as an interface, or nil for a nil type.
func Zero(t reflect.Type) any {
	if t == nil {
		return nil
	}
	return reflect.Zero(t).Interface()
}

// TypeName renders t, using "void" for the absent type and "any" for the
// empty interface.
func TypeName(t reflect.Type) string {
	switch {
	case t == nil:
		return "void"
	case t.Kind() == reflect.Interface && t.NumMethod() == 0 && t.Name() == "":
		return "any"
	default:
		return t.String()
	}
}

// TypeOfValue is reflect.TypeOf with a printable name for nil.
func TypeOfValue(v any) string {
	if v == nil {
		return "nil"
	}
	return TypeName(reflect.TypeOf(v))
}
