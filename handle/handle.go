package handle

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/hupe1980/macro/core"
	"github.com/hupe1980/macro/internal/util"
)

var errorType = reflect.TypeFor[error]()

// funcHandle is the single concrete handle type; every constructor and
// combinator in this package produces one.
type funcHandle struct {
	sig core.Signature
	fn  func(args []any) (any, error)
}

func (h *funcHandle) Signature() core.Signature { return h.sig }

func (h *funcHandle) Invoke(args ...any) (any, error) { return h.fn(args) }

func (h *funcHandle) String() string { return "handle" + h.sig.String()[len("func"):] }

// New creates a handle of the given signature backed by fn. The engine and
// the combinators guarantee that fn receives exactly sig.NumParams()
// arguments; fn must not retain or modify the args slice.
func New(sig core.Signature, fn func(args []any) (any, error)) core.Handle {
	if fn == nil {
		panic("handle: nil func")
	}
	return &funcHandle{sig: sig, fn: fn}
}

// FromFunc adapts an arbitrary Go func into a handle using reflection.
//
// Supported result shapes are (), (R), (error) and (R, error). The handle's
// return type is R, or nil when the func returns no value. A non-nil error
// result is returned as the call's error. A variadic func takes its last
// parameter as a slice.
func FromFunc(fn any) (core.Handle, error) {
	if fn == nil {
		return nil, errors.New("handle: nil func")
	}
	return FromValue(reflect.ValueOf(fn))
}

// MustFromFunc is like FromFunc but panics on error.
func MustFromFunc(fn any) core.Handle {
	h, err := FromFunc(fn)
	if err != nil {
		panic(err)
	}
	return h
}

// FromValue adapts a reflected func value, such as reflect.Method.Func.
func FromValue(fv reflect.Value) (core.Handle, error) {
	if fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("handle: %s is not a func", fv.Kind())
	}
	if fv.IsNil() {
		return nil, errors.New("handle: nil func")
	}
	ft := fv.Type()

	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}

	var ret reflect.Type
	hasErr := false
	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) == errorType {
			hasErr = true
		} else {
			ret = ft.Out(0)
		}
	case 2:
		if ft.Out(1) != errorType {
			return nil, fmt.Errorf("handle: second result of %s must be error", ft)
		}
		ret = ft.Out(0)
		hasErr = true
	default:
		return nil, fmt.Errorf("handle: %s has too many results", ft)
	}

	variadic := ft.IsVariadic()
	sig := core.NewSignature(ret, params...)

	return New(sig, func(args []any) (any, error) {
		if len(args) != len(params) {
			return nil, sig.CheckArguments(args)
		}
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			rv, ok := util.ValueFor(params[i], arg)
			if !ok {
				return nil, &core.ArgumentError{Position: i, Want: params[i], Got: reflect.TypeOf(arg)}
			}
			in[i] = rv
		}

		var out []reflect.Value
		if variadic {
			out = fv.CallSlice(in)
		} else {
			out = fv.Call(in)
		}

		if hasErr {
			if errV := out[len(out)-1]; !errV.IsNil() {
				return nil, errV.Interface().(error)
			}
		}
		if ret == nil {
			return nil, nil
		}
		return out[0].Interface(), nil
	}), nil
}

// Constant returns a handle without parameters that always returns v.
func Constant(t reflect.Type, v any) core.Handle {
	if t != nil && !util.Accepts(t, v) {
		panic(fmt.Sprintf("handle: cannot use %s as constant of type %s", util.TypeOfValue(v), util.TypeName(t)))
	}
	return New(core.NewSignature(t), func([]any) (any, error) { return v, nil })
}

// Empty returns a handle of the given signature that ignores its arguments
// and returns the zero value of the return type.
func Empty(sig core.Signature) core.Handle {
	zero := util.Zero(sig.Return())
	return New(sig, func([]any) (any, error) { return zero, nil })
}
