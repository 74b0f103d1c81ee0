package dispatch

import (
	"reflect"

	"github.com/hupe1980/macro/core"
	"github.com/hupe1980/macro/handle"
)

var boolType = reflect.TypeFor[bool]()

// sameConstant compares two constants by identity: == for comparable
// values, pointer identity for maps, funcs, chans and slices (a slice also
// needs the same length). Values of other non-comparable types never match.
func sameConstant(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	switch ta.Kind() {
	case reflect.Map, reflect.Func, reflect.Chan:
		return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
	case reflect.Slice:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	}
	if !ta.Comparable() {
		return false
	}
	// Structs and arrays may hold interfaces with non-comparable dynamic values.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// guardTest returns a handle over the declared parameters up to and
// including the guarded position that reports whether the argument still
// derives the recorded constant.
func guardTest(sig core.Signature, arg guardedArgument) core.Handle {
	params := sig.Params()[:arg.position+1]
	return handle.New(core.NewSignature(boolType, params...), func(args []any) (any, error) {
		return sameConstant(arg.projection(arg.typ, args[arg.position]), arg.constant), nil
	})
}

// requireConstant returns a unary filter that passes its argument through
// when it derives the recorded constant and fails with a constant violation
// otherwise.
func requireConstant(arg checkedArgument) core.Handle {
	return handle.New(core.NewSignature(arg.typ, arg.typ), func(args []any) (any, error) {
		v := args[0]
		if got := arg.projection(arg.typ, v); !sameConstant(got, arg.constant) {
			return nil, &core.ConstantViolationError{Position: arg.position, Value: v, Expected: arg.constant, Got: got}
		}
		return v, nil
	})
}
