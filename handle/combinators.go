package handle

import (
	"fmt"
	"reflect"

	"github.com/hupe1980/macro/core"
	"github.com/hupe1980/macro/internal/util"
)

// DropArguments returns a handle that accepts extra arguments of the given
// types at pos and discards them before calling h.
func DropArguments(h core.Handle, pos int, types ...reflect.Type) core.Handle {
	sig := h.Signature()
	if pos < 0 || pos > sig.NumParams() {
		panic(fmt.Sprintf("handle: drop position %d out of range for %s", pos, sig))
	}
	if len(types) == 0 {
		return h
	}
	n := len(types)
	return New(sig.InsertParams(pos, types...), func(args []any) (any, error) {
		kept := make([]any, 0, len(args)-n)
		kept = append(kept, args[:pos]...)
		kept = append(kept, args[pos+n:]...)
		return h.Invoke(kept...)
	})
}

// InsertArguments binds values to the parameters of h starting at pos. The
// returned handle no longer declares those parameters.
func InsertArguments(h core.Handle, pos int, values ...any) core.Handle {
	sig := h.Signature()
	if pos < 0 || pos+len(values) > sig.NumParams() {
		panic(fmt.Sprintf("handle: cannot insert %d values at %d into %s", len(values), pos, sig))
	}
	for i, v := range values {
		if !util.Accepts(sig.Param(pos+i), v) {
			panic(fmt.Sprintf("handle: cannot bind %s to parameter %d of %s", util.TypeOfValue(v), pos+i, sig))
		}
	}
	bound := append([]any(nil), values...)
	return New(sig.DropParams(pos, pos+len(values)), func(args []any) (any, error) {
		full := make([]any, 0, len(args)+len(bound))
		full = append(full, args[:pos]...)
		full = append(full, bound...)
		full = append(full, args[pos:]...)
		return h.Invoke(full...)
	})
}

// FilterArgument pre-processes the argument at pos with filter, a handle
// with one parameter whose return type is the type h expects at pos. An error
// returned by filter aborts the call.
func FilterArgument(h core.Handle, pos int, filter core.Handle) core.Handle {
	sig := h.Signature()
	fsig := filter.Signature()
	if pos < 0 || pos >= sig.NumParams() {
		panic(fmt.Sprintf("handle: filter position %d out of range for %s", pos, sig))
	}
	if fsig.NumParams() != 1 || fsig.Return() != sig.Param(pos) {
		panic(fmt.Sprintf("handle: filter %s does not produce parameter %d of %s", fsig, pos, sig))
	}
	return New(sig.ChangeParam(pos, fsig.Param(0)), func(args []any) (any, error) {
		v, err := filter.Invoke(args[pos])
		if err != nil {
			return nil, err
		}
		filtered := append([]any(nil), args...)
		filtered[pos] = v
		return h.Invoke(filtered...)
	})
}

// GuardWithTest returns a handle that calls test with the leading arguments
// and then calls target when it returns true, fallback otherwise. test must
// return bool and declare a prefix of target's parameters; target and
// fallback must have equal signatures.
func GuardWithTest(test, target, fallback core.Handle) core.Handle {
	sig := target.Signature()
	tsig := test.Signature()
	if !fallback.Signature().Equal(sig) {
		panic(fmt.Sprintf("handle: fallback %s does not match target %s", fallback.Signature(), sig))
	}
	if tsig.Return() == nil || tsig.Return().Kind() != reflect.Bool || tsig.NumParams() > sig.NumParams() {
		panic(fmt.Sprintf("handle: invalid test %s for target %s", tsig, sig))
	}
	n := tsig.NumParams()
	for i := range n {
		if tsig.Param(i) != sig.Param(i) {
			panic(fmt.Sprintf("handle: test %s is not a prefix of target %s", tsig, sig))
		}
	}
	return New(sig, func(args []any) (any, error) {
		ok, err := test.Invoke(args[:n]...)
		if err != nil {
			return nil, err
		}
		if b, _ := ok.(bool); b {
			return target.Invoke(args...)
		}
		return fallback.Invoke(args...)
	})
}

// AsType adapts h to sig. Both signatures must have the same arity, and
// every pair of parameter types (and the return types) must be assignable
// in at least one direction; narrowing conversions are checked when the
// handle runs. A result is discarded when sig has no return type, and the
// zero value is produced when h has none.
func AsType(h core.Handle, sig core.Signature) (core.Handle, error) {
	from := h.Signature()
	if from.Equal(sig) {
		return h, nil
	}
	if from.NumParams() != sig.NumParams() {
		return nil, fmt.Errorf("handle: cannot adapt %s to %s: arity differs", from, sig)
	}

	check := make([]bool, sig.NumParams())
	for i := range check {
		outer, inner := sig.Param(i), from.Param(i)
		if !related(outer, inner) {
			return nil, fmt.Errorf("handle: cannot adapt %s to %s: parameter %d", from, sig, i)
		}
		check[i] = !outer.AssignableTo(inner)
	}

	ret := sig.Return()
	if ret != nil && from.Return() != nil && !related(from.Return(), ret) {
		return nil, fmt.Errorf("handle: cannot adapt %s to %s: return type", from, sig)
	}
	checkRet := ret != nil && from.Return() != nil && !from.Return().AssignableTo(ret)

	return New(sig, func(args []any) (any, error) {
		for i, arg := range args {
			if check[i] && !util.Accepts(from.Param(i), arg) {
				return nil, &core.ArgumentError{Position: i, Want: from.Param(i), Got: reflect.TypeOf(arg)}
			}
		}
		res, err := h.Invoke(args...)
		if err != nil {
			return nil, err
		}
		switch {
		case ret == nil:
			return nil, nil
		case from.Return() == nil:
			return util.Zero(ret), nil
		case checkRet && !util.Accepts(ret, res):
			return nil, &core.ArgumentError{
				Position: -1,
				Reason:   fmt.Sprintf("cannot use result %s as %s", util.TypeOfValue(res), util.TypeName(ret)),
			}
		}
		return res, nil
	}), nil
}

func related(a, b reflect.Type) bool {
	return a.AssignableTo(b) || b.AssignableTo(a)
}

// Spread returns a handle whose trailing count parameters are collected into
// a single parameter of sliceType. The slice passed at call time must have
// exactly count elements, each acceptable to the parameter it replaces.
func Spread(h core.Handle, sliceType reflect.Type, count int) core.Handle {
	sig := h.Signature()
	if sliceType.Kind() != reflect.Slice {
		panic(fmt.Sprintf("handle: %s is not a slice type", sliceType))
	}
	first := sig.NumParams() - count
	if count < 0 || first < 0 {
		panic(fmt.Sprintf("handle: cannot spread %d parameters of %s", count, sig))
	}
	for i := first; i < sig.NumParams(); i++ {
		if !related(sliceType.Elem(), sig.Param(i)) {
			panic(fmt.Sprintf("handle: cannot spread %s into parameter %d of %s", sliceType, i, sig))
		}
	}

	spread := sig.DropParams(first, sig.NumParams()).InsertParams(first, sliceType)
	return New(spread, func(args []any) (any, error) {
		full := make([]any, 0, first+count)
		full = append(full, args[:first]...)

		var rv reflect.Value
		if args[first] != nil {
			rv = reflect.ValueOf(args[first])
		}
		n := 0
		if rv.IsValid() {
			n = rv.Len()
		}
		if n != count {
			return nil, &core.ArgumentError{
				Position: first,
				Reason:   fmt.Sprintf("expected %d spread elements, got %d", count, n),
			}
		}
		for i := range count {
			e := rv.Index(i).Interface()
			if !util.Accepts(sig.Param(first+i), e) {
				return nil, &core.ArgumentError{Position: first + i, Want: sig.Param(first + i), Got: reflect.TypeOf(e)}
			}
			full = append(full, e)
		}
		return h.Invoke(full...)
	})
}

// Permute returns a handle of signature sig that calls h with its arguments
// reordered: h receives args[reorder[i]] as its i-th argument. Types must
// match exactly.
func Permute(h core.Handle, sig core.Signature, reorder []int) core.Handle {
	inner := h.Signature()
	if len(reorder) != inner.NumParams() || sig.Return() != inner.Return() {
		panic(fmt.Sprintf("handle: cannot permute %s into %s", inner, sig))
	}
	for i, r := range reorder {
		if r < 0 || r >= sig.NumParams() || sig.Param(r) != inner.Param(i) {
			panic(fmt.Sprintf("handle: bad reorder index %d for parameter %d of %s", r, i, inner))
		}
	}
	order := append([]int(nil), reorder...)
	return New(sig, func(args []any) (any, error) {
		permuted := make([]any, len(order))
		for i, r := range order {
			permuted[i] = args[r]
		}
		return h.Invoke(permuted...)
	})
}
