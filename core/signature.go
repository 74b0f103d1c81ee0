package core

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/hupe1980/macro/internal/util"
)

// Signature describes the shape of a Handle: an ordered list of parameter
// types and a return type. A nil return type means the handle produces no
// result.
//
// Signatures are values; every derivation method returns a new Signature and
// leaves the receiver untouched.
type Signature struct {
	ret    reflect.Type
	params []reflect.Type
}

// NewSignature creates a signature from a return type and parameter types.
func NewSignature(ret reflect.Type, params ...reflect.Type) Signature {
	for i, p := range params {
		if p == nil {
			panic(fmt.Sprintf("core: nil parameter type at position %d", i))
		}
	}
	return Signature{ret: ret, params: slices.Clone(params)}
}

// Return returns the return type, nil when there is none.
func (s Signature) Return() reflect.Type { return s.ret }

// NumParams returns the number of parameters.
func (s Signature) NumParams() int { return len(s.params) }

// Param returns the type of the i-th parameter.
func (s Signature) Param(i int) reflect.Type { return s.params[i] }

// Params returns a copy of the parameter types.
func (s Signature) Params() []reflect.Type { return slices.Clone(s.params) }

// Equal reports whether both signatures have exactly the same parameter
// types, in the same order, and the same return type. No assignability or
// conversion is taken into account.
func (s Signature) Equal(other Signature) bool {
	return s.ret == other.ret && slices.Equal(s.params, other.params)
}

// InsertParams returns a signature with types inserted at pos.
func (s Signature) InsertParams(pos int, types ...reflect.Type) Signature {
	return NewSignature(s.ret, slices.Insert(slices.Clone(s.params), pos, types...)...)
}

// DropParams returns a signature without the parameters in [from, to).
func (s Signature) DropParams(from, to int) Signature {
	return NewSignature(s.ret, slices.Delete(slices.Clone(s.params), from, to)...)
}

// ChangeParam returns a signature whose i-th parameter is t.
func (s Signature) ChangeParam(i int, t reflect.Type) Signature {
	params := slices.Clone(s.params)
	params[i] = t
	return NewSignature(s.ret, params...)
}

// ChangeReturn returns a signature whose return type is t.
func (s Signature) ChangeReturn(t reflect.Type) Signature {
	return Signature{ret: t, params: slices.Clone(s.params)}
}

// String renders the signature like a Go func type.
func (s Signature) String() string {
	var sb strings.Builder
	sb.WriteString("func(")
	for i, p := range s.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(util.TypeName(p))
	}
	sb.WriteString(")")
	if s.ret != nil {
		sb.WriteString(" ")
		sb.WriteString(util.TypeName(s.ret))
	}
	return sb.String()
}

// CheckArguments verifies that args can be passed to a handle of this
// signature: same count, and every argument assignable to its parameter type.
// A nil argument is only accepted by nil-able parameter types.
func (s Signature) CheckArguments(args []any) error {
	if len(args) != len(s.params) {
		return &ArgumentError{
			Position: -1,
			Reason:   fmt.Sprintf("%s expects %d arguments, got %d", s, len(s.params), len(args)),
		}
	}
	for i, arg := range args {
		if !util.Accepts(s.params[i], arg) {
			return &ArgumentError{
				Position: i,
				Want:     s.params[i],
				Got:      reflect.TypeOf(arg),
				Reason:   fmt.Sprintf("cannot use %s as %s", util.TypeOfValue(arg), util.TypeName(s.params[i])),
			}
		}
	}
	return nil
}
