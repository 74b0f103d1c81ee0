package dispatch

import (
	"github.com/hupe1980/macro/core"
	"github.com/hupe1980/macro/internal/util"
)

// Linker provides the specialized handle for a combination of constants.
//
// Link receives the constants derived from the call, in declaration order,
// and the reduced signature: the declared return type and the types of the
// arguments that reach the returned handle (value parameters and retained
// constants). The returned handle must have exactly that signature.
//
// Link may be called many times over the life of a dispatcher (once per
// distinct constant combination with the polymorphic policy, once per relink)
// and concurrently; it should be fast and free of side effects a second call
// would repeat.
type Linker interface {
	Link(constants []any, sig core.Signature) (core.Handle, error)
}

// LinkerFunc adapts a func to a Linker.
type LinkerFunc func(constants []any, sig core.Signature) (core.Handle, error)

// Link calls f.
func (f LinkerFunc) Link(constants []any, sig core.Signature) (core.Handle, error) {
	return f(constants, sig)
}

// link runs the linking protocol: the linker's error becomes a
// *core.LinkageError, and a nil handle or a handle whose signature is not
// exactly sig becomes a *core.ContractViolationError.
func link(linker Linker, constants []any, sig core.Signature) (core.Handle, error) {
	handed := make([]any, len(constants))
	copy(handed, constants)

	target, err := linker.Link(handed, sig)
	if err != nil {
		return nil, &core.LinkageError{Constants: constants, Signature: sig, Err: err}
	}
	if util.IsNil(target) {
		return nil, &core.ContractViolationError{Want: sig, Reason: "linker returned a nil handle"}
	}
	if got := target.Signature(); !got.Equal(sig) {
		return nil, &core.ContractViolationError{Want: sig, Got: &got, Reason: "linker returned a handle of the wrong signature"}
	}
	return target, nil
}
