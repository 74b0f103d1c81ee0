// Package macro provides a high-level façade over the dispatch engine:
// dispatchers that specialize a call site lazily from the constants their
// callers pass. Most applications interact with this package by:
//  1. Declaring a signature and one parameter descriptor per position
//     (see package param)
//  2. Writing a Linker that turns a combination of constants into a handle
//  3. Calling the handle returned by New; the linker runs on the first call
//     and every time a guarded constant changes
//
// The façade delegates to dispatch.Control. Use NewWithControl when the
// cached specializations must be discarded explicitly, for example when the
// state the linker read has changed.
package macro

import (
	"github.com/hupe1980/macro/core"
	"github.com/hupe1980/macro/dispatch"
	"github.com/hupe1980/macro/param"
)

// Linker provides the specialized handle for a combination of constants.
type Linker = dispatch.Linker

// LinkerFunc adapts a func to a Linker.
type LinkerFunc = dispatch.LinkerFunc

// Options configures a dispatcher.
type Options = dispatch.Options

// Control owns a dispatcher.
type Control = dispatch.Control

// Stats is a snapshot of the activity of a dispatcher.
type Stats = dispatch.Stats

// New creates a dispatcher and returns its entry point.
//
// Example:
//
//	sig := core.NewSignature(reflect.TypeFor[bool](), reflect.TypeFor[string](), reflect.TypeFor[string]())
//	matches, err := macro.New(sig, []param.Parameter{param.ConstantValue.Polymorphic(), param.Value},
//	    macro.LinkerFunc(func(constants []any, sig core.Signature) (core.Handle, error) {
//	        re, err := regexp.Compile(constants[0].(string))
//	        if err != nil {
//	            return nil, err
//	        }
//	        return handle.FromFunc(re.MatchString)
//	    }))
func New(sig core.Signature, params []param.Parameter, linker Linker, optFns ...func(o *Options)) (core.Handle, error) {
	return dispatch.New(sig, params, linker, optFns...)
}

// NewWithControl creates a dispatcher and returns its entry point together
// with a func that deoptimizes it.
func NewWithControl(sig core.Signature, params []param.Parameter, linker Linker, optFns ...func(o *Options)) (core.Handle, func(), error) {
	c, err := dispatch.NewControl(sig, params, linker, optFns...)
	if err != nil {
		return nil, nil, err
	}
	return c.Handle(), c.Deoptimize, nil
}
