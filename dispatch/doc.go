// Package dispatch implements dispatch sites: stable entry points whose
// behavior is specialized lazily from some of the call's arguments and then
// cached, so that later calls with matching arguments go straight to the
// specialized handle. This is the technique behind inline caches in dynamic
// language runtimes, packaged as an embeddable building block.
//
// A dispatcher is created from a declared signature, one param.Parameter per
// declared argument and a Linker:
//
//	h, err := dispatch.New(
//	    core.NewSignature(reflect.TypeFor[string](), reflect.TypeFor[any](), reflect.TypeFor[string]()),
//	    []param.Parameter{param.ConstantType.Polymorphic(), param.ConstantValue},
//	    dispatch.LinkerFunc(func(constants []any, sig core.Signature) (core.Handle, error) {
//	        // constants[0] is the receiver type, constants[1] the method name;
//	        // return a handle of exactly sig: func(any) string
//	    }),
//	)
//
// The first call classifies its arguments, calls the linker with the derived
// constants, runs the returned handle and only then installs it, wrapped in
// guards, as the fast path. A guard that fails falls back according to the
// position's policy:
//
//   - param.PolicyError: the call fails with core.ErrConstantViolation.
//   - param.PolicyRelink: every cached specialization of the dispatcher is
//     discarded and the call is specialized from scratch.
//   - param.PolicyMonomorphic: the cache entry owning the guard is
//     re-specialized in place; other chain entries survive.
//   - param.PolicyPolymorphic: the call moves on to the next entry of a
//     chain of guarded specializations, created on first use.
//
// Constants are compared by identity (see param.ProjectionFunc).
//
// Concurrency:
//
//	Calls never lock. Each cache entry publishes its behavior with a single
//	compare-and-swap and never mutates a published behavior. Concurrent
//	calls racing on the same miss may link redundantly; the first install
//	wins. A specialization linked while Deoptimize runs is used by the call
//	that linked it but never installed.
//
// Errors:
//
//	Besides the errors of the specialized handle itself, which are returned
//	unchanged, a dispatcher call can fail with core.ErrLinkage,
//	core.ErrContractViolation, core.ErrConstantViolation and
//	core.ErrWrongArgument.
package dispatch
