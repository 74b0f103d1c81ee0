package core

// Handle is a callable bound to a Signature.
//
// Invoke must be called with exactly Signature().NumParams() arguments, each
// assignable to the corresponding parameter type. The returned value is
// assignable to the return type (nil when the signature has no return type).
// Implementations are immutable after construction and safe for concurrent
// use.
type Handle interface {
	// Signature returns the shape of the handle.
	Signature() Signature

	// Invoke calls the handle. Errors raised by the underlying behavior are
	// returned unchanged.
	Invoke(args ...any) (any, error)
}
