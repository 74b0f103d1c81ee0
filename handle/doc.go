// Package handle builds and composes core.Handle values.
//
// It is the substrate the dispatch engine uses to assemble specialized
// behavior out of pre-existing callables: a linker typically adapts a Go func
// with FromFunc or New, and the engine wraps the result with DropArguments,
// FilterArgument and GuardWithTest before publishing it.
//
// Every combinator returns a new handle and never mutates its inputs.
// Combinators panic when asked to compose handles of incompatible shapes
// (a programming error, like calling reflect.Value.Call with the wrong
// argument count); failures detected while a handle runs are returned as
// errors.
package handle
