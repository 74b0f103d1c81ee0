package testutil

import (
	"reflect"

	"github.com/hupe1980/macro/core"
)

// SignatureBuilder provides a fluent helper for declaring signatures in tests.
// Example:
//
//	sig := NewSignatureBuilder().Returns(Type[string]()).Param(Type[any]()).Params(Type[int](), 2).Build()
//
// The builder starts with no return type and no parameters.
type SignatureBuilder struct {
	ret    reflect.Type
	params []reflect.Type
}

// NewSignatureBuilder creates an empty builder.
func NewSignatureBuilder() *SignatureBuilder { return &SignatureBuilder{} }

// Returns sets the return type (chainable).
func (b *SignatureBuilder) Returns(t reflect.Type) *SignatureBuilder { b.ret = t; return b }

// Param appends one parameter (chainable).
func (b *SignatureBuilder) Param(t reflect.Type) *SignatureBuilder {
	b.params = append(b.params, t)
	return b
}

// Params appends n parameters of the same type (chainable).
func (b *SignatureBuilder) Params(t reflect.Type, n int) *SignatureBuilder {
	for range n {
		b.params = append(b.params, t)
	}
	return b
}

// Build creates the signature.
func (b *SignatureBuilder) Build() core.Signature {
	return core.NewSignature(b.ret, b.params...)
}

// Type is shorthand for reflect.TypeFor.
func Type[T any]() reflect.Type { return reflect.TypeFor[T]() }

// AnySignature returns func(any × n) any.
func AnySignature(n int) core.Signature {
	return NewSignatureBuilder().Returns(Type[any]()).Params(Type[any](), n).Build()
}
