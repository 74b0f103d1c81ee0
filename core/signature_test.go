package core

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	anyType    = reflect.TypeFor[any]()
	intType    = reflect.TypeFor[int]()
	stringType = reflect.TypeFor[string]()
)

func TestSignature_Equal(t *testing.T) {
	a := NewSignature(anyType, stringType, intType)
	b := NewSignature(anyType, stringType, intType)
	assert.True(t, a.Equal(b))

	// Return type is part of the identity
	assert.False(t, a.Equal(b.ChangeReturn(stringType)))
	assert.False(t, a.Equal(b.ChangeReturn(nil)))
	// Assignable is not equal
	assert.False(t, a.Equal(NewSignature(anyType, anyType, intType)))
	// Arity
	assert.False(t, a.Equal(NewSignature(anyType, stringType)))
}

func TestSignature_Derivations(t *testing.T) {
	s := NewSignature(anyType, stringType, intType)

	inserted := s.InsertParams(1, anyType, anyType)
	assert.Equal(t, []reflect.Type{stringType, anyType, anyType, intType}, inserted.Params())

	dropped := inserted.DropParams(1, 3)
	assert.True(t, dropped.Equal(s))

	changed := s.ChangeParam(0, anyType)
	assert.Equal(t, anyType, changed.Param(0))
	assert.Equal(t, stringType, s.Param(0), "receiver must not change")

	params := s.Params()
	params[0] = intType
	assert.Equal(t, stringType, s.Param(0), "Params returns a copy")
}

func TestSignature_String(t *testing.T) {
	assert.Equal(t, "func(string, any) int", NewSignature(intType, stringType, anyType).String())
	assert.Equal(t, "func()", NewSignature(nil).String())
}

func TestSignature_CheckArguments(t *testing.T) {
	s := NewSignature(nil, intType, reflect.TypeFor[io.Reader](), anyType)

	require.NoError(t, s.CheckArguments([]any{1, nil, "x"}))

	err := s.CheckArguments([]any{1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrongArgument))
	var argErr *ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, -1, argErr.Position)

	err = s.CheckArguments([]any{"one", nil, nil})
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, 0, argErr.Position)
	assert.Equal(t, intType, argErr.Want)
	assert.Equal(t, stringType, argErr.Got)

	err = s.CheckArguments([]any{nil, nil, nil})
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, 0, argErr.Position)
}

func TestErrors_IsAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("no such method")
	linkErr := error(&LinkageError{Constants: []any{"m"}, Signature: NewSignature(nil), Err: cause})
	assert.True(t, errors.Is(linkErr, ErrLinkage))
	assert.True(t, errors.Is(linkErr, cause))
	assert.False(t, errors.Is(linkErr, ErrContractViolation))

	got := NewSignature(intType)
	contractErr := error(&ContractViolationError{Want: NewSignature(anyType), Got: &got, Reason: "signature mismatch"})
	assert.True(t, errors.Is(contractErr, ErrContractViolation))
	assert.Contains(t, contractErr.Error(), "func() int")

	constErr := error(&ConstantViolationError{Position: 0, Value: 43, Expected: 42, Got: 43})
	assert.True(t, errors.Is(constErr, ErrConstantViolation))
	assert.Contains(t, constErr.Error(), "constant violation for argument 43")
}
