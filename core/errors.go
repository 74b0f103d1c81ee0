package core

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/hupe1980/macro/internal/util"
)

var (
	// ErrLinkage is matched by every *LinkageError. The linker failed to
	// produce a handle; the failure is not retried.
	ErrLinkage = errors.New("linkage error")

	// ErrContractViolation is matched by every *ContractViolationError. The
	// linker returned nil or a handle of the wrong signature.
	ErrContractViolation = errors.New("linker contract violation")

	// ErrConstantViolation is matched by every *ConstantViolationError. A
	// position declared with the error policy saw a different constant.
	ErrConstantViolation = errors.New("constant violation")

	// ErrWrongArgument is matched by every *ArgumentError. A call did not
	// match the declared signature.
	ErrWrongArgument = errors.New("wrong argument")
)

// LinkageError wraps an error returned by a linker.
type LinkageError struct {
	Constants []any     // Constants handed to the linker
	Signature Signature // Reduced signature requested from the linker
	Err       error     // Error returned by the linker
}

func (e *LinkageError) Error() string {
	return fmt.Sprintf("linkage error for constants %v and %s: %v", e.Constants, e.Signature, e.Err)
}

// Unwrap returns the linker's error.
func (e *LinkageError) Unwrap() error { return e.Err }

// Is reports whether target is ErrLinkage.
func (e *LinkageError) Is(target error) bool { return target == ErrLinkage }

// ContractViolationError reports a linker result that breaks the linking
// contract: a nil handle or a signature that differs from the requested one.
type ContractViolationError struct {
	Want   Signature  // Signature requested from the linker
	Got    *Signature // Signature of the returned handle, nil if no handle was returned
	Reason string
}

func (e *ContractViolationError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("linker contract violation: %s (want %s)", e.Reason, e.Want)
	}
	return fmt.Sprintf("linker contract violation: %s (want %s, got %s)", e.Reason, e.Want, *e.Got)
}

// Is reports whether target is ErrContractViolation.
func (e *ContractViolationError) Is(target error) bool { return target == ErrContractViolation }

// ConstantViolationError reports that an argument derived a constant that
// differs from the one recorded when the dispatcher was specialized.
type ConstantViolationError struct {
	Position int // Position of the argument in the declared signature
	Value    any // Argument value
	Expected any // Recorded constant
	Got      any // Constant derived from Value
}

func (e *ConstantViolationError) Error() string {
	return fmt.Sprintf("constant violation for argument %v at position %d: expected constant %v, got %v",
		e.Value, e.Position, e.Expected, e.Got)
}

// Is reports whether target is ErrConstantViolation.
func (e *ConstantViolationError) Is(target error) bool { return target == ErrConstantViolation }

// ArgumentError reports a call whose arguments do not match a signature.
// Position is -1 when the argument count is wrong.
type ArgumentError struct {
	Position int
	Want     reflect.Type
	Got      reflect.Type
	Reason   string
}

func (e *ArgumentError) Error() string {
	if e.Position < 0 {
		return "wrong argument: " + e.Reason
	}
	if e.Reason == "" {
		return fmt.Sprintf("wrong argument at position %d: want %s, got %s",
			e.Position, util.TypeName(e.Want), util.TypeName(e.Got))
	}
	return fmt.Sprintf("wrong argument at position %d: %s", e.Position, e.Reason)
}

// Is reports whether target is ErrWrongArgument.
func (e *ArgumentError) Is(target error) bool { return target == ErrWrongArgument }
