package dispatch

import (
	"reflect"

	"github.com/hupe1980/macro/core"
	"github.com/hupe1980/macro/param"
)

// argument is the classification of one declared position for one call.
type argument interface {
	isArgument()
}

type ignoredArgument struct {
	position int
	typ      reflect.Type
}

type valueArgument struct{}

// checkedArgument is a constant position with the error policy.
type checkedArgument struct {
	position   int
	typ        reflect.Type
	projection param.ProjectionFunc
	constant   any
	dropValue  bool
}

// guardedArgument is a constant position with a relink, monomorphic or
// polymorphic policy.
type guardedArgument struct {
	position   int
	typ        reflect.Type
	projection param.ProjectionFunc
	constant   any
	dropValue  bool
	policy     param.Policy
}

func (ignoredArgument) isArgument() {}
func (valueArgument) isArgument()   {}
func (checkedArgument) isArgument() {}
func (guardedArgument) isArgument() {}

// analysis is the result of classifying the arguments of one call.
type analysis struct {
	arguments []argument     // one entry per declared position
	constants []any          // constants for the linker, in declaration order
	values    []any          // arguments that reach the linked handle
	sig       core.Signature // signature the linked handle must have
}

// analyze classifies args according to params. It has no side effects beyond
// calling the projection functions once per constant position.
func analyze(args []any, params []param.Parameter, sig core.Signature) analysis {
	a := analysis{arguments: make([]argument, 0, len(args))}
	valueTypes := make([]reflect.Type, 0, len(args))

	for i, arg := range args {
		typ := sig.Param(i)
		switch p := params[i].(type) {
		case param.IgnoreParameter:
			a.arguments = append(a.arguments, ignoredArgument{position: i, typ: typ})

		case param.ValueParameter:
			a.values = append(a.values, arg)
			valueTypes = append(valueTypes, typ)
			a.arguments = append(a.arguments, valueArgument{})

		case param.ConstantParameter:
			constant := p.Derive(typ, arg)
			a.constants = append(a.constants, constant)
			if !p.DropsValue() {
				a.values = append(a.values, arg)
				valueTypes = append(valueTypes, typ)
			}
			if p.Policy() == param.PolicyError {
				a.arguments = append(a.arguments, checkedArgument{
					position: i, typ: typ, projection: p.Projection(), constant: constant, dropValue: p.DropsValue(),
				})
			} else {
				a.arguments = append(a.arguments, guardedArgument{
					position: i, typ: typ, projection: p.Projection(), constant: constant, dropValue: p.DropsValue(),
					policy: p.Policy(),
				})
			}
		}
	}

	a.sig = core.NewSignature(sig.Return(), valueTypes...)
	return a
}
