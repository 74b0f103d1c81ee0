// Package param describes how each argument of a dispatcher call is treated.
//
// Instead of a classical function call where all arguments are sent to the
// callee, a dispatcher separates the arguments in two categories: constants
// and values. Constants are extracted first and handed to a linker, which
// returns the handle that is then called with the values. Because constants
// are known before the call, the linker can precompute data structures and
// resolve methods once instead of paying reflection costs on every call.
//
// There are three kinds of parameters:
//   - ConstantParameter: a constant is derived from the argument by a
//     ProjectionFunc; the argument itself is dropped or kept, and a Policy
//     tells the dispatcher what to do when later calls derive a different
//     constant.
//   - ValueParameter: the argument is passed through unchanged.
//   - IgnoreParameter: the argument is discarded.
//
// Parameters are immutable values and can be shared by any number of
// dispatchers.
package param

import (
	"fmt"
	"reflect"
	"strings"
)

// Parameter is implemented by ConstantParameter, ValueParameter and
// IgnoreParameter only.
type Parameter interface {
	isParameter()
}

// ProjectionFunc derives a constant from an argument and its declared type.
//
// Dispatchers compare constants by identity, so a projection must return a
// canonical representation: the value itself when it is comparable, a
// reflect.Type, an interned pointer. A projection that allocates a fresh
// pointer on every call never matches a cached constant and defeats caching.
type ProjectionFunc func(declared reflect.Type, value any) any

var (
	// ProjectValue uses the argument itself as the constant.
	ProjectValue ProjectionFunc = func(_ reflect.Type, value any) any { return value }

	// ProjectType uses the type of the argument as the constant: the declared
	// type when it is not an interface, the dynamic type of the value
	// otherwise (nil for a nil interface value).
	ProjectType ProjectionFunc = func(declared reflect.Type, value any) any {
		if declared.Kind() != reflect.Interface {
			return declared
		}
		if value == nil {
			return nil
		}
		return reflect.TypeOf(value)
	}
)

// Policy is the behavior of a dispatcher when a constant position derives a
// different constant than the one it was specialized for.
type Policy int

const (
	// PolicyError fails the call with a constant violation.
	PolicyError Policy = iota
	// PolicyRelink throws away every cached specialization and calls the
	// linker again.
	PolicyRelink
	// PolicyMonomorphic keeps a single specialization for the position and
	// overwrites it with a freshly linked one.
	PolicyMonomorphic
	// PolicyPolymorphic remembers every specialization in a chain of guarded
	// cache entries (a polymorphic inline cache).
	PolicyPolymorphic
)

var policyNames = [...]string{"error", "relink", "monomorphic", "polymorphic"}

// String returns the lower case name of the policy.
func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy parses a policy name, case insensitive.
func ParsePolicy(s string) (Policy, error) {
	for i, name := range policyNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("param: unknown policy %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ConstantParameter marks an argument from which a constant is derived.
type ConstantParameter struct {
	projection ProjectionFunc
	dropValue  bool
	policy     Policy
}

// NewConstant creates a constant parameter from a projection function, a
// flag telling whether the argument is dropped once the constant is derived,
// and the policy applied when a different constant shows up.
func NewConstant(projection ProjectionFunc, dropValue bool, policy Policy) ConstantParameter {
	if projection == nil {
		panic("param: nil projection function")
	}
	return ConstantParameter{projection: projection, dropValue: dropValue, policy: policy}
}

func (ConstantParameter) isParameter() {}

// Projection returns the projection function.
func (p ConstantParameter) Projection() ProjectionFunc { return p.projection }

// DropsValue reports whether the argument is dropped: when true, it does not
// reach the handle returned by the linker.
func (p ConstantParameter) DropsValue() bool { return p.dropValue }

// Policy returns the policy applied on a different constant.
func (p ConstantParameter) Policy() Policy { return p.policy }

// Derive computes the constant of an argument.
func (p ConstantParameter) Derive(declared reflect.Type, value any) any {
	return p.projection(declared, value)
}

// WithPolicy returns a copy using the given policy.
func (p ConstantParameter) WithPolicy(policy Policy) ConstantParameter {
	p.policy = policy
	return p
}

// Error returns a copy using PolicyError.
func (p ConstantParameter) Error() ConstantParameter { return p.WithPolicy(PolicyError) }

// Relink returns a copy using PolicyRelink.
func (p ConstantParameter) Relink() ConstantParameter { return p.WithPolicy(PolicyRelink) }

// Monomorphic returns a copy using PolicyMonomorphic.
func (p ConstantParameter) Monomorphic() ConstantParameter { return p.WithPolicy(PolicyMonomorphic) }

// Polymorphic returns a copy using PolicyPolymorphic.
func (p ConstantParameter) Polymorphic() ConstantParameter { return p.WithPolicy(PolicyPolymorphic) }

// DropValue returns a copy that drops (true) or retains (false) the argument.
func (p ConstantParameter) DropValue(drop bool) ConstantParameter {
	p.dropValue = drop
	return p
}

// ValueParameter marks an argument passed through unchanged.
type ValueParameter struct{}

func (ValueParameter) isParameter() {}

// IgnoreParameter marks an argument that is discarded.
type IgnoreParameter struct{}

func (IgnoreParameter) isParameter() {}

var (
	// ConstantValue uses the argument as a constant, drops it and fails on a
	// different value.
	ConstantValue = NewConstant(ProjectValue, true, PolicyError)

	// ConstantType uses the type of the argument as a constant, keeps the
	// argument and fails on a different type.
	ConstantType = NewConstant(ProjectType, false, PolicyError)

	// Value passes the argument through.
	Value Parameter = ValueParameter{}

	// Ignore discards the argument.
	Ignore Parameter = IgnoreParameter{}
)
