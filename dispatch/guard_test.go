package dispatch

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hupe1980/macro/core"
	"github.com/hupe1980/macro/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	a, b any
}

func TestSameConstant(t *testing.T) {
	slice := []int{1, 2}
	m := map[string]int{}
	fn := func() {}

	assert.True(t, sameConstant(nil, nil))
	assert.False(t, sameConstant(nil, 1))
	assert.True(t, sameConstant(42, 42))
	assert.False(t, sameConstant(42, int64(42)), "different dynamic types")
	assert.True(t, sameConstant("k", "k"))
	assert.True(t, sameConstant(reflect.TypeFor[int](), reflect.TypeFor[int]()))

	assert.True(t, sameConstant(slice, slice))
	assert.False(t, sameConstant(slice, []int{1, 2}), "slices compare by identity")
	assert.False(t, sameConstant(slice, slice[:1]))
	assert.True(t, sameConstant(m, m))
	assert.False(t, sameConstant(m, map[string]int{}))
	assert.True(t, sameConstant(fn, fn))

	p := &pair{}
	assert.True(t, sameConstant(p, p))
	assert.False(t, sameConstant(p, &pair{}), "fresh pointers never match")

	assert.True(t, sameConstant(pair{1, "x"}, pair{1, "x"}))
	assert.False(t, sameConstant(pair{[]int{1}, 1}, pair{[]int{1}, 1}), "must not panic on non-comparable fields")
}

func TestRequireConstant(t *testing.T) {
	check := requireConstant(checkedArgument{
		position:   2,
		typ:        anyType,
		projection: param.ProjectValue,
		constant:   42,
	})
	assert.True(t, check.Signature().Equal(core.NewSignature(anyType, anyType)))

	v, err := check.Invoke(42)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = check.Invoke(43)
	var violation *core.ConstantViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, 2, violation.Position)
	assert.Equal(t, 42, violation.Expected)
	assert.Equal(t, 43, violation.Got)
}

func TestGuardTest(t *testing.T) {
	sig := core.NewSignature(anyType, stringType, anyType, anyType)
	test := guardTest(sig, guardedArgument{
		position:   1,
		typ:        anyType,
		projection: param.ProjectType,
		constant:   reflect.TypeFor[int](),
	})
	assert.True(t, test.Signature().Equal(core.NewSignature(boolType, stringType, anyType)))

	ok, err := test.Invoke("x", 1)
	require.NoError(t, err)
	assert.Equal(t, true, ok)

	ok, err = test.Invoke("x", "1")
	require.NoError(t, err)
	assert.Equal(t, false, ok)
}
