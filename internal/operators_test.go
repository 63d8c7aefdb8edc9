package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAddPromotion(t *testing.T) {
	v, err := applyBinary(tkPlus, intVal(1), intVal(2))
	require.NoError(t, err)
	assert.Equal(t, intVal(3), v)

	v, err = applyBinary(tkPlus, intVal(1), floatVal(5.8))
	require.NoError(t, err)
	assert.Equal(t, floatVal(6.8), v)

	v, err = applyBinary(tkPlus, floatVal(6.8), strVal("da"))
	require.NoError(t, err)
	assert.Equal(t, strVal("6.8da"), v)

	v, err = applyBinary(tkPlus, strVal("da"), floatVal(5.8))
	require.NoError(t, err)
	assert.Equal(t, strVal("da5.8"), v)

	_, err = applyBinary(tkPlus, strVal("da"), boolVal(true))
	assert.ErrorIs(t, err, errTypeMismatch)

	_, err = applyBinary(tkPlus, intVal(1), unit)
	assert.ErrorIs(t, err, errTypeMismatch)
}

func TestApplyArithmetic(t *testing.T) {
	v, err := applyBinary(tkSlash, intVal(7), intVal(2))
	require.NoError(t, err)
	assert.Equal(t, intVal(3), v)

	_, err = applyBinary(tkSlash, intVal(1), intVal(0))
	assert.ErrorIs(t, err, errDivisionByZero)

	v, err = applyBinary(tkSlash, floatVal(1), intVal(0))
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(v.(floatVal)), 1))

	v, err = applyBinary(tkPower, intVal(2), intVal(10))
	require.NoError(t, err)
	assert.Equal(t, intVal(1024), v)

	v, err = applyBinary(tkPower, intVal(2), intVal(-1))
	require.NoError(t, err)
	assert.Equal(t, floatVal(0.5), v)

	v, err = applyBinary(tkPower, intVal(3), intVal(0))
	require.NoError(t, err)
	assert.Equal(t, intVal(1), v)

	_, err = applyBinary(tkStar, strVal("a"), intVal(2))
	assert.ErrorIs(t, err, errTypeMismatch)
}

func TestApplyOrdering(t *testing.T) {
	v, err := applyBinary(tkLess, intVal(1), floatVal(1.5))
	require.NoError(t, err)
	assert.Equal(t, boolVal(true), v)

	// String operand makes the comparison lexicographic on text forms.
	v, err = applyBinary(tkLess, intVal(9), strVal("10"))
	require.NoError(t, err)
	assert.Equal(t, boolVal(false), v)

	v, err = applyBinary(tkGreaterEqual, strVal("abd"), strVal("abc"))
	require.NoError(t, err)
	assert.Equal(t, boolVal(true), v)

	_, err = applyBinary(tkLess, boolVal(true), boolVal(false))
	assert.ErrorIs(t, err, errTypeMismatch)
}

func TestStructuralEq(t *testing.T) {
	eq, err := structuralEq(intVal(1), floatVal(1.0))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = structuralEq(strVal("1"), intVal(1))
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = structuralEq(unit, unit)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = structuralEq(boolVal(true), boolVal(false))
	require.NoError(t, err)
	assert.False(t, eq)

	_, err = structuralEq(boolVal(true), intVal(1))
	assert.ErrorIs(t, err, errTypeMismatch)

	_, err = structuralEq(unit, intVal(0))
	assert.ErrorIs(t, err, errTypeMismatch)

	// Closures never compare equal, not even to themselves.
	cl := &closure{name: "f"}
	eq, err = structuralEq(cl, cl)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestApplyLogicalAndUnary(t *testing.T) {
	v, err := applyBinary(tkAnd, boolVal(true), boolVal(false))
	require.NoError(t, err)
	assert.Equal(t, boolVal(false), v)

	v, err = applyBinary(tkOr, boolVal(false), boolVal(true))
	require.NoError(t, err)
	assert.Equal(t, boolVal(true), v)

	_, err = applyBinary(tkAnd, boolVal(true), intVal(1))
	assert.ErrorIs(t, err, errTypeMismatch)

	v, err = applyUnary(tkBang, boolVal(true))
	require.NoError(t, err)
	assert.Equal(t, boolVal(false), v)

	_, err = applyUnary(tkBang, intVal(0))
	assert.ErrorIs(t, err, errTypeMismatch)
}

func TestValueStringForms(t *testing.T) {
	assert.Equal(t, "5.8", floatVal(5.8).String())
	assert.Equal(t, "5", floatVal(5).String())
	assert.Equal(t, "()", unit.String())
	assert.Equal(t, "fn f", (&closure{name: "f"}).String())
	assert.Equal(t, "Str(\"a\\\"b\")", strVal(`a"b`).debugString())
}
