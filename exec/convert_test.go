/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package exec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvm/object"
)

func TestL2iKeepsLowBits(t *testing.T) {
	cases := []struct {
		in   int64
		want int32
	}{
		{3, 3},
		{-1, -1},
		{1<<32 + 7, 7},
		{math.MaxInt64, -1},
	}
	for _, c := range cases {
		frame := entryFrame(t, 0, []object.Instruction{{Op: object.OpNop}})
		require.NoError(t, frame.Stack.PushValue(object.LongVal(c.in)))
		require.NoError(t, doConvert(frame, object.OpL2i))

		v, err := frame.Stack.PopInt()
		require.NoError(t, err)
		assert.Equal(t, object.IntVal(c.want), v, "L2I(%d)", c.in)
	}
}

func TestD2lSaturatesAndZeroesNaN(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{math.NaN(), 0},
		{math.Inf(1), math.MaxInt64},
		{math.Inf(-1), math.MinInt64},
		{2.9, 2},
		{-2.9, -2},
	}
	for _, c := range cases {
		frame := entryFrame(t, 0, []object.Instruction{{Op: object.OpNop}})
		require.NoError(t, frame.Stack.PushValue(object.DoubleVal(c.in)))
		require.NoError(t, doConvert(frame, object.OpD2l))

		v, err := frame.Stack.PopLong()
		require.NoError(t, err)
		assert.Equal(t, object.LongVal(c.want), v, "D2L(%v)", c.in)
	}
}

func TestWideningConversionsPreserveValue(t *testing.T) {
	frame := entryFrame(t, 0, []object.Instruction{{Op: object.OpNop}})

	require.NoError(t, frame.Stack.PushValue(object.IntVal(-42)))
	require.NoError(t, doConvert(frame, object.OpI2l))
	l, err := frame.Stack.PopLong()
	require.NoError(t, err)
	assert.Equal(t, object.LongVal(-42), l)

	require.NoError(t, frame.Stack.PushValue(object.IntVal(-42)))
	require.NoError(t, doConvert(frame, object.OpI2d))
	d, err := frame.Stack.PopDouble()
	require.NoError(t, err)
	assert.Equal(t, object.DoubleVal(-42), d)

	require.NoError(t, frame.Stack.PushValue(object.FloatVal(1.5)))
	require.NoError(t, doConvert(frame, object.OpF2d))
	d, err = frame.Stack.PopDouble()
	require.NoError(t, err)
	assert.Equal(t, object.DoubleVal(1.5), d)
}

func TestConvertRejectsMismatchedOperand(t *testing.T) {
	frame := entryFrame(t, 0, []object.Instruction{{Op: object.OpNop}})
	require.NoError(t, frame.Stack.PushValue(object.FloatVal(1)))
	assert.Error(t, doConvert(frame, object.OpI2l), "I2L over a float operand should be a type mismatch")
}

func TestLcmpOrdersLongs(t *testing.T) {
	cases := []struct {
		a, b int64
		want int32
	}{
		{1, 2, -1},
		{2, 2, 0},
		{3, 2, 1},
		{math.MinInt64, math.MaxInt64, -1},
	}
	for _, c := range cases {
		frame := entryFrame(t, 0, []object.Instruction{{Op: object.OpNop}})
		require.NoError(t, frame.Stack.PushValue(object.LongVal(c.a)))
		require.NoError(t, frame.Stack.PushValue(object.LongVal(c.b)))
		require.NoError(t, doCompare(frame, object.OpLcmp))

		v, err := frame.Stack.PopInt()
		require.NoError(t, err)
		assert.Equal(t, object.IntVal(c.want), v, "LCMP(%d, %d)", c.a, c.b)
	}
}
