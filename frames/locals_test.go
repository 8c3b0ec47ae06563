/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package frames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvm/object"
)

func TestLocalsStoreLoadRoundTrip(t *testing.T) {
	l := NewLocals(8)

	require.NoError(t, l.Store(0, object.IntVal(5)))
	require.NoError(t, l.Store(1, object.LongVal(7)))
	require.NoError(t, l.Store(3, object.FloatVal(2.5)))
	require.NoError(t, l.Store(4, object.DoubleVal(1.5)))
	require.NoError(t, l.Store(6, object.Null()))

	i, err := l.LoadInt(0)
	require.NoError(t, err)
	assert.Equal(t, object.IntVal(5), i)

	lv, err := l.LoadLong(1)
	require.NoError(t, err)
	assert.Equal(t, object.LongVal(7), lv)

	f, err := l.LoadFloat(3)
	require.NoError(t, err)
	assert.Equal(t, object.FloatVal(2.5), f)

	d, err := l.LoadDouble(4)
	require.NoError(t, err)
	assert.Equal(t, object.DoubleVal(1.5), d)

	r, err := l.LoadReference(6)
	require.NoError(t, err)
	assert.True(t, r.IsNull())
}

func TestLocalsIndexBounds(t *testing.T) {
	l := NewLocals(4)

	err := l.Store(4, object.IntVal(1))
	var lerr *LocalsError
	require.ErrorAs(t, err, &lerr, "store past the end")
	assert.Equal(t, IndexOutOfBounds, lerr.Kind)

	_, err = l.LoadValue(7)
	assert.Error(t, err, "load past the end")

	// A double at the last slot would need a slot that doesn't exist.
	err = l.Store(3, object.LongVal(1))
	require.ErrorAs(t, err, &lerr, "double straddling the end")
	assert.Equal(t, InvalidIndex, lerr.Kind)
}

func TestLocalsUndefinedAndTypeMismatch(t *testing.T) {
	l := NewLocals(4)

	_, err := l.LoadInt(0)
	var lerr *LocalsError
	require.ErrorAs(t, err, &lerr, "load of an undefined slot")
	assert.Equal(t, InvalidIndex, lerr.Kind)

	require.NoError(t, l.Store(0, object.FloatVal(1)))
	_, err = l.LoadInt(0)
	assert.Error(t, err, "loading a float slot as int should be a type mismatch")
}

// TestLocalsDoubleSlotInvalidation pins the "no half value" invariant:
// a Double-category store poisons the following slot, and a store into the
// second half of a previously stored double poisons the double itself.
func TestLocalsDoubleSlotInvalidation(t *testing.T) {
	l := NewLocals(4)

	require.NoError(t, l.Store(1, object.IntVal(9)))
	require.NoError(t, l.Store(0, object.LongVal(7)))
	_, err := l.LoadInt(1)
	assert.Error(t, err, "slot 1 should have been invalidated by the long at 0")

	// Overwrite the long's second half: the long itself must die.
	require.NoError(t, l.Store(1, object.IntVal(3)))
	_, err = l.LoadLong(0)
	assert.Error(t, err, "slot 0 should have been invalidated by the store into its second half")

	v, err := l.LoadInt(1)
	require.NoError(t, err)
	assert.Equal(t, object.IntVal(3), v, "slot 1 should hold the new int")
}

// TestLocalsUnrelatedSlotsSurvive checks that a store leaves every slot
// outside {i-1, i, i+1} untouched.
func TestLocalsUnrelatedSlotsSurvive(t *testing.T) {
	l := NewLocals(6)

	require.NoError(t, l.Store(0, object.IntVal(1)))
	require.NoError(t, l.Store(5, object.FloatVal(2)))
	require.NoError(t, l.Store(2, object.LongVal(3)))

	i, err := l.LoadInt(0)
	require.NoError(t, err, "slot 0 should be untouched")
	assert.Equal(t, object.IntVal(1), i)

	f, err := l.LoadFloat(5)
	require.NoError(t, err, "slot 5 should be untouched")
	assert.Equal(t, object.FloatVal(2), f)

	lv, err := l.LoadLong(2)
	require.NoError(t, err, "slot 2 should hold the long")
	assert.Equal(t, object.LongVal(3), lv)
}
