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

var (
	intT   = object.TypeDesc{Kind: object.TDInt}
	longT  = object.TypeDesc{Kind: object.TDLong}
	floatT = object.TypeDesc{Kind: object.TDFloat}
)

func testMethod(t *testing.T, static bool, localsSize int, params ...object.TypeDesc) (*object.Class, *object.Method) {
	t.Helper()
	code, err := object.NewCode(localsSize, []object.Instruction{{Op: object.OpReturn}})
	require.NoError(t, err)
	sig := object.NewMethodSig(object.VoidReturn(), "work", object.NewParamsDesc(params))
	method, err := object.NewMethod(sig, static, code)
	require.NoError(t, err)
	class, err := object.NewClass("test.Counter", nil, []object.Method{method})
	require.NoError(t, err)
	return class, class.Methods()[0]
}

func TestNewFrameEntryMode(t *testing.T) {
	class, method := testMethod(t, true, 3)
	f := NewFrame(class, method)

	assert.Equal(t, 0, f.PC())
	assert.Equal(t, 0, f.Stack.Size(), "entry frame stack should be empty")
	for i := 0; i < 3; i++ {
		assert.False(t, f.Locals.IsDefined(i), "entry frame local %d should be undefined", i)
	}
}

// TestNewFrameFromCallMarshalsInOrder pushes (int, long, float) and checks
// the callee's locals reconstruct that vector at the widths' forward
// offsets: 0, 1, 3.
func TestNewFrameFromCallMarshalsInOrder(t *testing.T) {
	class, method := testMethod(t, true, 4, intT, longT, floatT)

	caller := NewOperandStack(MaxStack)
	mustPush(t, caller, object.IntVal(5))
	mustPush(t, caller, object.LongVal(7))
	mustPush(t, caller, object.FloatVal(2.5))

	f, err := NewFrameFromCall(class, method, caller)
	require.NoError(t, err)

	i, err := f.Locals.LoadInt(0)
	require.NoError(t, err)
	assert.Equal(t, object.IntVal(5), i)

	l, err := f.Locals.LoadLong(1)
	require.NoError(t, err)
	assert.Equal(t, object.LongVal(7), l)

	fl, err := f.Locals.LoadFloat(3)
	require.NoError(t, err)
	assert.Equal(t, object.FloatVal(2.5), fl)

	assert.Equal(t, 0, caller.Size(), "caller stack should be drained")
}

func TestNewFrameFromCallPopsReceiverLast(t *testing.T) {
	class, method := testMethod(t, false, 2, intT)
	inst := object.NewInstance(class)

	caller := NewOperandStack(MaxStack)
	mustPush(t, caller, object.Reference{Instance: inst})
	mustPush(t, caller, object.IntVal(9))

	f, err := NewFrameFromCall(class, method, caller)
	require.NoError(t, err)

	this, err := f.Locals.LoadReference(0)
	require.NoError(t, err)
	assert.Same(t, inst, this.Instance, "locals[0] should be the receiver")

	v, err := f.Locals.LoadInt(1)
	require.NoError(t, err)
	assert.Equal(t, object.IntVal(9), v)
}

func TestNewFrameFromCallRejectsWrongArgumentType(t *testing.T) {
	class, method := testMethod(t, true, 2, longT)

	caller := NewOperandStack(MaxStack)
	mustPush(t, caller, object.IntVal(1))

	_, err := NewFrameFromCall(class, method, caller)
	var ferr *FrameError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, longT, ferr.Expected)
	assert.Equal(t, object.TInt, ferr.Got)
	// The mismatching value must stay on the caller's stack.
	assert.Equal(t, 1, caller.Size(), "caller stack should be untouched")
}

func TestOffsetPC(t *testing.T) {
	class, method := testMethod(t, true, 0)
	f := NewFrame(class, method)

	f.IncPC()
	f.IncPC()
	f.OffsetPC(3)
	assert.Equal(t, 5, f.PC())
	f.OffsetPC(-5)
	assert.Equal(t, 0, f.PC())
}

func TestFrameStack(t *testing.T) {
	class, method := testMethod(t, true, 0)
	fs := NewFrameStack()

	assert.Nil(t, fs.Current(), "empty frame stack should have no current frame")
	assert.Nil(t, fs.Pop())

	f1 := NewFrame(class, method)
	f2 := NewFrame(class, method)
	fs.Push(f1)
	fs.Push(f2)

	assert.Equal(t, 2, fs.Depth())
	assert.Same(t, f2, fs.Current())

	snap := fs.Snapshot()
	require.Len(t, snap, 2, "snapshot should list frames bottom to top")
	assert.Same(t, f1, snap[0])
	assert.Same(t, f2, snap[1])

	assert.Same(t, f2, fs.Pop())
	assert.Same(t, f1, fs.Pop())
	assert.Nil(t, fs.Pop())
	// Snapshot is independent of later pops.
	assert.Len(t, snap, 2)
}
