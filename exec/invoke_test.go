/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvm/frames"
	"mvm/object"
)

func buildGetterClass(t *testing.T, retOp object.Opcode) *object.Class {
	t.Helper()
	getterCode, err := object.NewCode(1, []object.Instruction{
		{Op: object.OpAload, Index: 0},
		{Op: object.OpGetfield, ClassName: "test.Counter", FieldName: "n", FieldType: intT},
		{Op: retOp},
	})
	require.NoError(t, err)
	getterSig := object.NewMethodSig(object.NonVoidReturn(intT), "get", object.EmptyParams())
	getter, err := object.NewMethod(getterSig, false, getterCode)
	require.NoError(t, err)
	class, err := object.NewClass("test.Counter",
		[]object.Field{object.NewField(object.NewFieldSig(intT, "n"), false)},
		[]object.Method{getter})
	require.NoError(t, err)
	return class
}

// invokeThroughNewAndCall drives NEW and then op (INVOKEVIRTUAL or
// INVOKESPECIAL) against test.Counter#get, returning the frame stack right
// after the invoke has pushed the callee's frame.
func invokeThroughNewAndCall(t *testing.T, op object.Opcode) (*frames.FrameStack, Runtime) {
	t.Helper()
	counter := buildGetterClass(t, object.OpIreturn)
	rt := newFakeRuntime(counter)

	callerInstrs := []object.Instruction{
		{Op: object.OpNew, ClassName: "test.Counter"},
		{Op: op, ClassName: "test.Counter", MethodName: "get", Return: object.NonVoidReturn(intT), Params: object.EmptyParams()},
		{Op: object.OpIreturn},
	}
	code, err := object.NewCode(0, callerInstrs)
	require.NoError(t, err)
	sig := object.NewMethodSig(object.NonVoidReturn(intT), "run", object.EmptyParams())
	method, err := object.NewMethod(sig, true, code)
	require.NoError(t, err)
	callerClass, err := object.NewClass("test.Caller", nil, []object.Method{method})
	require.NoError(t, err)
	frame := frames.NewFrame(callerClass, callerClass.Methods()[0])
	fs := frames.NewFrameStack()
	fs.Push(frame)

	require.NoError(t, Step(rt, fs), "NEW")
	require.NoError(t, Step(rt, fs), "invoke")
	return fs, rt
}

func TestInvokevirtualPushesCalleeFrame(t *testing.T) {
	fs, _ := invokeThroughNewAndCall(t, object.OpInvokevirtual)
	require.Equal(t, 2, fs.Depth(), "expected a new callee frame on top")
	assert.Equal(t, "get", fs.Current().Method.Signature().Name)
}

func TestInvokespecialDispatchesLikeInvokevirtual(t *testing.T) {
	// There is no inheritance in this object model: INVOKESPECIAL resolves
	// and dispatches identically to INVOKEVIRTUAL.
	fs, _ := invokeThroughNewAndCall(t, object.OpInvokespecial)
	require.Equal(t, 2, fs.Depth(), "expected a new callee frame on top")
	assert.Equal(t, "get", fs.Current().Method.Signature().Name)
}

// TestInvokestaticPreservesArgumentOrder exercises the non-commutative
// case: locals[0..k] must reconstruct the caller's argument vector in
// declaration order, not reversed. ISUB is order-sensitive, so a
// misordered call would produce -3 instead of 3.
func TestInvokestaticPreservesArgumentOrder(t *testing.T) {
	subCode, err := object.NewCode(2, []object.Instruction{
		{Op: object.OpIload, Index: 0},
		{Op: object.OpIload, Index: 1},
		{Op: object.OpIsub},
		{Op: object.OpIreturn},
	})
	require.NoError(t, err)
	subSig := object.NewMethodSig(object.NonVoidReturn(intT), "sub", object.NewParamsDesc([]object.TypeDesc{intT, intT}))
	subMethod, err := object.NewMethod(subSig, true, subCode)
	require.NoError(t, err)
	class, err := object.NewClass("test.Math", nil, []object.Method{subMethod})
	require.NoError(t, err)
	rt := newFakeRuntime(class)

	callerInstrs := []object.Instruction{
		{Op: object.OpBipush, IntImm: 5}, // first argument
		{Op: object.OpBipush, IntImm: 2}, // second argument
		{Op: object.OpInvokestatic, ClassName: "test.Math", MethodName: "sub", Return: object.NonVoidReturn(intT), Params: subSig.Params},
		{Op: object.OpIreturn},
	}
	code, err := object.NewCode(0, callerInstrs)
	require.NoError(t, err)
	callerSig := object.NewMethodSig(object.NonVoidReturn(intT), "run", object.EmptyParams())
	callerMethod, err := object.NewMethod(callerSig, true, code)
	require.NoError(t, err)
	callerClass, err := object.NewClass("test.Caller", nil, []object.Method{callerMethod})
	require.NoError(t, err)
	frame := frames.NewFrame(callerClass, callerClass.Methods()[0])
	fs := frames.NewFrameStack()
	fs.Push(frame)

	// BIPUSH, BIPUSH, INVOKESTATIC, then the callee's ILOAD/ILOAD/ISUB.
	for i := 0; i < 6; i++ {
		require.NoError(t, Step(rt, fs), "step %d", i)
	}
	require.Equal(t, 2, fs.Depth(), "expected to be inside the callee")
	require.NoError(t, Step(rt, fs), "callee IRETURN")
	require.Equal(t, 1, fs.Depth(), "IRETURN should pop the callee frame")

	// sub(5, 2) must be 3; a reversed argument vector would yield -3.
	got, err := fs.Current().Stack.PopInt()
	require.NoError(t, err)
	assert.Equal(t, object.IntVal(3), got, "arguments must be marshalled in declaration order")
}

func TestInvokeOnNullReceiverIsNullPointer(t *testing.T) {
	counter := buildGetterClass(t, object.OpIreturn)
	rt := newFakeRuntime(counter)

	callerInstrs := []object.Instruction{
		{Op: object.OpAconstNull},
		{Op: object.OpInvokevirtual, ClassName: "test.Counter", MethodName: "get", Return: object.NonVoidReturn(intT), Params: object.EmptyParams()},
		{Op: object.OpIreturn},
	}
	code, err := object.NewCode(0, callerInstrs)
	require.NoError(t, err)
	sig := object.NewMethodSig(object.NonVoidReturn(intT), "run", object.EmptyParams())
	method, err := object.NewMethod(sig, true, code)
	require.NoError(t, err)
	callerClass, err := object.NewClass("test.Caller", nil, []object.Method{method})
	require.NoError(t, err)
	frame := frames.NewFrame(callerClass, callerClass.Methods()[0])
	fs := frames.NewFrameStack()
	fs.Push(frame)

	require.NoError(t, Step(rt, fs)) // ACONST_NULL
	err = Step(rt, fs)               // INVOKEVIRTUAL on null
	assert.ErrorIs(t, err, object.ErrNullPointer)
}
