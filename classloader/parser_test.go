/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package classloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvm/object"
)

const arithmeticClass = `
arithmetic.Adder

METHOD
static int add (int,int) 2
ILOAD_0
ILOAD_1
IADD
IRETURN
END
`

func TestParseSimpleMethod(t *testing.T) {
	class, err := NewParser(arithmeticClass).Parse()
	require.NoError(t, err)
	assert.Equal(t, "arithmetic.Adder", class.Name())

	intT, _ := object.ParseTypeDesc("int")
	sig := object.NewMethodSig(object.NonVoidReturn(intT), "add", object.NewParamsDesc([]object.TypeDesc{intT, intT}))
	method, err := class.StaticMethod(sig)
	require.NoError(t, err)
	assert.Equal(t, 4, method.CodeAttr().Len())
}

const fieldClass = `
shapes.Circle

FIELD
static int count

FIELD
int radius

METHOD
void <init> () 1
RETURN
END
`

func TestParseFields(t *testing.T) {
	class, err := NewParser(fieldClass).Parse()
	require.NoError(t, err)

	intT, _ := object.ParseTypeDesc("int")
	_, err = class.StaticFieldEntry(object.NewFieldSig(intT, "count"))
	require.NoError(t, err)
	_, err = class.InstanceFieldEntry(object.NewFieldSig(intT, "radius"))
	require.NoError(t, err)
}

func TestParseComments(t *testing.T) {
	src := `
// a trivial class
empty.Noop // trailing comment

METHOD
static void run () 0 // zero locals
RETURN
END
`
	class, err := NewParser(src).Parse()
	require.NoError(t, err)
	assert.Equal(t, "empty.Noop", class.Name())
}

func TestParseUnknownEntry(t *testing.T) {
	_, err := NewParser("Bogus\nNOT_A_FIELD_OR_METHOD\n").Parse()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, UnknownEntry, pe.Kind)
}

func TestParseUnknownInstruction(t *testing.T) {
	src := `
Bogus

METHOD
static void run () 0
FROBNICATE
END
`
	_, err := NewParser(src).Parse()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, UnknownInstruction, pe.Kind)
}

func TestParseInvalidMethodDefinition(t *testing.T) {
	src := `
Bogus

METHOD
static void run() extra tokens here 0
RETURN
END
`
	_, err := NewParser(src).Parse()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, InvalidMethodDefinition, pe.Kind)
}

func TestParseLdcPrefersInt(t *testing.T) {
	src := `
consts.Holder

METHOD
static int value () 0
LDC 42
IRETURN
END
`
	class, err := NewParser(src).Parse()
	require.NoError(t, err)

	intT, _ := object.ParseTypeDesc("int")
	sig := object.NewMethodSig(object.NonVoidReturn(intT), "value", object.EmptyParams())
	method, err := class.StaticMethod(sig)
	require.NoError(t, err)

	instr, err := method.CodeAttr().Instruction(0)
	require.NoError(t, err)
	assert.Equal(t, object.OpLdc, instr.Op)
	assert.False(t, instr.LdcFloat)
	assert.Equal(t, int32(42), instr.IntImm)
}

func TestParseLdcFallsBackToFloat(t *testing.T) {
	src := `
consts.Holder

METHOD
static float value () 0
LDC 4.5
FRETURN
END
`
	class, err := NewParser(src).Parse()
	require.NoError(t, err)

	floatT, _ := object.ParseTypeDesc("float")
	sig := object.NewMethodSig(object.NonVoidReturn(floatT), "value", object.EmptyParams())
	method, err := class.StaticMethod(sig)
	require.NoError(t, err)

	instr, err := method.CodeAttr().Instruction(0)
	require.NoError(t, err)
	assert.True(t, instr.LdcFloat)
	assert.Equal(t, float32(4.5), instr.FloatImm)
}

func TestParseLdc2WPrefersLong(t *testing.T) {
	src := `
consts.Holder

METHOD
static long value () 0
LDC2_W 123456789012
LRETURN
END
`
	class, err := NewParser(src).Parse()
	require.NoError(t, err)

	longT, _ := object.ParseTypeDesc("long")
	sig := object.NewMethodSig(object.NonVoidReturn(longT), "value", object.EmptyParams())
	method, err := class.StaticMethod(sig)
	require.NoError(t, err)

	instr, err := method.CodeAttr().Instruction(0)
	require.NoError(t, err)
	assert.False(t, instr.Ldc2Double)
	assert.Equal(t, int64(123456789012), instr.LongImm)
}

func TestParseInvokevirtualOperandOrder(t *testing.T) {
	src := `
calls.Caller

METHOD
static void run (other.Callee) 1
ALOAD_0
INVOKEVIRTUAL int other.Callee getValue ()
POP
RETURN
END
`
	class, err := NewParser(src).Parse()
	require.NoError(t, err)

	otherT, _ := object.ParseTypeDesc("other.Callee")
	sig := object.NewMethodSig(object.VoidReturn(), "run", object.NewParamsDesc([]object.TypeDesc{otherT}))
	method, err := class.StaticMethod(sig)
	require.NoError(t, err)

	instr, err := method.CodeAttr().Instruction(1)
	require.NoError(t, err)
	assert.Equal(t, object.OpInvokevirtual, instr.Op)
	assert.Equal(t, "other.Callee", instr.ClassName)
	assert.Equal(t, "getValue", instr.MethodName)
	assert.True(t, instr.Params.IsEmpty())
}
