/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

// Opcode enumerates every Instruction variant in the repertoire. The
// indexed short forms (ILOAD_0 .. ALOAD_3, ISTORE_0 .. ASTORE_3) are
// folded into their indexed long form at parse time -- they are equivalent
// per the grammar, so the dispatcher only ever sees one shape per
// operation family.
type Opcode int

const (
	OpNop Opcode = iota
	OpAconstNull

	OpIconstM1
	OpIconst0
	OpIconst1
	OpIconst2
	OpIconst3
	OpIconst4
	OpIconst5
	OpLconst0
	OpLconst1
	OpFconst0
	OpFconst1
	OpFconst2
	OpDconst0
	OpDconst1

	OpBipush
	OpSipush
	OpLdc
	OpLdcW
	OpLdc2W

	OpIload
	OpLload
	OpFload
	OpDload
	OpAload

	OpIstore
	OpLstore
	OpFstore
	OpDstore
	OpAstore

	OpPop
	OpPop2
	OpDup
	OpDupX1
	OpDupX2
	OpDup2
	OpDup2X1
	OpDup2X2
	OpSwap

	OpIadd
	OpIsub
	OpImul
	OpIdiv
	OpIrem
	OpIneg
	OpLadd
	OpLsub
	OpLmul
	OpLdiv
	OpLrem
	OpLneg
	OpFadd
	OpFsub
	OpFmul
	OpFdiv
	OpFrem
	OpFneg
	OpDadd
	OpDsub
	OpDmul
	OpDdiv
	OpDrem
	OpDneg

	OpIshl
	OpIshr
	OpIushr
	OpIand
	OpIor
	OpIxor
	OpLshl
	OpLshr
	OpLushr
	OpLand
	OpLor
	OpLxor
	OpIinc

	OpI2l
	OpI2f
	OpI2d
	OpL2i
	OpL2f
	OpL2d
	OpF2i
	OpF2l
	OpF2d
	OpD2i
	OpD2l
	OpD2f

	OpLcmp
	OpFcmpl
	OpFcmpg
	OpDcmpl
	OpDcmpg

	OpIfeq
	OpIfne
	OpIflt
	OpIfge
	OpIfgt
	OpIfle
	OpIfIcmpeq
	OpIfIcmpne
	OpIfIcmplt
	OpIfIcmpge
	OpIfIcmpgt
	OpIfIcmple
	OpIfAcmpeq
	OpIfAcmpne
	OpGoto
	OpIfnull
	OpIfnonnull

	OpIreturn
	OpLreturn
	OpFreturn
	OpDreturn
	OpAreturn
	OpReturn

	OpGetstatic
	OpPutstatic
	OpGetfield
	OpPutfield

	OpInvokevirtual
	OpInvokestatic
	OpInvokespecial

	OpNew
)

// Instruction is a tagged variant enumerating the opcode set; operands are
// embedded in the fields relevant to Op. Only the fields relevant to a
// given Op are populated -- a Go struct plays the role the Rust source
// gives to an enum with per-variant payloads.
type Instruction struct {
	Op Opcode

	// Index addresses a locals slot (loads/stores) or, together with
	// IincConst, the operand pair of IINC.
	Index int

	// Immediates for constant-pushing and IINC. LDC/LDC_W carry either an
	// int or a float immediate -- LdcFloat picks which -- and LDC2_W
	// carries either a long or a double immediate, picked by Ldc2Double.
	IntImm     int32
	LongImm    int64
	FloatImm   float32
	DoubleImm  float64
	LdcFloat   bool
	Ldc2Double bool
	IincConst  int8

	// Offset is the signed branch displacement, in instructions, for
	// every conditional/unconditional branch.
	Offset int16

	// Field/method/class references.
	ClassName  string
	FieldName  string
	MethodName string
	FieldType  TypeDesc
	Return     ReturnDesc
	Params     ParamsDesc
}
