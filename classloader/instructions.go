/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package classloader

import "mvm/object"

// noOperandOps maps every mnemonic that takes no operand to its Opcode.
var noOperandOps = map[string]object.Opcode{
	"NOP":         object.OpNop,
	"ACONST_NULL": object.OpAconstNull,

	"ICONST_M1": object.OpIconstM1,
	"ICONST_0":  object.OpIconst0,
	"ICONST_1":  object.OpIconst1,
	"ICONST_2":  object.OpIconst2,
	"ICONST_3":  object.OpIconst3,
	"ICONST_4":  object.OpIconst4,
	"ICONST_5":  object.OpIconst5,
	"LCONST_0":  object.OpLconst0,
	"LCONST_1":  object.OpLconst1,
	"FCONST_0":  object.OpFconst0,
	"FCONST_1":  object.OpFconst1,
	"FCONST_2":  object.OpFconst2,
	"DCONST_0":  object.OpDconst0,
	"DCONST_1":  object.OpDconst1,

	"POP":    object.OpPop,
	"POP2":   object.OpPop2,
	"DUP":    object.OpDup,
	"DUP_X1": object.OpDupX1,
	"DUP_X2": object.OpDupX2,
	"DUP2":   object.OpDup2,
	"DUP2_X1": object.OpDup2X1,
	"DUP2_X2": object.OpDup2X2,
	"SWAP":   object.OpSwap,

	"IADD": object.OpIadd,
	"ISUB": object.OpIsub,
	"IMUL": object.OpImul,
	"IDIV": object.OpIdiv,
	"IREM": object.OpIrem,
	"INEG": object.OpIneg,
	"LADD": object.OpLadd,
	"LSUB": object.OpLsub,
	"LMUL": object.OpLmul,
	"LDIV": object.OpLdiv,
	"LREM": object.OpLrem,
	"LNEG": object.OpLneg,
	"FADD": object.OpFadd,
	"FSUB": object.OpFsub,
	"FMUL": object.OpFmul,
	"FDIV": object.OpFdiv,
	"FREM": object.OpFrem,
	"FNEG": object.OpFneg,
	"DADD": object.OpDadd,
	"DSUB": object.OpDsub,
	"DMUL": object.OpDmul,
	"DDIV": object.OpDdiv,
	"DREM": object.OpDrem,
	"DNEG": object.OpDneg,

	"ISHL":  object.OpIshl,
	"ISHR":  object.OpIshr,
	"IUSHR": object.OpIushr,
	"IAND":  object.OpIand,
	"IOR":   object.OpIor,
	"IXOR":  object.OpIxor,
	"LSHL":  object.OpLshl,
	"LSHR":  object.OpLshr,
	"LUSHR": object.OpLushr,
	"LAND":  object.OpLand,
	"LOR":   object.OpLor,
	"LXOR":  object.OpLxor,

	"I2L": object.OpI2l,
	"I2F": object.OpI2f,
	"I2D": object.OpI2d,
	"L2I": object.OpL2i,
	"L2F": object.OpL2f,
	"L2D": object.OpL2d,
	"F2I": object.OpF2i,
	"F2L": object.OpF2l,
	"F2D": object.OpF2d,
	"D2I": object.OpD2i,
	"D2L": object.OpD2l,
	"D2F": object.OpD2f,

	"LCMP":  object.OpLcmp,
	"FCMPL": object.OpFcmpl,
	"FCMPG": object.OpFcmpg,
	"DCMPL": object.OpDcmpl,
	"DCMPG": object.OpDcmpg,

	"IRETURN": object.OpIreturn,
	"LRETURN": object.OpLreturn,
	"FRETURN": object.OpFreturn,
	"DRETURN": object.OpDreturn,
	"ARETURN": object.OpAreturn,
	"RETURN":  object.OpReturn,
}

// branchOps maps branch mnemonics to their Opcode; all take a signed
// 16-bit instruction-offset operand.
var branchOps = map[string]object.Opcode{
	"IFEQ":        object.OpIfeq,
	"IFNE":        object.OpIfne,
	"IFLT":        object.OpIflt,
	"IFGE":        object.OpIfge,
	"IFGT":        object.OpIfgt,
	"IFLE":        object.OpIfle,
	"IF_ICMPEQ":   object.OpIfIcmpeq,
	"IF_ICMPNE":   object.OpIfIcmpne,
	"IF_ICMPLT":   object.OpIfIcmplt,
	"IF_ICMPGE":   object.OpIfIcmpge,
	"IF_ICMPGT":   object.OpIfIcmpgt,
	"IF_ICMPLE":   object.OpIfIcmple,
	"IF_ACMPEQ":   object.OpIfAcmpeq,
	"IF_ACMPNE":   object.OpIfAcmpne,
	"GOTO":        object.OpGoto,
	"IFNULL":      object.OpIfnull,
	"IFNONNULL":   object.OpIfnonnull,
}

// indexedOps maps the long forms of the load/store family to their Opcode;
// all take a u8 locals index.
var indexedOps = map[string]object.Opcode{
	"ILOAD": object.OpIload,
	"LLOAD": object.OpLload,
	"FLOAD": object.OpFload,
	"DLOAD": object.OpDload,
	"ALOAD": object.OpAload,

	"ISTORE": object.OpIstore,
	"LSTORE": object.OpLstore,
	"FSTORE": object.OpFstore,
	"DSTORE": object.OpDstore,
	"ASTORE": object.OpAstore,
}

// shortFormOps maps an indexed short-form mnemonic (e.g. ILOAD_0) to the
// long-form Opcode and the implied locals index; the parser folds these
// into the indexed form so the dispatcher sees one shape per operation.
var shortFormOps = map[string]struct {
	op  object.Opcode
	idx int
}{
	"ILOAD_0": {object.OpIload, 0}, "ILOAD_1": {object.OpIload, 1},
	"ILOAD_2": {object.OpIload, 2}, "ILOAD_3": {object.OpIload, 3},
	"LLOAD_0": {object.OpLload, 0}, "LLOAD_1": {object.OpLload, 1},
	"LLOAD_2": {object.OpLload, 2}, "LLOAD_3": {object.OpLload, 3},
	"FLOAD_0": {object.OpFload, 0}, "FLOAD_1": {object.OpFload, 1},
	"FLOAD_2": {object.OpFload, 2}, "FLOAD_3": {object.OpFload, 3},
	"DLOAD_0": {object.OpDload, 0}, "DLOAD_1": {object.OpDload, 1},
	"DLOAD_2": {object.OpDload, 2}, "DLOAD_3": {object.OpDload, 3},
	"ALOAD_0": {object.OpAload, 0}, "ALOAD_1": {object.OpAload, 1},
	"ALOAD_2": {object.OpAload, 2}, "ALOAD_3": {object.OpAload, 3},

	"ISTORE_0": {object.OpIstore, 0}, "ISTORE_1": {object.OpIstore, 1},
	"ISTORE_2": {object.OpIstore, 2}, "ISTORE_3": {object.OpIstore, 3},
	"LSTORE_0": {object.OpLstore, 0}, "LSTORE_1": {object.OpLstore, 1},
	"LSTORE_2": {object.OpLstore, 2}, "LSTORE_3": {object.OpLstore, 3},
	"FSTORE_0": {object.OpFstore, 0}, "FSTORE_1": {object.OpFstore, 1},
	"FSTORE_2": {object.OpFstore, 2}, "FSTORE_3": {object.OpFstore, 3},
	"DSTORE_0": {object.OpDstore, 0}, "DSTORE_1": {object.OpDstore, 1},
	"DSTORE_2": {object.OpDstore, 2}, "DSTORE_3": {object.OpDstore, 3},
	"ASTORE_0": {object.OpAstore, 0}, "ASTORE_1": {object.OpAstore, 1},
	"ASTORE_2": {object.OpAstore, 2}, "ASTORE_3": {object.OpAstore, 3},
}

// parseInstruction parses everything past the mnemonic, leaving any extra
// tokens for the caller to reject.
func (p *Parser) parseInstruction(mnemonic string, toks *tokens) (object.Instruction, error) {
	if op, ok := noOperandOps[mnemonic]; ok {
		return object.Instruction{Op: op}, nil
	}
	if op, ok := branchOps[mnemonic]; ok {
		tok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		offset, err := p.parseI16(tok)
		if err != nil {
			return object.Instruction{}, err
		}
		return object.Instruction{Op: op, Offset: offset}, nil
	}
	if op, ok := indexedOps[mnemonic]; ok {
		tok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		idx, err := p.parseU8(tok)
		if err != nil {
			return object.Instruction{}, err
		}
		return object.Instruction{Op: op, Index: int(idx)}, nil
	}
	if sf, ok := shortFormOps[mnemonic]; ok {
		return object.Instruction{Op: sf.op, Index: sf.idx}, nil
	}

	switch mnemonic {
	case "BIPUSH":
		tok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		n, err := p.parseI8(tok)
		if err != nil {
			return object.Instruction{}, err
		}
		return object.Instruction{Op: object.OpBipush, IntImm: int32(n)}, nil

	case "SIPUSH":
		tok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		n, err := p.parseI16(tok)
		if err != nil {
			return object.Instruction{}, err
		}
		return object.Instruction{Op: object.OpSipush, IntImm: int32(n)}, nil

	case "LDC", "LDC_W":
		tok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		intVal, floatVal, isFloat, err := p.parseLdcArg(tok)
		if err != nil {
			return object.Instruction{}, err
		}
		op := object.OpLdc
		if mnemonic == "LDC_W" {
			op = object.OpLdcW
		}
		return object.Instruction{Op: op, IntImm: intVal, FloatImm: floatVal, LdcFloat: isFloat}, nil

	case "LDC2_W":
		tok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		longVal, doubleVal, isDouble, err := p.parseLdc2Arg(tok)
		if err != nil {
			return object.Instruction{}, err
		}
		return object.Instruction{Op: object.OpLdc2W, LongImm: longVal, DoubleImm: doubleVal, Ldc2Double: isDouble}, nil

	case "IINC":
		idxTok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		constTok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		idx, err := p.parseU8(idxTok)
		if err != nil {
			return object.Instruction{}, err
		}
		c, err := p.parseI8(constTok)
		if err != nil {
			return object.Instruction{}, err
		}
		return object.Instruction{Op: object.OpIinc, Index: int(idx), IincConst: c}, nil

	case "GETSTATIC", "PUTSTATIC", "GETFIELD", "PUTFIELD":
		typeTok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		classTok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		fieldTok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		td, err := p.parseTypeDesc(typeTok)
		if err != nil {
			return object.Instruction{}, err
		}
		className, err := p.parseClassName(classTok)
		if err != nil {
			return object.Instruction{}, err
		}
		fieldName, err := p.parseFieldName(fieldTok)
		if err != nil {
			return object.Instruction{}, err
		}
		var op object.Opcode
		switch mnemonic {
		case "GETSTATIC":
			op = object.OpGetstatic
		case "PUTSTATIC":
			op = object.OpPutstatic
		case "GETFIELD":
			op = object.OpGetfield
		case "PUTFIELD":
			op = object.OpPutfield
		}
		return object.Instruction{Op: op, ClassName: className, FieldName: fieldName, FieldType: td}, nil

	case "INVOKEVIRTUAL", "INVOKESTATIC", "INVOKESPECIAL":
		retTok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		classTok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		methodTok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		paramsTok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		ret, err := p.parseReturnDesc(retTok)
		if err != nil {
			return object.Instruction{}, err
		}
		className, err := p.parseClassName(classTok)
		if err != nil {
			return object.Instruction{}, err
		}
		methodName, err := p.parseMethodName(methodTok)
		if err != nil {
			return object.Instruction{}, err
		}
		params, err := p.parseMethodParams(paramsTok)
		if err != nil {
			return object.Instruction{}, err
		}
		var op object.Opcode
		switch mnemonic {
		case "INVOKEVIRTUAL":
			op = object.OpInvokevirtual
		case "INVOKESTATIC":
			op = object.OpInvokestatic
		case "INVOKESPECIAL":
			op = object.OpInvokespecial
		}
		return object.Instruction{Op: op, ClassName: className, MethodName: methodName, Return: ret, Params: params}, nil

	case "NEW":
		classTok, err := toks.nextOrErr(p)
		if err != nil {
			return object.Instruction{}, err
		}
		className, err := p.parseClassName(classTok)
		if err != nil {
			return object.Instruction{}, err
		}
		return object.Instruction{Op: object.OpNew, ClassName: className}, nil

	default:
		return object.Instruction{}, p.errAt(UnknownInstruction, mnemonic)
	}
}
