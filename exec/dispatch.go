/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package exec

import (
	"mvm/frames"
	"mvm/object"
)

// Step executes exactly one instruction at the frame stack's current
// frame. It returns nil if fs is empty (the thread has already run to
// completion) and there is nothing to do.
func Step(rt Runtime, fs *frames.FrameStack) error {
	frame := fs.Current()
	if frame == nil {
		return nil
	}

	instr, err := frame.Method.CodeAttr().Instruction(frame.PC())
	if err != nil {
		return err
	}

	return dispatch(rt, fs, frame, instr)
}

func dispatch(rt Runtime, fs *frames.FrameStack, frame *frames.Frame, instr object.Instruction) error {
	switch instr.Op {
	case object.OpNop:
		frame.IncPC()
		return nil

	case object.OpAconstNull:
		return pushAndAdvance(frame, object.Null())

	case object.OpIconstM1:
		return pushAndAdvance(frame, object.IntVal(-1))
	case object.OpIconst0:
		return pushAndAdvance(frame, object.IntVal(0))
	case object.OpIconst1:
		return pushAndAdvance(frame, object.IntVal(1))
	case object.OpIconst2:
		return pushAndAdvance(frame, object.IntVal(2))
	case object.OpIconst3:
		return pushAndAdvance(frame, object.IntVal(3))
	case object.OpIconst4:
		return pushAndAdvance(frame, object.IntVal(4))
	case object.OpIconst5:
		return pushAndAdvance(frame, object.IntVal(5))
	case object.OpLconst0:
		return pushAndAdvance(frame, object.LongVal(0))
	case object.OpLconst1:
		return pushAndAdvance(frame, object.LongVal(1))
	case object.OpFconst0:
		return pushAndAdvance(frame, object.FloatVal(0))
	case object.OpFconst1:
		return pushAndAdvance(frame, object.FloatVal(1))
	case object.OpFconst2:
		return pushAndAdvance(frame, object.FloatVal(2))
	case object.OpDconst0:
		return pushAndAdvance(frame, object.DoubleVal(0))
	case object.OpDconst1:
		return pushAndAdvance(frame, object.DoubleVal(1))

	case object.OpBipush, object.OpSipush:
		return pushAndAdvance(frame, object.IntVal(instr.IntImm))

	case object.OpLdc, object.OpLdcW:
		if instr.LdcFloat {
			return pushAndAdvance(frame, object.FloatVal(instr.FloatImm))
		}
		return pushAndAdvance(frame, object.IntVal(instr.IntImm))

	case object.OpLdc2W:
		if instr.Ldc2Double {
			return pushAndAdvance(frame, object.DoubleVal(instr.DoubleImm))
		}
		return pushAndAdvance(frame, object.LongVal(instr.LongImm))

	case object.OpIload:
		v, err := frame.Locals.LoadInt(instr.Index)
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, v)
	case object.OpLload:
		v, err := frame.Locals.LoadLong(instr.Index)
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, v)
	case object.OpFload:
		v, err := frame.Locals.LoadFloat(instr.Index)
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, v)
	case object.OpDload:
		v, err := frame.Locals.LoadDouble(instr.Index)
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, v)
	case object.OpAload:
		v, err := frame.Locals.LoadReference(instr.Index)
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, v)

	case object.OpIstore, object.OpLstore, object.OpFstore, object.OpDstore, object.OpAstore:
		v, err := frame.Stack.PopValue()
		if err != nil {
			return err
		}
		if err := frame.Locals.Store(instr.Index, v); err != nil {
			return err
		}
		frame.IncPC()
		return nil

	case object.OpPop:
		if err := frame.Stack.PopDiscard1(); err != nil {
			return err
		}
		frame.IncPC()
		return nil
	case object.OpPop2:
		if err := frame.Stack.PopDiscard2(); err != nil {
			return err
		}
		frame.IncPC()
		return nil
	case object.OpDup:
		return stackOpAndAdvance(frame, frame.Stack.Dup1)
	case object.OpDupX1:
		return stackOpAndAdvance(frame, frame.Stack.Dup1Skip1)
	case object.OpDupX2:
		return stackOpAndAdvance(frame, frame.Stack.Dup1Skip2)
	case object.OpDup2:
		return stackOpAndAdvance(frame, frame.Stack.Dup2)
	case object.OpDup2X1:
		return stackOpAndAdvance(frame, frame.Stack.Dup2Skip1)
	case object.OpDup2X2:
		return stackOpAndAdvance(frame, frame.Stack.Dup2Skip2)
	case object.OpSwap:
		return stackOpAndAdvance(frame, frame.Stack.Swap)

	case object.OpIinc:
		v, err := frame.Locals.LoadInt(instr.Index)
		if err != nil {
			return err
		}
		if err := frame.Locals.Store(instr.Index, v+object.IntVal(instr.IincConst)); err != nil {
			return err
		}
		frame.IncPC()
		return nil

	case object.OpI2l, object.OpI2f, object.OpI2d, object.OpL2i, object.OpL2f, object.OpL2d,
		object.OpF2i, object.OpF2l, object.OpF2d, object.OpD2i, object.OpD2l, object.OpD2f:
		return doConvert(frame, instr.Op)

	case object.OpLcmp, object.OpFcmpl, object.OpFcmpg, object.OpDcmpl, object.OpDcmpg:
		return doCompare(frame, instr.Op)

	case object.OpGoto, object.OpIfeq, object.OpIfne, object.OpIflt, object.OpIfge, object.OpIfgt, object.OpIfle,
		object.OpIfIcmpeq, object.OpIfIcmpne, object.OpIfIcmplt, object.OpIfIcmpge, object.OpIfIcmpgt, object.OpIfIcmple,
		object.OpIfAcmpeq, object.OpIfAcmpne, object.OpIfnull, object.OpIfnonnull:
		return doBranch(frame, instr)

	case object.OpIreturn, object.OpLreturn, object.OpFreturn, object.OpDreturn, object.OpAreturn, object.OpReturn:
		return doReturn(fs, frame, instr.Op)

	case object.OpGetstatic, object.OpPutstatic, object.OpGetfield, object.OpPutfield:
		return doFieldAccess(rt, frame, instr)

	case object.OpInvokevirtual, object.OpInvokespecial, object.OpInvokestatic:
		return doInvoke(rt, fs, frame, instr)

	case object.OpNew:
		return doNew(rt, frame, instr)

	default:
		return doArith(frame, instr.Op)
	}
}

func pushAndAdvance(frame *frames.Frame, v object.Value) error {
	if err := frame.Stack.PushValue(v); err != nil {
		return err
	}
	frame.IncPC()
	return nil
}

func stackOpAndAdvance(frame *frames.Frame, op func() error) error {
	if err := op(); err != nil {
		return err
	}
	frame.IncPC()
	return nil
}
