/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package exec

import (
	"mvm/frames"
	"mvm/object"
)

// doBranch executes GOTO and every IF* family opcode: pop the operand(s),
// evaluate the condition, and either offset the program counter by the
// instruction's displacement (taken) or simply advance it (not taken).
func doBranch(frame *frames.Frame, instr object.Instruction) error {
	taken, err := branchTaken(frame, instr.Op)
	if err != nil {
		return err
	}
	if taken {
		frame.OffsetPC(instr.Offset)
	} else {
		frame.IncPC()
	}
	return nil
}

func branchTaken(frame *frames.Frame, op object.Opcode) (bool, error) {
	switch op {
	case object.OpGoto:
		return true, nil

	case object.OpIfeq, object.OpIfne, object.OpIflt, object.OpIfge, object.OpIfgt, object.OpIfle:
		v, err := frame.Stack.PopInt()
		if err != nil {
			return false, err
		}
		return intCond(op, int32(v), 0), nil

	case object.OpIfIcmpeq, object.OpIfIcmpne, object.OpIfIcmplt, object.OpIfIcmpge, object.OpIfIcmpgt, object.OpIfIcmple:
		b, err := frame.Stack.PopInt()
		if err != nil {
			return false, err
		}
		a, err := frame.Stack.PopInt()
		if err != nil {
			return false, err
		}
		return intCmpCond(op, int32(a), int32(b)), nil

	case object.OpIfAcmpeq, object.OpIfAcmpne:
		b, err := frame.Stack.PopReference()
		if err != nil {
			return false, err
		}
		a, err := frame.Stack.PopReference()
		if err != nil {
			return false, err
		}
		eq := a.Equal(b)
		if op == object.OpIfAcmpne {
			return !eq, nil
		}
		return eq, nil

	case object.OpIfnull, object.OpIfnonnull:
		v, err := frame.Stack.PopReference()
		if err != nil {
			return false, err
		}
		if op == object.OpIfnull {
			return v.IsNull(), nil
		}
		return !v.IsNull(), nil

	default:
		return false, &Error{Kind: UnknownOpcode, Op: op}
	}
}

// intCond evaluates an IFEQ-family condition against a fixed 0.
func intCond(op object.Opcode, a, zero int32) bool {
	switch op {
	case object.OpIfeq:
		return a == zero
	case object.OpIfne:
		return a != zero
	case object.OpIflt:
		return a < zero
	case object.OpIfge:
		return a >= zero
	case object.OpIfgt:
		return a > zero
	case object.OpIfle:
		return a <= zero
	default:
		return false
	}
}

// intCmpCond evaluates an IF_ICMP-family condition between two operands.
func intCmpCond(op object.Opcode, a, b int32) bool {
	switch op {
	case object.OpIfIcmpeq:
		return a == b
	case object.OpIfIcmpne:
		return a != b
	case object.OpIfIcmplt:
		return a < b
	case object.OpIfIcmpge:
		return a >= b
	case object.OpIfIcmpgt:
		return a > b
	case object.OpIfIcmple:
		return a <= b
	default:
		return false
	}
}

// doReturn executes the six RETURN-family opcodes: it validates the
// opcode's category against the executing method's declared return type,
// pops the return value (if any) off the current frame, discards the
// frame, and passes the value to the caller's operand stack.
func doReturn(fs *frames.FrameStack, frame *frames.Frame, op object.Opcode) error {
	ret := frame.Method.Signature().Return

	if op == object.OpReturn {
		if !ret.IsVoid() {
			return &Error{Kind: InvalidReturnType, Op: op}
		}
		fs.Pop()
		return nil
	}

	if ret.IsVoid() {
		return &Error{Kind: InvalidReturnType, Op: op}
	}

	var value object.Value
	var err error

	switch op {
	case object.OpIreturn:
		if ret.Type.ValueType() != object.TInt {
			return &Error{Kind: InvalidReturnType, Op: op}
		}
		value, err = frame.Stack.PopInt()
	case object.OpLreturn:
		if ret.Type.ValueType() != object.TLong {
			return &Error{Kind: InvalidReturnType, Op: op}
		}
		value, err = frame.Stack.PopLong()
	case object.OpFreturn:
		if ret.Type.ValueType() != object.TFloat {
			return &Error{Kind: InvalidReturnType, Op: op}
		}
		value, err = frame.Stack.PopFloat()
	case object.OpDreturn:
		if ret.Type.ValueType() != object.TDouble {
			return &Error{Kind: InvalidReturnType, Op: op}
		}
		value, err = frame.Stack.PopDouble()
	case object.OpAreturn:
		if ret.Type.ValueType() != object.TReference {
			return &Error{Kind: InvalidReturnType, Op: op}
		}
		var refVal object.Reference
		refVal, err = frame.Stack.PopReference()
		if err == nil && !ret.Type.IsAssignableWith(refVal) {
			return &Error{Kind: InvalidReturnReference, Op: op}
		}
		value = refVal
	default:
		return &Error{Kind: UnknownOpcode, Op: op}
	}
	if err != nil {
		return err
	}

	fs.Pop()
	if caller := fs.Current(); caller != nil {
		return caller.Stack.PushValue(value)
	}
	return nil
}
