/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package exec

import (
	"math"

	"mvm/frames"
	"mvm/object"
)

// doArith executes every binary/unary arithmetic, shift and bitwise
// opcode. Shift amounts are popped from the top of the stack before the
// value being shifted, per the JVM's operand order, and masked to 5 bits
// for the int family and 6 bits for the long family.
func doArith(frame *frames.Frame, op object.Opcode) error {
	switch op {
	case object.OpIadd:
		return intBinOp(frame, func(a, b int32) (int32, error) { return a + b, nil })
	case object.OpIsub:
		return intBinOp(frame, func(a, b int32) (int32, error) { return a - b, nil })
	case object.OpImul:
		return intBinOp(frame, func(a, b int32) (int32, error) { return a * b, nil })
	case object.OpIdiv:
		return intBinOp(frame, func(a, b int32) (int32, error) {
			if b == 0 {
				return 0, object.ErrDivisionByZero
			}
			return a / b, nil
		})
	case object.OpIrem:
		return intBinOp(frame, func(a, b int32) (int32, error) {
			if b == 0 {
				return 0, object.ErrDivisionByZero
			}
			return a % b, nil
		})
	case object.OpIneg:
		return intUnOp(frame, func(a int32) int32 { return -a })

	case object.OpLadd:
		return longBinOp(frame, func(a, b int64) (int64, error) { return a + b, nil })
	case object.OpLsub:
		return longBinOp(frame, func(a, b int64) (int64, error) { return a - b, nil })
	case object.OpLmul:
		return longBinOp(frame, func(a, b int64) (int64, error) { return a * b, nil })
	case object.OpLdiv:
		return longBinOp(frame, func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, object.ErrDivisionByZero
			}
			return a / b, nil
		})
	case object.OpLrem:
		return longBinOp(frame, func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, object.ErrDivisionByZero
			}
			return a % b, nil
		})
	case object.OpLneg:
		return longUnOp(frame, func(a int64) int64 { return -a })

	case object.OpFadd:
		return floatBinOp(frame, func(a, b float32) float32 { return a + b })
	case object.OpFsub:
		return floatBinOp(frame, func(a, b float32) float32 { return a - b })
	case object.OpFmul:
		return floatBinOp(frame, func(a, b float32) float32 { return a * b })
	case object.OpFdiv:
		return floatBinOp(frame, func(a, b float32) float32 { return a / b })
	case object.OpFrem:
		return floatBinOp(frame, func(a, b float32) float32 {
			return float32(math.Mod(float64(a), float64(b)))
		})
	case object.OpFneg:
		return floatUnOp(frame, func(a float32) float32 { return -a })

	case object.OpDadd:
		return doubleBinOp(frame, func(a, b float64) float64 { return a + b })
	case object.OpDsub:
		return doubleBinOp(frame, func(a, b float64) float64 { return a - b })
	case object.OpDmul:
		return doubleBinOp(frame, func(a, b float64) float64 { return a * b })
	case object.OpDdiv:
		return doubleBinOp(frame, func(a, b float64) float64 { return a / b })
	case object.OpDrem:
		return doubleBinOp(frame, math.Mod)
	case object.OpDneg:
		return doubleUnOp(frame, func(a float64) float64 { return -a })

	case object.OpIshl:
		return intBinOp(frame, func(a, b int32) (int32, error) { return a << (uint32(b) & 0x1f), nil })
	case object.OpIshr:
		return intBinOp(frame, func(a, b int32) (int32, error) { return a >> (uint32(b) & 0x1f), nil })
	case object.OpIushr:
		return intBinOp(frame, func(a, b int32) (int32, error) {
			return int32(uint32(a) >> (uint32(b) & 0x1f)), nil
		})
	case object.OpIand:
		return intBinOp(frame, func(a, b int32) (int32, error) { return a & b, nil })
	case object.OpIor:
		return intBinOp(frame, func(a, b int32) (int32, error) { return a | b, nil })
	case object.OpIxor:
		return intBinOp(frame, func(a, b int32) (int32, error) { return a ^ b, nil })

	case object.OpLshl:
		return longShiftOp(frame, func(a int64, n uint32) int64 { return a << n })
	case object.OpLshr:
		return longShiftOp(frame, func(a int64, n uint32) int64 { return a >> n })
	case object.OpLushr:
		return longShiftOp(frame, func(a int64, n uint32) int64 { return int64(uint64(a) >> n) })
	case object.OpLand:
		return longBinOp(frame, func(a, b int64) (int64, error) { return a & b, nil })
	case object.OpLor:
		return longBinOp(frame, func(a, b int64) (int64, error) { return a | b, nil })
	case object.OpLxor:
		return longBinOp(frame, func(a, b int64) (int64, error) { return a ^ b, nil })

	default:
		return &Error{Kind: UnknownOpcode, Op: op}
	}
}

func intBinOp(frame *frames.Frame, f func(a, b int32) (int32, error)) error {
	b, err := frame.Stack.PopInt()
	if err != nil {
		return err
	}
	a, err := frame.Stack.PopInt()
	if err != nil {
		return err
	}
	res, err := f(int32(a), int32(b))
	if err != nil {
		return err
	}
	return pushAndAdvance(frame, object.IntVal(res))
}

func intUnOp(frame *frames.Frame, f func(a int32) int32) error {
	a, err := frame.Stack.PopInt()
	if err != nil {
		return err
	}
	return pushAndAdvance(frame, object.IntVal(f(int32(a))))
}

func longBinOp(frame *frames.Frame, f func(a, b int64) (int64, error)) error {
	b, err := frame.Stack.PopLong()
	if err != nil {
		return err
	}
	a, err := frame.Stack.PopLong()
	if err != nil {
		return err
	}
	res, err := f(int64(a), int64(b))
	if err != nil {
		return err
	}
	return pushAndAdvance(frame, object.LongVal(res))
}

func longUnOp(frame *frames.Frame, f func(a int64) int64) error {
	a, err := frame.Stack.PopLong()
	if err != nil {
		return err
	}
	return pushAndAdvance(frame, object.LongVal(f(int64(a))))
}

// longShiftOp handles LSHL/LSHR/LUSHR: the shift amount is an int popped
// from the top of the stack and masked to 6 bits, the value shifted is a
// long.
func longShiftOp(frame *frames.Frame, f func(a int64, n uint32) int64) error {
	n, err := frame.Stack.PopInt()
	if err != nil {
		return err
	}
	a, err := frame.Stack.PopLong()
	if err != nil {
		return err
	}
	return pushAndAdvance(frame, object.LongVal(f(int64(a), uint32(n)&0x3f)))
}

func floatBinOp(frame *frames.Frame, f func(a, b float32) float32) error {
	b, err := frame.Stack.PopFloat()
	if err != nil {
		return err
	}
	a, err := frame.Stack.PopFloat()
	if err != nil {
		return err
	}
	return pushAndAdvance(frame, object.FloatVal(f(float32(a), float32(b))))
}

func floatUnOp(frame *frames.Frame, f func(a float32) float32) error {
	a, err := frame.Stack.PopFloat()
	if err != nil {
		return err
	}
	return pushAndAdvance(frame, object.FloatVal(f(float32(a))))
}

func doubleBinOp(frame *frames.Frame, f func(a, b float64) float64) error {
	b, err := frame.Stack.PopDouble()
	if err != nil {
		return err
	}
	a, err := frame.Stack.PopDouble()
	if err != nil {
		return err
	}
	return pushAndAdvance(frame, object.DoubleVal(f(float64(a), float64(b))))
}

func doubleUnOp(frame *frames.Frame, f func(a float64) float64) error {
	a, err := frame.Stack.PopDouble()
	if err != nil {
		return err
	}
	return pushAndAdvance(frame, object.DoubleVal(f(float64(a))))
}
