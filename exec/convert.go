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

// doConvert executes the twelve numeric conversion opcodes.
func doConvert(frame *frames.Frame, op object.Opcode) error {
	switch op {
	case object.OpI2l:
		v, err := frame.Stack.PopInt()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.LongVal(int64(v)))
	case object.OpI2f:
		v, err := frame.Stack.PopInt()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.FloatVal(float32(v)))
	case object.OpI2d:
		v, err := frame.Stack.PopInt()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.DoubleVal(float64(v)))

	case object.OpL2i:
		v, err := frame.Stack.PopLong()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.IntVal(int32(v)))
	case object.OpL2f:
		v, err := frame.Stack.PopLong()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.FloatVal(float32(v)))
	case object.OpL2d:
		v, err := frame.Stack.PopLong()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.DoubleVal(float64(v)))

	case object.OpF2i:
		v, err := frame.Stack.PopFloat()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.IntVal(toInt32(float64(v))))
	case object.OpF2l:
		v, err := frame.Stack.PopFloat()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.LongVal(toInt64(float64(v))))
	case object.OpF2d:
		v, err := frame.Stack.PopFloat()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.DoubleVal(float64(v)))

	case object.OpD2i:
		v, err := frame.Stack.PopDouble()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.IntVal(toInt32(float64(v))))
	case object.OpD2l:
		v, err := frame.Stack.PopDouble()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.LongVal(toInt64(float64(v))))
	case object.OpD2f:
		v, err := frame.Stack.PopDouble()
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, object.FloatVal(float32(v)))

	default:
		return &Error{Kind: UnknownOpcode, Op: op}
	}
}

// toInt32 implements the narrowing float/double-to-int conversion: NaN
// becomes 0, values outside the int32 range saturate to the nearest bound,
// everything else truncates toward zero.
func toInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(v)
	}
}

// toInt64 is toInt32's int64 counterpart.
func toInt64(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= float64(math.MaxInt64):
		return math.MaxInt64
	case v <= float64(math.MinInt64):
		return math.MinInt64
	default:
		return int64(v)
	}
}
