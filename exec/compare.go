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

// doCompare executes LCMP/FCMPL/FCMPG/DCMPL/DCMPG, each pushing an IntVal
// of -1, 0 or 1.
func doCompare(frame *frames.Frame, op object.Opcode) error {
	switch op {
	case object.OpLcmp:
		b, err := frame.Stack.PopLong()
		if err != nil {
			return err
		}
		a, err := frame.Stack.PopLong()
		if err != nil {
			return err
		}
		var result int32
		switch {
		case a < b:
			result = -1
		case a > b:
			result = 1
		}
		return pushAndAdvance(frame, object.IntVal(result))

	case object.OpFcmpl, object.OpFcmpg:
		b, err := frame.Stack.PopFloat()
		if err != nil {
			return err
		}
		a, err := frame.Stack.PopFloat()
		if err != nil {
			return err
		}
		nanResult := int32(-1)
		if op == object.OpFcmpg {
			nanResult = 1
		}
		return pushAndAdvance(frame, object.IntVal(cmpWithNaN(float64(a), float64(b), nanResult)))

	case object.OpDcmpl, object.OpDcmpg:
		b, err := frame.Stack.PopDouble()
		if err != nil {
			return err
		}
		a, err := frame.Stack.PopDouble()
		if err != nil {
			return err
		}
		nanResult := int32(-1)
		if op == object.OpDcmpg {
			nanResult = 1
		}
		return pushAndAdvance(frame, object.IntVal(cmpWithNaN(float64(a), float64(b), nanResult)))

	default:
		return &Error{Kind: UnknownOpcode, Op: op}
	}
}

// cmpWithNaN compares a and b, returning -1/0/1, with nanResult used when
// either operand is NaN -- FCMPG/DCMPG pass +1, FCMPL/DCMPL pass -1, per
// the two rounding directions the JVM specifies for unordered comparisons.
func cmpWithNaN(a, b float64, nanResult int32) int32 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return nanResult
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
