/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

// Package exec implements the bytecode dispatcher: one Step advances a
// thread's current frame by exactly one instruction, mutating its operand
// stack, locals and program counter, and pushing or popping frames for
// invocation and return.
package exec

import (
	"fmt"

	"mvm/object"
)

// ErrorKind enumerates the dispatch-level failure modes that don't already
// have a home in object, frames or classloader error types.
type ErrorKind int

const (
	// InvalidReturnType is reported when a return opcode's category
	// doesn't match the executing method's declared return type (e.g. an
	// IRETURN in a method declared to return void or a long).
	InvalidReturnType ErrorKind = iota
	// InvalidReturnReference is reported by ARETURN when the value on
	// top of the stack isn't assignable to the method's declared
	// reference return type.
	InvalidReturnReference
	// UnknownOpcode is reported when an instruction reaches a handler
	// that has no case for it.
	UnknownOpcode
)

// Error reports a dispatch failure tied to the opcode being executed.
type Error struct {
	Kind ErrorKind
	Op   object.Opcode
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidReturnType:
		return fmt.Sprintf("opcode %d: return type does not match method signature", e.Op)
	case InvalidReturnReference:
		return fmt.Sprintf("opcode %d: returned reference is not assignable to the declared return type", e.Op)
	case UnknownOpcode:
		return fmt.Sprintf("unknown opcode %d", e.Op)
	default:
		return "dispatch error"
	}
}
