/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package frames

import (
	"fmt"
	"sync"

	"mvm/object"
)

// MaxStack is the fixed operand-stack capacity of every frame.
const MaxStack = 255

// FrameError covers frame-creation failures: an incoming argument on the
// caller's stack doesn't match the declared parameter type.
type FrameError struct {
	Expected object.TypeDesc
	Got      object.ValueType
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("incompatible argument type: expected %s, got %s", e.Expected, e.Got)
}

// Frame is a per-call activation record: the method it runs, its operand
// stack, its locals, and a program counter. It is created on call and
// discarded on return; it is uniquely owned by the Frame Stack that holds
// it.
type Frame struct {
	Class  *object.Class
	Method *object.Method
	Stack  *OperandStack
	Locals *Locals

	mu sync.RWMutex
	pc int
}

// NewFrame creates a Frame in Entry mode: empty stack, every local
// undefined, pc = 0. Used to start a thread at a static void zero-parameter method.
func NewFrame(class *object.Class, method *object.Method) *Frame {
	return &Frame{
		Class:  class,
		Method: method,
		Stack:  NewOperandStack(MaxStack),
		Locals: NewLocals(method.CodeAttr().LocalsSize),
	}
}

// NewFrameFromCall creates a Frame in Call mode: its locals are populated
// by popping arguments off the caller's stack, rightmost argument consumed
// first. For each parameter type in reverse order, the caller's top Value
// is type-checked against the parameter TypeDesc (IncompatibleArgumentType
// on mismatch, leaving the value on the caller's stack), popped, and
// stored at that parameter's local index; indices are laid out in
// declaration order, each advancing by the parameter's category size. If
// the callee is non-static, index 0 is reserved for the receiver, popped
// last as a Reference.
func NewFrameFromCall(class *object.Class, method *object.Method, callerStack *OperandStack) (*Frame, error) {
	locals := NewLocals(method.CodeAttr().LocalsSize)

	params := method.Signature().Params.Types
	base := 0
	if !method.IsStatic() {
		base = 1
	}

	// Precompute each parameter's local index in declaration order, so
	// that popping the caller's stack back-to-front (rightmost argument
	// first) still lands every value at the index its declared position
	// implies -- locals[0..k] ends up holding the argument vector in the
	// same order the caller pushed it, not reversed.
	offsets := make([]int, len(params))
	offset := base
	for i, p := range params {
		offsets[i] = offset
		offset += p.ValueType().Category().Size()
	}

	for i := len(params) - 1; i >= 0; i-- {
		typeDesc := params[i]

		top, err := callerStack.PeekValue(0)
		if err != nil {
			return nil, err
		}
		if !typeDesc.IsAssignableWith(top) {
			return nil, &FrameError{Expected: typeDesc, Got: top.Type()}
		}

		value, err := callerStack.PopValue()
		if err != nil {
			return nil, err
		}
		if err := locals.StoreValue(offsets[i], value); err != nil {
			return nil, err
		}
	}

	if !method.IsStatic() {
		this, err := callerStack.PopReference()
		if err != nil {
			return nil, err
		}
		if err := locals.StoreValue(0, this); err != nil {
			return nil, err
		}
	}

	return &Frame{
		Class:  class,
		Method: method,
		Stack:  NewOperandStack(MaxStack),
		Locals: locals,
	}, nil
}

// PC returns the current program counter.
func (f *Frame) PC() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pc
}

// IncPC advances the program counter by one instruction.
func (f *Frame) IncPC() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pc++
}

// OffsetPC adds a signed displacement, in instructions, to the program
// counter. Branches address instructions, not bytes: the whole
// instruction is the origin.
func (f *Frame) OffsetPC(delta int16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pc += int(delta)
}
