/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

// MaxLocalsSize is the largest legal locals_size for a Code.
const MaxLocalsSize = 255

// Code is a method body: the size of its locals array and a non-empty
// list of instructions.
type Code struct {
	LocalsSize   int
	Instructions []Instruction
}

// NewCode validates and builds a Code. localsSize must not exceed
// MaxLocalsSize and instructions must be non-empty.
func NewCode(localsSize int, instructions []Instruction) (Code, error) {
	if localsSize > MaxLocalsSize {
		return Code{}, &CodeError{Kind: TooBigLocalsSize}
	}
	if len(instructions) == 0 {
		return Code{}, &CodeError{Kind: NoInstructions}
	}
	return Code{LocalsSize: localsSize, Instructions: instructions}, nil
}

// Instruction returns the instruction at pc, or CodeIndexOutOfBounds if
// pc falls outside [0, len).
func (c Code) Instruction(pc int) (Instruction, error) {
	if pc < 0 || pc >= len(c.Instructions) {
		return Instruction{}, &CodeError{Kind: CodeIndexOutOfBounds, Index: pc, Size: len(c.Instructions)}
	}
	return c.Instructions[pc], nil
}

func (c Code) Len() int {
	return len(c.Instructions)
}
