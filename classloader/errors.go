/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

// Package classloader turns the textual .mvm class-file format into an
// *object.Class, and resolves class names against an ordered list of
// root directories on disk.
package classloader

import "fmt"

// ParseErrorKind enumerates every distinct grammar failure the parser can
// report, each carrying the line on which it was found.
type ParseErrorKind int

const (
	UnknownEntry ParseErrorKind = iota
	UnknownInstruction
	UnexpectedEndOfInput
	UnexpectedEndOfLine
	InvalidFieldDefinition
	InvalidMethodDefinition
	InvalidInstructionDefinition
	InvalidParamsDescriptor
	EmptyTypeDescriptor
	InvalidTypeDescriptor
	InvalidName
	InvalidNumber
)

// ParseError reports a line number and a descriptive kind, per §4.5.
type ParseError struct {
	Kind ParseErrorKind
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("on line %d: %s", e.Line, e.describe())
}

func (e *ParseError) describe() string {
	switch e.Kind {
	case UnknownEntry:
		return fmt.Sprintf("unknown entry: %q", e.Text)
	case UnknownInstruction:
		return fmt.Sprintf("unknown instruction: %q", e.Text)
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case UnexpectedEndOfLine:
		return "unexpected end of line"
	case InvalidFieldDefinition:
		return fmt.Sprintf("invalid field definition: %q", e.Text)
	case InvalidMethodDefinition:
		return fmt.Sprintf("invalid method definition: %q", e.Text)
	case InvalidInstructionDefinition:
		return fmt.Sprintf("invalid instruction definition: %q", e.Text)
	case InvalidParamsDescriptor:
		return fmt.Sprintf("invalid method params descriptor: %q", e.Text)
	case EmptyTypeDescriptor:
		return "type descriptor is empty"
	case InvalidTypeDescriptor:
		return fmt.Sprintf("invalid type descriptor: %q", e.Text)
	case InvalidName:
		return fmt.Sprintf("invalid name: %q", e.Text)
	case InvalidNumber:
		return fmt.Sprintf("invalid number: %q", e.Text)
	default:
		return "parse error"
	}
}

// ClassLoadErrorKind enumerates class-resolution failures above the parser.
type ClassLoadErrorKind int

const (
	ClassNotFound ClassLoadErrorKind = iota
	WrongName
	IOError
	ParseFailure
	ConstructFailure
)

// ClassLoadError wraps a resolution failure for a particular class name.
type ClassLoadError struct {
	Kind  ClassLoadErrorKind
	Name  string
	Found string // for WrongName: the name actually found in the file
	Err   error  // wrapped cause, for IOError/ParseFailure/ConstructFailure
}

func (e *ClassLoadError) Error() string {
	switch e.Kind {
	case ClassNotFound:
		return fmt.Sprintf("class not found: %s", e.Name)
	case WrongName:
		return fmt.Sprintf("wrong name: expected %s, file declares %s", e.Name, e.Found)
	case IOError:
		return fmt.Sprintf("error loading class %s: %v", e.Name, e.Err)
	case ParseFailure:
		return fmt.Sprintf("error parsing class %s: %v", e.Name, e.Err)
	case ConstructFailure:
		return fmt.Sprintf("error constructing class %s: %v", e.Name, e.Err)
	default:
		return fmt.Sprintf("class load error: %s", e.Name)
	}
}

func (e *ClassLoadError) Unwrap() error {
	return e.Err
}
