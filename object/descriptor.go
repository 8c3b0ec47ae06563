/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

import (
	"fmt"
	"strings"
)

// TypeDescKind is the tag of a TypeDesc.
type TypeDescKind int

const (
	TDByte TypeDescKind = iota
	TDShort
	TDInt
	TDLong
	TDFloat
	TDDouble
	TDReference
)

// TypeDesc is a tagged variant over the primitive set plus a reference to
// a named class.
type TypeDesc struct {
	Kind      TypeDescKind
	ClassName string // only meaningful when Kind == TDReference
}

func (t TypeDesc) String() string {
	switch t.Kind {
	case TDByte:
		return "byte"
	case TDShort:
		return "short"
	case TDInt:
		return "int"
	case TDLong:
		return "long"
	case TDFloat:
		return "float"
	case TDDouble:
		return "double"
	case TDReference:
		return t.ClassName
	default:
		return "?"
	}
}

// ValueType maps a TypeDesc to the runtime ValueType that carries it.
// Byte and short widen to int at runtime, same as the JVM.
func (t TypeDesc) ValueType() ValueType {
	switch t.Kind {
	case TDByte, TDShort, TDInt:
		return TInt
	case TDLong:
		return TLong
	case TDFloat:
		return TFloat
	case TDDouble:
		return TDouble
	case TDReference:
		return TReference
	default:
		panic("unreachable type desc kind")
	}
}

// IsAssignableWith reports whether v can be stored where this TypeDesc is
// declared: numeric kinds require an exact ValueType match; a reference
// type accepts null unconditionally, and a non-null reference only if the
// instance's class name equals the declared class name (no inheritance
// in this object model).
func (t TypeDesc) IsAssignableWith(v Value) bool {
	if t.Kind == TDReference {
		ref, ok := v.(Reference)
		if !ok {
			return false
		}
		if ref.IsNull() {
			return true
		}
		return ref.Instance.Class().Name() == t.ClassName
	}
	return v.Type() == t.ValueType()
}

// DefaultValue returns the zero value appropriate for this TypeDesc.
func (t TypeDesc) DefaultValue() Value {
	return DefaultValue(t.ValueType())
}

func newTypeDesc(s string) (TypeDesc, error) {
	switch s {
	case "byte":
		return TypeDesc{Kind: TDByte}, nil
	case "short":
		return TypeDesc{Kind: TDShort}, nil
	case "int":
		return TypeDesc{Kind: TDInt}, nil
	case "long":
		return TypeDesc{Kind: TDLong}, nil
	case "float":
		return TypeDesc{Kind: TDFloat}, nil
	case "double":
		return TypeDesc{Kind: TDDouble}, nil
	default:
		if err := ValidateClassName(s); err != nil {
			return TypeDesc{}, &ParseDescError{Kind: InvalidTypeDescriptor, Text: s}
		}
		return TypeDesc{Kind: TDReference, ClassName: s}, nil
	}
}

// ParseTypeDesc parses the textual form of a TypeDesc as used by the
// class-file grammar (primitive keyword or a class name).
func ParseTypeDesc(s string) (TypeDesc, error) {
	if s == "" {
		return TypeDesc{}, &ParseDescError{Kind: EmptyTypeDescriptor, Text: s}
	}
	return newTypeDesc(s)
}

// ReturnDesc extends TypeDesc with a void alternative.
type ReturnDesc struct {
	Void bool
	Type TypeDesc
}

func VoidReturn() ReturnDesc {
	return ReturnDesc{Void: true}
}

func NonVoidReturn(t TypeDesc) ReturnDesc {
	return ReturnDesc{Type: t}
}

func (r ReturnDesc) IsVoid() bool {
	return r.Void
}

func (r ReturnDesc) String() string {
	if r.Void {
		return "void"
	}
	return r.Type.String()
}

// ParseReturnDesc parses "void" or a TypeDesc.
func ParseReturnDesc(s string) (ReturnDesc, error) {
	if s == "void" {
		return VoidReturn(), nil
	}
	t, err := ParseTypeDesc(s)
	if err != nil {
		return ReturnDesc{}, err
	}
	return NonVoidReturn(t), nil
}

// ParamsDesc is an ordered sequence of TypeDesc.
type ParamsDesc struct {
	Types []TypeDesc
}

func EmptyParams() ParamsDesc {
	return ParamsDesc{}
}

func NewParamsDesc(types []TypeDesc) ParamsDesc {
	return ParamsDesc{Types: types}
}

func (p ParamsDesc) Len() int {
	return len(p.Types)
}

func (p ParamsDesc) IsEmpty() bool {
	return len(p.Types) == 0
}

// Size returns the sum of the category sizes of the parameters -- the
// locals footprint they occupy when laid out consecutively.
func (p ParamsDesc) Size() int {
	size := 0
	for _, t := range p.Types {
		size += t.ValueType().Category().Size()
	}
	return size
}

func (p ParamsDesc) String() string {
	parts := make([]string, len(p.Types))
	for i, t := range p.Types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func (p ParamsDesc) Equal(other ParamsDesc) bool {
	if len(p.Types) != len(other.Types) {
		return false
	}
	for i := range p.Types {
		if p.Types[i] != other.Types[i] {
			return false
		}
	}
	return true
}

// ParseDescErrorKind enumerates the descriptor-parsing failure modes
// surfaced by the class-file parser (package classloader wraps these into
// its own ParseError with a line number).
type ParseDescErrorKind int

const (
	EmptyTypeDescriptor ParseDescErrorKind = iota
	InvalidTypeDescriptor
)

type ParseDescError struct {
	Kind ParseDescErrorKind
	Text string
}

func (e *ParseDescError) Error() string {
	switch e.Kind {
	case EmptyTypeDescriptor:
		return "empty type descriptor"
	default:
		return fmt.Sprintf("invalid type descriptor: %q", e.Text)
	}
}
