/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

import "fmt"

// Category is the width class of a runtime value: Single occupies one
// locals/stack slot, Double occupies two.
type Category int

const (
	Single Category = 1
	Double Category = 2
)

// Size returns the category-weighted width, 1 or 2.
func (c Category) Size() int {
	return int(c)
}

// ValueType is the tag of a runtime Value.
type ValueType int

const (
	TInt ValueType = iota
	TLong
	TFloat
	TDouble
	TReference
)

func (t ValueType) String() string {
	switch t {
	case TInt:
		return "int"
	case TLong:
		return "long"
	case TFloat:
		return "float"
	case TDouble:
		return "double"
	case TReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Category returns the width class for values of this type.
func (t ValueType) Category() Category {
	switch t {
	case TLong, TDouble:
		return Double
	default:
		return Single
	}
}

// Value is a runtime alternative: IntVal, LongVal, FloatVal, DoubleVal or
// Reference. It is a finite sum type; every case is a distinct Go type
// implementing this interface, rather than a single struct with an unused
// field per variant.
type Value interface {
	Type() ValueType
	String() string
}

// IntVal is a 32-bit signed integer value.
type IntVal int32

func (IntVal) Type() ValueType  { return TInt }
func (v IntVal) String() string { return fmt.Sprintf("%d", int32(v)) }

// LongVal is a 64-bit signed integer value.
type LongVal int64

func (LongVal) Type() ValueType  { return TLong }
func (v LongVal) String() string { return fmt.Sprintf("%d", int64(v)) }

// FloatVal is an IEEE-754 single precision value.
type FloatVal float32

func (FloatVal) Type() ValueType  { return TFloat }
func (v FloatVal) String() string { return fmt.Sprintf("%g", float32(v)) }

// DoubleVal is an IEEE-754 double precision value.
type DoubleVal float64

func (DoubleVal) Type() ValueType  { return TDouble }
func (v DoubleVal) String() string { return fmt.Sprintf("%g", float64(v)) }

// Reference is either null or a shared handle to an Instance. Identity
// equality between two non-null references is pointer equality of the
// Instance; null equals only null.
type Reference struct {
	Instance *Instance
}

func (Reference) Type() ValueType { return TReference }

func (r Reference) String() string {
	if r.Instance == nil {
		return "null"
	}
	return fmt.Sprintf("ref(%s@%p)", r.Instance.Class().Name(), r.Instance)
}

// Null returns the null reference value.
func Null() Reference {
	return Reference{}
}

// IsNull reports whether this reference is the null reference.
func (r Reference) IsNull() bool {
	return r.Instance == nil
}

// Equal implements reference identity equality: two references are equal
// iff both are null, or both point to the same Instance.
func (r Reference) Equal(other Reference) bool {
	return r.Instance == other.Instance
}

// DefaultValue returns the zero-value for a given type tag: numeric zero
// for numeric types, null for references.
func DefaultValue(t ValueType) Value {
	switch t {
	case TInt:
		return IntVal(0)
	case TLong:
		return LongVal(0)
	case TFloat:
		return FloatVal(0)
	case TDouble:
		return DoubleVal(0)
	case TReference:
		return Null()
	default:
		panic("unreachable value type")
	}
}
