/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

import "fmt"

// FieldSig is the equality key distinguishing fields within a class.
type FieldSig struct {
	Type TypeDesc
	Name string
}

func NewFieldSig(t TypeDesc, name string) FieldSig {
	return FieldSig{Type: t, Name: name}
}

func (s FieldSig) String() string {
	return fmt.Sprintf("%s %s", s.Type, s.Name)
}

func (s FieldSig) Equal(other FieldSig) bool {
	return s.Type == other.Type && s.Name == other.Name
}

// MethodSig is the equality key distinguishing methods within a class. It
// includes the return type, unlike Java's overload-resolution signature.
type MethodSig struct {
	Return ReturnDesc
	Name   string
	Params ParamsDesc
}

func NewMethodSig(ret ReturnDesc, name string, params ParamsDesc) MethodSig {
	return MethodSig{Return: ret, Name: name, Params: params}
}

func (s MethodSig) String() string {
	return fmt.Sprintf("%s %s(%s)", s.Return, s.Name, s.Params)
}

func (s MethodSig) Equal(other MethodSig) bool {
	return s.Return == other.Return && s.Name == other.Name && s.Params.Equal(other.Params)
}

// IsInstanceInit reports whether this signature names the instance
// initializer.
func (s MethodSig) IsInstanceInit() bool {
	return s.Name == InstanceInit
}

// IsClassInit reports whether this signature names the class initializer.
func (s MethodSig) IsClassInit() bool {
	return s.Name == ClassInit
}
