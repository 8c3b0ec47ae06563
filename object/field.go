/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

// Field is a field declaration: its signature and whether it is static.
type Field struct {
	Sig    FieldSig
	Static bool
}

func NewField(sig FieldSig, static bool) Field {
	return Field{Sig: sig, Static: static}
}

func (f Field) Signature() FieldSig {
	return f.Sig
}

func (f Field) IsStatic() bool {
	return f.Static
}
