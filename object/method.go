/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

// Method is a method declaration: its signature, whether it is static,
// and its code.
type Method struct {
	Sig    MethodSig
	Static bool
	Code   Code
}

// NewMethod validates and builds a Method.
//
// Invariants: instance-initializer methods are never static and always
// void-returning; class-initializer methods are always static and always
// void-returning; locals_size must be at least the parameter footprint
// (plus one slot for the receiver on instance methods).
func NewMethod(sig MethodSig, static bool, code Code) (Method, error) {
	if sig.IsInstanceInit() && static {
		return Method{}, &CodeError{Kind: InitIsStatic}
	}
	if sig.IsClassInit() && !static {
		return Method{}, &CodeError{Kind: ClinitIsNonStatic}
	}
	if sig.IsInstanceInit() && !sig.Return.IsVoid() {
		return Method{}, &CodeError{Kind: InitNotVoid}
	}
	if sig.IsClassInit() && !sig.Return.IsVoid() {
		return Method{}, &CodeError{Kind: ClinitNotVoid}
	}

	footprint := sig.Params.Size()
	if !static {
		footprint++
	}
	if code.LocalsSize < footprint {
		return Method{}, &CodeError{Kind: TooFewLocalsEntries}
	}

	return Method{Sig: sig, Static: static, Code: code}, nil
}

func (m *Method) Signature() MethodSig {
	return m.Sig
}

func (m *Method) IsStatic() bool {
	return m.Static
}

func (m *Method) CodeAttr() Code {
	return m.Code
}
