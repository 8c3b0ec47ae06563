/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package frames

import "mvm/object"

// Push appends a Value of any concrete kind; it is a thin alias of
// PushValue kept for call-site symmetry with the typed Pop* helpers below.
func (s *OperandStack) Push(v object.Value) error {
	return s.PushValue(v)
}

func typeMismatch(expected object.ValueType, got object.Value) error {
	return object.NewTypeMismatch(expected, got.Type())
}

// PopInt pops the top value, requiring it to be an IntVal.
func (s *OperandStack) PopInt() (object.IntVal, error) {
	v, err := s.PopValue()
	if err != nil {
		return 0, err
	}
	iv, ok := v.(object.IntVal)
	if !ok {
		return 0, typeMismatch(object.TInt, v)
	}
	return iv, nil
}

// PopLong pops the top value, requiring it to be a LongVal.
func (s *OperandStack) PopLong() (object.LongVal, error) {
	v, err := s.PopValue()
	if err != nil {
		return 0, err
	}
	lv, ok := v.(object.LongVal)
	if !ok {
		return 0, typeMismatch(object.TLong, v)
	}
	return lv, nil
}

// PopFloat pops the top value, requiring it to be a FloatVal.
func (s *OperandStack) PopFloat() (object.FloatVal, error) {
	v, err := s.PopValue()
	if err != nil {
		return 0, err
	}
	fv, ok := v.(object.FloatVal)
	if !ok {
		return 0, typeMismatch(object.TFloat, v)
	}
	return fv, nil
}

// PopDouble pops the top value, requiring it to be a DoubleVal.
func (s *OperandStack) PopDouble() (object.DoubleVal, error) {
	v, err := s.PopValue()
	if err != nil {
		return 0, err
	}
	dv, ok := v.(object.DoubleVal)
	if !ok {
		return 0, typeMismatch(object.TDouble, v)
	}
	return dv, nil
}

// PopReference pops the top value, requiring it to be a Reference.
func (s *OperandStack) PopReference() (object.Reference, error) {
	v, err := s.PopValue()
	if err != nil {
		return object.Reference{}, err
	}
	rv, ok := v.(object.Reference)
	if !ok {
		return object.Reference{}, typeMismatch(object.TReference, v)
	}
	return rv, nil
}

// PeekInt peeks the value `index` from the top, requiring it to be an
// IntVal.
func (s *OperandStack) PeekInt(index int) (object.IntVal, error) {
	v, err := s.PeekValue(index)
	if err != nil {
		return 0, err
	}
	iv, ok := v.(object.IntVal)
	if !ok {
		return 0, typeMismatch(object.TInt, v)
	}
	return iv, nil
}
