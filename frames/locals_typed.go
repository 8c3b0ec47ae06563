/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package frames

import "mvm/object"

// Store stores any concrete Value at index, the typed alias of
// StoreValue kept for call-site symmetry with the typed Load* helpers.
func (l *Locals) Store(index int, v object.Value) error {
	return l.StoreValue(index, v)
}

// LoadInt loads the value at index, requiring it to be an IntVal.
func (l *Locals) LoadInt(index int) (object.IntVal, error) {
	v, err := l.LoadValue(index)
	if err != nil {
		return 0, err
	}
	iv, ok := v.(object.IntVal)
	if !ok {
		return 0, typeMismatch(object.TInt, v)
	}
	return iv, nil
}

// LoadLong loads the value at index, requiring it to be a LongVal.
func (l *Locals) LoadLong(index int) (object.LongVal, error) {
	v, err := l.LoadValue(index)
	if err != nil {
		return 0, err
	}
	lv, ok := v.(object.LongVal)
	if !ok {
		return 0, typeMismatch(object.TLong, v)
	}
	return lv, nil
}

// LoadFloat loads the value at index, requiring it to be a FloatVal.
func (l *Locals) LoadFloat(index int) (object.FloatVal, error) {
	v, err := l.LoadValue(index)
	if err != nil {
		return 0, err
	}
	fv, ok := v.(object.FloatVal)
	if !ok {
		return 0, typeMismatch(object.TFloat, v)
	}
	return fv, nil
}

// LoadDouble loads the value at index, requiring it to be a DoubleVal.
func (l *Locals) LoadDouble(index int) (object.DoubleVal, error) {
	v, err := l.LoadValue(index)
	if err != nil {
		return 0, err
	}
	dv, ok := v.(object.DoubleVal)
	if !ok {
		return 0, typeMismatch(object.TDouble, v)
	}
	return dv, nil
}

// LoadReference loads the value at index, requiring it to be a Reference.
func (l *Locals) LoadReference(index int) (object.Reference, error) {
	v, err := l.LoadValue(index)
	if err != nil {
		return object.Reference{}, err
	}
	rv, ok := v.(object.Reference)
	if !ok {
		return object.Reference{}, typeMismatch(object.TReference, v)
	}
	return rv, nil
}
