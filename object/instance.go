/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

import "sync"

// Instance is a shared handle around a class and its instance-field
// storage, initialized to type defaults. Identity is pointer identity:
// two references to the same *Instance denote the same object; ownership
// is shared between the object heap and every Reference value pointing at
// it.
type Instance struct {
	class *Class

	mu     sync.RWMutex
	fields []Value
}

// NewInstance allocates a new Instance of the given class, with instance
// fields initialized to their declared type's default value.
func NewInstance(class *Class) *Instance {
	fields := make([]Value, class.NonStaticFieldsLen())
	offset := 0
	for _, f := range class.Fields() {
		if f.Static {
			continue
		}
		fields[offset] = DefaultValue(f.Sig.Type.ValueType())
		offset++
	}

	return &Instance{class: class, fields: fields}
}

func (i *Instance) Class() *Class {
	return i.class
}

func (i *Instance) Field(offset int) Value {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.fields[offset]
}

func (i *Instance) SetField(offset int, v Value) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.fields[offset] = v
}
