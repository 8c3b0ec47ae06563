/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

import "sync"

// fieldEntry pairs a field declaration with its precomputed offset within
// its partition (static or instance).
type fieldEntry struct {
	offset int
	field  Field
}

// Class is the shared, immutable-shape representation of a loaded class:
// its name, its ordered field and method lists, and its static-field
// storage. It lives for the process lifetime of the VM and is shared by
// every handle to it (callers hold *Class).
type Class struct {
	name               string
	fields             []fieldEntry
	methods            []*Method
	nonStaticFieldsLen int

	mu           sync.RWMutex
	staticValues []Value
}

// NewClass builds a Class from its name, fields and methods.
//
// Returns a ClassError(DuplicateField) if two fields share a signature, or
// ClassError(DuplicateMethod) if two methods share a signature.
func NewClass(name string, fields []Field, methods []Method) (*Class, error) {
	entries := make([]fieldEntry, 0, len(fields))
	present := make(map[FieldSig]struct{}, len(fields))
	staticLen, nonStaticLen := 0, 0

	for _, f := range fields {
		if _, ok := present[f.Sig]; ok {
			return nil, errDuplicateField(f.Sig)
		}
		present[f.Sig] = struct{}{}

		if f.Static {
			entries = append(entries, fieldEntry{offset: staticLen, field: f})
			staticLen++
		} else {
			entries = append(entries, fieldEntry{offset: nonStaticLen, field: f})
			nonStaticLen++
		}
	}

	staticValues := make([]Value, staticLen)
	for _, e := range entries {
		if e.field.Static {
			staticValues[e.offset] = DefaultValue(e.field.Sig.Type.ValueType())
		}
	}

	methodPtrs := make([]*Method, 0, len(methods))
	for i := range methods {
		m := methods[i]
		for _, existing := range methodPtrs {
			if existing.Sig.Equal(m.Sig) {
				return nil, errDuplicateMethod(m.Sig)
			}
		}
		methodPtrs = append(methodPtrs, &m)
	}

	return &Class{
		name:               name,
		fields:             entries,
		methods:            methodPtrs,
		nonStaticFieldsLen: nonStaticLen,
		staticValues:       staticValues,
	}, nil
}

func (c *Class) Name() string {
	return c.name
}

// NonStaticFieldsLen is the number of instance fields, i.e. the length of
// the per-Instance field storage this class allocates.
func (c *Class) NonStaticFieldsLen() int {
	return c.nonStaticFieldsLen
}

// Fields and methods.

func (c *Class) Fields() []Field {
	out := make([]Field, len(c.fields))
	for i, e := range c.fields {
		out[i] = e.field
	}
	return out
}

func (c *Class) Methods() []*Method {
	out := make([]*Method, len(c.methods))
	copy(out, c.methods)
	return out
}

func (c *Class) fieldEntryBySig(sig FieldSig) (*fieldEntry, error) {
	for i := range c.fields {
		if c.fields[i].field.Sig.Equal(sig) {
			return &c.fields[i], nil
		}
	}
	return nil, errNoSuchField(sig)
}

func (c *Class) StaticFieldEntry(sig FieldSig) (*fieldEntry, error) {
	e, err := c.fieldEntryBySig(sig)
	if err != nil {
		return nil, err
	}
	if !e.field.Static {
		return nil, errNoSuchField(sig)
	}
	return e, nil
}

func (c *Class) InstanceFieldEntry(sig FieldSig) (*fieldEntry, error) {
	e, err := c.fieldEntryBySig(sig)
	if err != nil {
		return nil, err
	}
	if e.field.Static {
		return nil, errNoSuchField(sig)
	}
	return e, nil
}

// StaticMethod finds a static method of the given signature.
func (c *Class) StaticMethod(sig MethodSig) (*Method, error) {
	for _, m := range c.methods {
		if m.Sig.Equal(sig) {
			if !m.Static {
				return nil, errNoSuchMethod(sig)
			}
			return m, nil
		}
	}
	return nil, errNoSuchMethod(sig)
}

// InstanceMethod finds an instance method of the given signature.
func (c *Class) InstanceMethod(sig MethodSig) (*Method, error) {
	for _, m := range c.methods {
		if m.Sig.Equal(sig) {
			if m.Static {
				return nil, errNoSuchMethod(sig)
			}
			return m, nil
		}
	}
	return nil, errNoSuchMethod(sig)
}

// Field values.

// StaticFieldValue reads a static field's current value.
func (c *Class) StaticFieldValue(sig FieldSig) (Value, error) {
	e, err := c.StaticFieldEntry(sig)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.staticValues[e.offset], nil
}

// SetStaticFieldValue writes a static field, checking type assignability.
func (c *Class) SetStaticFieldValue(sig FieldSig, v Value) error {
	e, err := c.StaticFieldEntry(sig)
	if err != nil {
		return err
	}
	if !sig.Type.IsAssignableWith(v) {
		return errFieldValueTypeMismatch(sig, v)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staticValues[e.offset] = v
	return nil
}

// InstanceFieldValue reads an instance field's current value from the
// given instance, which must be an instance of this exact class.
func (c *Class) InstanceFieldValue(inst *Instance, sig FieldSig) (Value, error) {
	if inst.Class().name != c.name {
		return nil, errNotInstanceOf(inst.Class().name, c.name)
	}
	e, err := c.InstanceFieldEntry(sig)
	if err != nil {
		return nil, err
	}
	return inst.Field(e.offset), nil
}

// SetInstanceFieldValue writes an instance field on the given instance,
// checking class identity and type assignability.
func (c *Class) SetInstanceFieldValue(inst *Instance, sig FieldSig, v Value) error {
	if inst.Class().name != c.name {
		return errNotInstanceOf(inst.Class().name, c.name)
	}
	e, err := c.InstanceFieldEntry(sig)
	if err != nil {
		return err
	}
	if !sig.Type.IsAssignableWith(v) {
		return errFieldValueTypeMismatch(sig, v)
	}
	inst.SetField(e.offset, v)
	return nil
}
