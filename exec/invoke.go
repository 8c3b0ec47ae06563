/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package exec

import (
	"mvm/frames"
	"mvm/object"
)

// doFieldAccess executes GETSTATIC/PUTSTATIC/GETFIELD/PUTFIELD.
func doFieldAccess(rt Runtime, frame *frames.Frame, instr object.Instruction) error {
	class, err := rt.ResolveClass(instr.ClassName)
	if err != nil {
		return err
	}
	sig := object.NewFieldSig(instr.FieldType, instr.FieldName)

	switch instr.Op {
	case object.OpGetstatic:
		v, err := class.StaticFieldValue(sig)
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, v)

	case object.OpPutstatic:
		v, err := frame.Stack.PopValue()
		if err != nil {
			return err
		}
		if err := class.SetStaticFieldValue(sig, v); err != nil {
			return err
		}
		frame.IncPC()
		return nil

	case object.OpGetfield:
		ref, err := frame.Stack.PopReference()
		if err != nil {
			return err
		}
		if ref.IsNull() {
			return object.ErrNullPointer
		}
		v, err := class.InstanceFieldValue(ref.Instance, sig)
		if err != nil {
			return err
		}
		return pushAndAdvance(frame, v)

	case object.OpPutfield:
		v, err := frame.Stack.PopValue()
		if err != nil {
			return err
		}
		ref, err := frame.Stack.PopReference()
		if err != nil {
			return err
		}
		if ref.IsNull() {
			return object.ErrNullPointer
		}
		if err := class.SetInstanceFieldValue(ref.Instance, sig, v); err != nil {
			return err
		}
		frame.IncPC()
		return nil

	default:
		return &Error{Kind: UnknownOpcode, Op: instr.Op}
	}
}

// doInvoke executes INVOKEVIRTUAL/INVOKESPECIAL/INVOKESTATIC. There is no
// inheritance in this object model, so INVOKESPECIAL resolves and
// dispatches identically to INVOKEVIRTUAL.
func doInvoke(rt Runtime, fs *frames.FrameStack, frame *frames.Frame, instr object.Instruction) error {
	class, err := rt.ResolveClass(instr.ClassName)
	if err != nil {
		return err
	}
	sig := object.NewMethodSig(instr.Return, instr.MethodName, instr.Params)

	var method *object.Method
	if instr.Op == object.OpInvokestatic {
		method, err = class.StaticMethod(sig)
	} else {
		method, err = class.InstanceMethod(sig)
	}
	if err != nil {
		return err
	}

	newFrame, err := frames.NewFrameFromCall(class, method, frame.Stack)
	if err != nil {
		return err
	}

	if instr.Op != object.OpInvokestatic {
		receiver, err := newFrame.Locals.LoadReference(0)
		if err != nil {
			return err
		}
		if receiver.IsNull() {
			return object.ErrNullPointer
		}
	}

	frame.IncPC()
	fs.Push(newFrame)
	return nil
}

// doNew executes NEW: allocate a fresh instance and push a reference to it.
func doNew(rt Runtime, frame *frames.Frame, instr object.Instruction) error {
	class, err := rt.ResolveClass(instr.ClassName)
	if err != nil {
		return err
	}
	inst := rt.NewInstance(class)
	return pushAndAdvance(frame, object.Reference{Instance: inst})
}
