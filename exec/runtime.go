/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package exec

import "mvm/object"

// Runtime is the slice of the VM the dispatcher needs to execute NEW,
// GETSTATIC/PUTSTATIC/GETFIELD/PUTFIELD and the INVOKE* family: resolving
// a class by name and allocating an instance of one. Declaring it here
// rather than importing the jvm package lets exec stay a leaf package;
// jvm implements this interface and imports exec to drive its thread.
type Runtime interface {
	ResolveClass(name string) (*object.Class, error)
	NewInstance(class *object.Class) *object.Instance
}
