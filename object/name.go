/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package object

import (
	"fmt"
	"strings"
)

// NameKind distinguishes the three disjoint name namespaces.
type NameKind int

const (
	ClassNameKind NameKind = iota
	MethodNameKind
	FieldNameKind
)

// Reserved method names.
const (
	InstanceInit = "<init>"
	ClassInit    = "<clinit>"
)

// NameError reports a name that fails the grammar for its kind.
type NameError struct {
	Kind NameKind
	Name string
}

func (e *NameError) Error() string {
	var kind string
	switch e.Kind {
	case ClassNameKind:
		kind = "class"
	case MethodNameKind:
		kind = "method"
	case FieldNameKind:
		kind = "field"
	}
	return fmt.Sprintf("invalid %s name: %q", kind, e.Name)
}

const forbiddenMemberChars = ".;[/<>"

// ValidateClassName checks a class name: non-empty, dotted segments
// allowed.
func ValidateClassName(name string) error {
	if name == "" {
		return &NameError{Kind: ClassNameKind, Name: name}
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return &NameError{Kind: ClassNameKind, Name: name}
		}
	}
	return nil
}

// ValidateMethodName checks a method name: non-empty, forbidding
// `. ; [ /` and `< >` except for the two reserved names <init>/<clinit>.
func ValidateMethodName(name string) error {
	if name == InstanceInit || name == ClassInit {
		return nil
	}
	if name == "" || strings.ContainsAny(name, forbiddenMemberChars) {
		return &NameError{Kind: MethodNameKind, Name: name}
	}
	return nil
}

// ValidateFieldName checks a field name: non-empty, forbidding
// `. ; [ /` and `< >`.
func ValidateFieldName(name string) error {
	if name == "" || strings.ContainsAny(name, forbiddenMemberChars) {
		return &NameError{Kind: FieldNameKind, Name: name}
	}
	return nil
}
