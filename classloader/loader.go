/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package classloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mvm/log"
	"mvm/object"
)

// ClassLoader resolves a dotted class name against an ordered list of root
// directories, reading "<root>/<name with '.' replaced by '/'>.mvm" from
// the first root that has it.
type ClassLoader struct {
	Roots []string
}

// NewClassLoader builds a ClassLoader searching roots in order.
func NewClassLoader(roots []string) *ClassLoader {
	return &ClassLoader{Roots: roots}
}

func classRelPath(name string) string {
	return filepath.Join(strings.Split(name, ".")...) + ".mvm"
}

// Load finds, parses and validates the named class.
//
// Returns a *ClassLoadError: ClassNotFound if no root has the file,
// IOError if the file exists but cannot be read, ParseFailure if the
// contents don't match the grammar, WrongName if the file parses but
// declares a different class name, or ConstructFailure if the parsed
// fields/methods fail Class invariants.
func (l *ClassLoader) Load(name string) (*object.Class, error) {
	_ = log.Log(fmt.Sprintf("loading class %s", name), log.FINEST)
	start := time.Now()
	rel := classRelPath(name)

	var lastErr error
	for _, root := range l.Roots {
		path := filepath.Join(root, rel)
		contents, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			_ = log.Log(fmt.Sprintf("reading %s: %v", path, err), log.WARNING)
			lastErr = &ClassLoadError{Kind: IOError, Name: name, Err: err}
			continue
		}

		class, err := NewParser(string(contents)).Parse()
		if err != nil {
			kind := ParseFailure
			switch err.(type) {
			case *object.ClassError, *object.CodeError:
				kind = ConstructFailure
			}
			_ = log.Log(fmt.Sprintf("%s failed to load from %s: %v", name, path, err), log.SEVERE)
			return nil, &ClassLoadError{Kind: kind, Name: name, Err: err}
		}
		if class.Name() != name {
			_ = log.Log(fmt.Sprintf("%s resolved to %s instead", path, class.Name()), log.SEVERE)
			return nil, &ClassLoadError{Kind: WrongName, Name: name, Found: class.Name()}
		}
		_ = log.LogElapsed(fmt.Sprintf("loaded %s from %s", name, path), start, log.INFO)
		return class, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &ClassLoadError{Kind: ClassNotFound, Name: name}
}
