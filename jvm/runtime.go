/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

// Package jvm ties the class loader and the bytecode dispatcher together
// into a runnable virtual machine: a class heap, an object heap, and a
// single worker thread that steps or cancels on command.
package jvm

import (
	"sync"

	"mvm/classloader"
	"mvm/frames"
	"mvm/object"
)

// Runtime is the virtual machine: the shared class heap and object heap,
// the class loader that populates the former, and the one thread it can
// run at a time. It implements exec.Runtime so the dispatcher can resolve
// classes and allocate instances without importing this package.
type Runtime struct {
	loader *classloader.ClassLoader

	mu      sync.RWMutex
	classes map[string]*object.Class
	objects []*object.Instance

	threadMu sync.Mutex
	thread   *Thread

	// OnUpdate is called before each instruction is executed, with a
	// snapshot of the current frame stack; the worker then waits for
	// NextStep or Stop. OnEnd is called once when the thread's start
	// method returns normally or the thread is stopped. OnError is called
	// once if a step fails; OnEnd is not also called in that case. All
	// three may be nil.
	OnUpdate func(frames []*frames.Frame)
	OnEnd    func()
	OnError  func(err error)
}

// NewRuntime creates a Runtime that resolves classes against the given
// ordered list of root directories.
func NewRuntime(roots []string) *Runtime {
	return &Runtime{
		loader:  classloader.NewClassLoader(roots),
		classes: make(map[string]*object.Class),
	}
}

// ResolveClass returns the named class, loading and memoizing it on first
// reference.
func (r *Runtime) ResolveClass(name string) (*object.Class, error) {
	r.mu.RLock()
	class, ok := r.classes[name]
	r.mu.RUnlock()
	if ok {
		return class, nil
	}

	class, err := r.loader.Load(name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.classes[name]; ok {
		return existing, nil
	}
	r.classes[name] = class
	return class, nil
}

// NewInstance allocates a new instance of class and records it in the
// object heap for the runtime's read views.
func (r *Runtime) NewInstance(class *object.Class) *object.Instance {
	inst := object.NewInstance(class)
	r.mu.Lock()
	r.objects = append(r.objects, inst)
	r.mu.Unlock()
	return inst
}

// Classes returns a snapshot of every class resolved so far.
func (r *Runtime) Classes() []*object.Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*object.Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	return out
}

// Instances returns a snapshot of every instance allocated so far.
func (r *Runtime) Instances() []*object.Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*object.Instance, len(r.objects))
	copy(out, r.objects)
	return out
}

// Frames returns a snapshot of the running thread's frame stack, or nil
// if no thread has been started.
func (r *Runtime) Frames() []*frames.Frame {
	r.threadMu.Lock()
	t := r.thread
	r.threadMu.Unlock()
	if t == nil {
		return nil
	}
	return t.stack.Snapshot()
}

// Start resolves className, locates its static "void main()" method, and
// spawns a worker thread positioned at its first instruction. It panics
// if a thread has already been started: a Runtime runs one thread for
// its whole lifetime, and a reload means building a fresh Runtime.
func (r *Runtime) Start(className string) error {
	r.threadMu.Lock()
	defer r.threadMu.Unlock()
	if r.thread != nil {
		panic("jvm: runtime already started")
	}

	class, err := r.ResolveClass(className)
	if err != nil {
		return err
	}
	sig := object.NewMethodSig(object.VoidReturn(), "main", object.EmptyParams())
	method, err := class.StaticMethod(sig)
	if err != nil {
		return err
	}

	r.thread = newThread(r, class, method)
	return nil
}

// NextStep advances the running thread by one instruction. It is a no-op
// if no thread has been started.
func (r *Runtime) NextStep() {
	r.threadMu.Lock()
	t := r.thread
	r.threadMu.Unlock()
	if t != nil {
		t.nextStep()
	}
}

// Stop cancels the running thread. It is a no-op if no thread has been
// started.
func (r *Runtime) Stop() {
	r.threadMu.Lock()
	t := r.thread
	r.threadMu.Unlock()
	if t != nil {
		t.cancel()
	}
}

// Join blocks until the running thread exits. It is a no-op if no thread
// has been started.
func (r *Runtime) Join() {
	r.threadMu.Lock()
	t := r.thread
	r.threadMu.Unlock()
	if t != nil {
		t.join()
	}
}

// The notify helpers read the callback slot under the runtime's mutex so
// a driver replacing a callback between steps never races the worker.

func (r *Runtime) notifyUpdate(snapshot []*frames.Frame) {
	r.mu.RLock()
	f := r.OnUpdate
	r.mu.RUnlock()
	if f != nil {
		f(snapshot)
	}
}

func (r *Runtime) notifyEnd() {
	r.mu.RLock()
	f := r.OnEnd
	r.mu.RUnlock()
	if f != nil {
		f()
	}
}

func (r *Runtime) notifyError(err error) {
	r.mu.RLock()
	f := r.OnError
	r.mu.RUnlock()
	if f != nil {
		f(err)
	}
}
