/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

package jvm

import (
	"fmt"

	"mvm/exec"
	"mvm/frames"
	"mvm/log"
	"mvm/object"
)

type threadCmd int

const (
	cmdStep threadCmd = iota
	cmdStop
)

// Thread is a single worker goroutine stepping one frame stack, one
// instruction at a time, under external control: a caller drives it via
// nextStep/cancel and can observe it via the runtime's callbacks.
type Thread struct {
	runtime *Runtime
	stack   *frames.FrameStack

	cmdCh  chan threadCmd
	doneCh chan struct{}
}

// newThread builds a Thread positioned at the first instruction of
// method, and immediately spawns its worker goroutine -- it runs until
// nextStep/cancel drive it, or the frame stack empties out.
func newThread(rt *Runtime, class *object.Class, method *object.Method) *Thread {
	t := &Thread{
		runtime: rt,
		stack:   frames.NewFrameStack(),
		cmdCh:   make(chan threadCmd, 1),
		doneCh:  make(chan struct{}),
	}
	t.stack.Push(frames.NewFrame(class, method))

	go t.run()
	return t
}

// nextStep requests one more instruction be executed. It is dropped, not
// queued, if the worker hasn't consumed a previous request yet.
func (t *Thread) nextStep() {
	select {
	case t.cmdCh <- cmdStep:
	default:
	}
}

// cancel requests the worker stop before executing another instruction.
func (t *Thread) cancel() {
	select {
	case t.cmdCh <- cmdStop:
	default:
	}
}

// join blocks until the worker goroutine exits.
func (t *Thread) join() {
	<-t.doneCh
}

// run is the worker loop: while a frame remains, publish an update,
// wait for the next command, then execute one instruction. It calls
// OnEnd when the method runs to completion or the thread is cancelled,
// but never after OnError has fired: a reported error is the terminal
// event, not a prelude to one.
func (t *Thread) run() {
	defer close(t.doneCh)

	for {
		frame := t.stack.Current()
		if frame == nil {
			_ = log.Log("thread finished normally", log.FINEST)
			t.runtime.notifyEnd()
			return
		}
		t.runtime.notifyUpdate(t.stack.Snapshot())

		cmd, ok := <-t.cmdCh
		if !ok || cmd == cmdStop {
			_ = log.Log(fmt.Sprintf("thread cancelled at %s#%s pc=%d",
				frame.Class.Name(), frame.Method.Signature().Name, frame.PC()), log.FINEST)
			t.runtime.notifyEnd()
			return
		}

		if err := exec.Step(t.runtime, t.stack); err != nil {
			_ = log.Log(fmt.Sprintf("thread terminated: %v", err), log.SEVERE)
			t.runtime.notifyError(err)
			return
		}
	}
}
