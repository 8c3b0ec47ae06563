/*
 * mvm - an educational bytecode virtual machine
 * Licensed under the Mozilla Public License 2.0 (MPL-2.0)
 */

// Command mvm runs a single class's static void main() method to
// completion, printing one line per executed instruction and a summary
// of the classes and objects the run touched.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mvm/frames"
	"mvm/jvm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var roots []string
	var maxSteps int

	cmd := &cobra.Command{
		Use:   "mvm <main-class>",
		Short: "Run a class's static void main() method on the mvm bytecode interpreter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), roots, args[0], maxSteps)
		},
	}

	cmd.Flags().StringArrayVar(&roots, "root", nil, "class-path root directory (repeatable, searched in order)")
	cmd.Flags().IntVar(&maxSteps, "steps", 0, "stop after this many instructions (0 = unbounded)")

	return cmd
}

// run drives a Runtime to completion: OnUpdate prints one line per
// instruction and requests the next step, until maxSteps instructions have
// run or the thread ends on its own; OnError records a failure, and the
// summary is printed once the worker has exited.
func run(out io.Writer, roots []string, mainClass string, maxSteps int) error {
	if len(roots) == 0 {
		roots = []string{"."}
	}

	rt := jvm.NewRuntime(roots)

	start := time.Now()
	steps := 0
	var runErr error

	rt.OnUpdate = func(stack []*frames.Frame) {
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			fmt.Fprintf(out, "%s#%s pc=%d depth=%d\n", top.Class.Name(), top.Method.Signature().Name, top.PC(), len(stack))
		}
		if maxSteps > 0 && steps >= maxSteps {
			rt.Stop()
			return
		}
		steps++
		rt.NextStep()
	}
	rt.OnError = func(err error) { runErr = err }

	if err := rt.Start(mainClass); err != nil {
		return err
	}
	rt.Join()

	return summarize(out, rt, runErr, steps, start)
}

func summarize(out io.Writer, rt *jvm.Runtime, runErr error, steps int, start time.Time) error {
	elapsed := time.Since(start)
	fmt.Fprintf(out, "\n%s instructions executed in %s\n", humanize.Comma(int64(steps)), elapsed)
	fmt.Fprintf(out, "%s classes loaded, %s instances allocated\n",
		humanize.Comma(int64(len(rt.Classes()))), humanize.Comma(int64(len(rt.Instances()))))

	if runErr != nil {
		fmt.Fprintf(out, "error: %v\n", runErr)
		return runErr
	}
	return nil
}
