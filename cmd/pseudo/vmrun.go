package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AshTS/CLRSPseudocode/internal/ir"
	"github.com/AshTS/CLRSPseudocode/internal/ngi"
	"github.com/AshTS/CLRSPseudocode/internal/value"
	"github.com/AshTS/CLRSPseudocode/vm"
)

// newCancellableContext creates a context that cancels on SIGINT/SIGTERM, so
// a Ctrl-C during a keystroke-gated vm-run unblocks the pending read instead
// of leaving the terminal stuck in raw mode.
func newCancellableContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx, cancel
}

func newVMRunCommand() *cobra.Command {
	var quiet, noWait, trace bool

	cmd := &cobra.Command{
		Use:   "vm-run <file>",
		Short: "Step the single-step VM over a source file, one visible step at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVM(cmd, args[0], quiet, noWait, trace)
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress per-step frame dumps")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "run to completion without waiting for a keystroke between steps")
	cmd.Flags().BoolVar(&trace, "trace", false, "print every instruction as it executes, not just visible steps")
	return cmd
}

func runVM(cmd *cobra.Command, path string, quiet, noWait, trace bool) error {
	prog, err := parseFile(path)
	if err != nil {
		return fmt.Errorf("parse failed")
	}
	functions, diags, err := ir.Lower(prog, path)
	printDiagnostics(diags)
	if err != nil {
		return fmt.Errorf("lowering failed")
	}
	entryFn, err := entryFunction(prog)
	if err != nil {
		return err
	}

	out := ngi.NewErrWriter(cmd.OutOrStdout())
	opts := []vm.Option{vm.WithOutput(out)}
	if trace {
		opts = append(opts, vm.WithTrace(cmd.ErrOrStderr()))
	}
	runtime, err := vm.New(functions, opts...)
	if err != nil {
		return err
	}
	if err := runtime.StartExecution(entryFn.Name.Text); err != nil {
		if d, ok := vm.AsDiagnostic(err); ok {
			fmt.Fprintln(cmd.ErrOrStderr(), d.String())
			return fmt.Errorf("vm-run failed")
		}
		return err
	}

	ctx, cancel := newCancellableContext()
	defer cancel()

	waiting := false
	if !noWait {
		restore, err := setRawIO()
		if err == nil {
			waiting = true
			defer restore()
		}
	}

	for !runtime.IsDone() {
		if ctx.Err() != nil {
			return nil
		}
		if err := runtime.VisibleStep(); err != nil {
			if d, ok := vm.AsDiagnostic(err); ok {
				fmt.Fprintln(cmd.ErrOrStderr(), d.String())
				return fmt.Errorf("vm-run failed")
			}
			return err
		}
		if !quiet {
			printFrame(cmd.OutOrStdout(), runtime.Top())
		}
		if waiting && !runtime.IsDone() {
			if ctx.Err() != nil {
				return nil
			}
			waitForKeystroke(ctx)
		}
	}

	if out.Err != nil {
		return out.Err
	}
	return nil
}

// waitForKeystroke blocks for one byte of stdin, or returns early if ctx is
// canceled (a Ctrl-C arriving mid-read), so the caller's deferred terminal
// restore always gets to run.
func waitForKeystroke(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		var b [1]byte
		os.Stdin.Read(b[:])
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func printFrame(w io.Writer, f *vm.Frame) {
	if f == nil {
		return
	}
	inst := f.NextInstruction()
	if inst == nil {
		return
	}
	fmt.Fprintf(w, "--- %s line %d ---\n", f.Function.Name.Text, inst.Line)
	for _, touch := range f.LastUpdated {
		if strings.Contains(touch.Name, "$") {
			continue // synthesized temporaries are never shown to the visualizer
		}
		fmt.Fprintf(w, "  updated %s = %s\n", touch.Name, valueOf(f, touch.Name))
	}
}

func valueOf(f *vm.Frame, name string) value.Value {
	if v, ok := f.Variables[name]; ok {
		return v
	}
	return value.None{}
}
