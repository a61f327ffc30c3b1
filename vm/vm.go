// This file is part of ngaro - https://github.com/db47h/ngaro
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/AshTS/CLRSPseudocode/internal/diag"
	"github.com/AshTS/CLRSPseudocode/internal/ir"
	"github.com/AshTS/CLRSPseudocode/internal/value"
)

// Option configures a Runtime at construction time, the same functional-
// options shape the teacher uses for its own VM Instance.
type Option func(*Runtime) error

// WithOutput directs Print output to w instead of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) error { r.output = w; return nil }
}

// WithTrace enables per-instruction tracing to w.
func WithTrace(w io.Writer) Option {
	return func(r *Runtime) error { r.trace = w; return nil }
}

// Runtime owns the table of IR functions and the stack of active execution
// frames, per §4.5 of the data model.
type Runtime struct {
	functions  map[string]*ir.Function
	names      []string // for "did you mean" suggestions
	stack      []*Frame
	output     io.Writer
	trace      io.Writer // nil disables instruction tracing
	lastReturn *value.Value
}

// New builds a Runtime over the given lowered functions.
func New(functions []*ir.Function, opts ...Option) (*Runtime, error) {
	r := &Runtime{
		functions: make(map[string]*ir.Function, len(functions)),
		output:    os.Stdout,
	}
	for _, f := range functions {
		name := f.Name.Text
		r.functions[name] = f
		r.names = append(r.names, name)
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, errors.Wrap(err, "configuring runtime")
		}
	}
	return r, nil
}

// StartExecution pushes a frame for the named function with no arguments.
func (r *Runtime) StartExecution(name string) error {
	fn, ok := r.functions[name]
	if !ok {
		return r.undefined(name)
	}
	r.stack = append(r.stack, NewFrame(fn, nil, nil))
	return nil
}

func (r *Runtime) undefined(name string) error {
	d := diag.Errorf(nil, "function '%s' not defined", name)
	if suggestion, ok := diag.Suggest(name, r.names); ok {
		d = d.WithHelp("did you mean '" + suggestion + "'?")
	}
	return &DiagError{d}
}

// IsDone reports whether the frame stack is empty.
func (r *Runtime) IsDone() bool { return len(r.stack) == 0 }

// Top returns the currently executing frame, or nil if the VM is done.
func (r *Runtime) Top() *Frame {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Clear clears the read/write audit lists of the top frame.
func (r *Runtime) Clear() {
	if top := r.Top(); top != nil {
		top.Clear()
	}
}

// Result returns the value the entry function returned, once IsDone is true.
func (r *Runtime) Result() (value.Value, bool) {
	if r.lastReturn == nil {
		return nil, false
	}
	return *r.lastReturn, true
}

// DiagError adapts a single core diagnostic to the Go error interface so it
// can flow through ordinary error-returning functions; the host unwraps it
// with AsDiagnostic when it wants the structured form back.
type DiagError struct {
	Diagnostic diag.Diagnostic
}

func (e *DiagError) Error() string { return e.Diagnostic.String() }

// AsDiagnostic extracts the diag.Diagnostic from err if it is (or wraps) a
// *DiagError.
func AsDiagnostic(err error) (diag.Diagnostic, bool) {
	var de *DiagError
	if errors.As(err, &de) {
		return de.Diagnostic, true
	}
	return diag.Diagnostic{}, false
}
