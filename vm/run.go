package vm

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/AshTS/CLRSPseudocode/internal/diag"
	"github.com/AshTS/CLRSPseudocode/internal/ir"
	"github.com/AshTS/CLRSPseudocode/internal/value"
)

// SingleStep executes exactly one IR instruction on the top frame. Calling
// into a user function does not grow the Go call stack: it pushes a Frame
// and leaves the calling frame's cursor parked on the same Call instruction,
// which is re-executed (this time consuming the callee's PassedReturn) once
// the callee frame is popped. Calling IsDone before stepping further is the
// caller's job; SingleStep on an empty stack is a no-op.
func (r *Runtime) SingleStep() (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = errors.Errorf("internal error: %v", e)
		}
	}()

	top := r.Top()
	if top == nil {
		return nil
	}
	// A frame that executed Return on the previous step is popped now, and
	// the step goes on with the caller's (or nothing, if it was the last).
	if top.ReturnValue != nil {
		r.popFrame(top.ReturnValue)
		if top = r.Top(); top == nil {
			return nil
		}
	}
	inst := top.NextInstruction()
	if inst == nil {
		r.popFrame(nil)
		return nil
	}

	if r.trace != nil {
		fmt.Fprintf(r.trace, "%s: %s\n", top.Function.Name.Text, inst)
	}

	switch k := inst.Kind.(type) {
	case ir.Return:
		v, err := top.loadValue(k.Value, true)
		if err != nil {
			return err
		}
		top.ReturnValue = &v

	case ir.Assign:
		v, err := top.loadValue(k.Src, true)
		if err != nil {
			return err
		}
		if err := top.storeValueInto(k.Dest, v); err != nil {
			return err
		}
		top.Line++

	case ir.BinaryOpInst:
		lhs, err := top.loadValue(k.Lhs, true)
		if err != nil {
			return err
		}
		rhs, err := top.loadValue(k.Rhs, true)
		if err != nil {
			return err
		}
		fn, _ := value.LookupBinaryOp(k.Op.BuiltinName())
		result, err := fn([]value.Value{lhs, rhs})
		if err != nil {
			return &DiagError{diag.Errorf(nil, "%s", err)}
		}
		if err := top.storeValueInto(k.Dest, result); err != nil {
			return err
		}
		top.Line++

	case ir.Call:
		return r.stepCall(top, k)

	case ir.Branch:
		cond, err := top.loadValue(k.Cond, true)
		if err != nil {
			return err
		}
		b, ok := cond.(value.Boolean)
		if !ok {
			return &DiagError{diag.Errorf(nil, "branch condition must be a boolean, got %s", cond.TypeName())}
		}
		if bool(b) {
			top.Line = k.True
		} else {
			top.Line = k.False
		}

	case ir.Goto:
		top.Line = k.Target

	default:
		return &DiagError{diag.Errorf(nil, "internal error: unhandled instruction kind")}
	}
	return nil
}

// stepCall executes a Call instruction: either it delivers a result already
// produced by a returned callee, invokes a builtin inline, or suspends the
// frame and pushes a new one for a user function.
func (r *Runtime) stepCall(top *Frame, c ir.Call) error {
	if top.PassedReturn != nil {
		if err := top.storeValueInto(c.Dest, *top.PassedReturn); err != nil {
			return err
		}
		top.PassedReturn = nil
		top.Line++
		return nil
	}

	callee, ok := c.Callee.(ir.Variable)
	if !ok {
		return &DiagError{diag.Errorf(nil, "internal error: call target is not a function name")}
	}

	args := make([]value.Value, 0, len(c.Args))
	for _, a := range c.Args {
		v, err := top.loadValue(a, true)
		if err != nil {
			return err
		}
		args = append(args, v)
	}

	switch callee.Name {
	case "Print":
		result, err := value.Print(r.output, args)
		if err != nil {
			return &DiagError{diag.Errorf(callee.Token, "%s", err)}
		}
		return r.finishInlineCall(top, c, result)

	case "AssertEqual":
		result, err := value.AssertEqual(args)
		if err != nil {
			return &DiagError{diag.Errorf(callee.Token, "%s", err)}
		}
		return r.finishInlineCall(top, c, result)
	}

	if fn, ok := value.LookupCallable(callee.Name); ok {
		result, err := fn(args)
		if err != nil {
			return &DiagError{diag.Errorf(callee.Token, "%s", err)}
		}
		return r.finishInlineCall(top, c, result)
	}

	fn, ok := r.functions[callee.Name]
	if !ok {
		return r.undefined(callee.Name)
	}
	callLine := top.Function.Instructions[top.Line].Line
	r.stack = append(r.stack, NewFrame(fn, args, append(append([]int{}, top.LastLines...), callLine)))
	return nil
}

func (r *Runtime) finishInlineCall(top *Frame, c ir.Call, result value.Value) error {
	if err := top.storeValueInto(c.Dest, result); err != nil {
		return err
	}
	top.Line++
	return nil
}

// popFrame pops the current frame. If ret is non-nil, its value is handed to
// the new top frame as PassedReturn for the next time its Call instruction
// is stepped; a nil ret (a ran-off-the-end frame, which well-formed IR never
// produces) hands back no value at all.
func (r *Runtime) popFrame(ret *value.Value) {
	r.stack = r.stack[:len(r.stack)-1]
	if ret == nil {
		return
	}
	if top := r.Top(); top != nil {
		top.PassedReturn = ret
		return
	}
	r.lastReturn = ret
}

// VisibleStep advances the VM until the top frame's current source line
// changes, a call pushes or pops a frame, or execution finishes — the
// granularity a visualizer redraws at, rather than one raw IR instruction.
func (r *Runtime) VisibleStep() error {
	r.Clear()

	top := r.Top()
	if top == nil {
		return nil
	}
	startDepth := len(r.stack)
	startLine := top.Function.Instructions[top.Line].Line

	for {
		if err := r.SingleStep(); err != nil {
			return err
		}
		if r.IsDone() {
			return nil
		}
		top = r.Top()
		if len(r.stack) != startDepth {
			return nil
		}
		if top.Function.Instructions[top.Line].Line != startLine {
			return nil
		}
	}
}
