// Package interp implements a tree-walking interpreter over the typed parse
// tree, the alternate execution path to lowering-plus-vm: same semantics,
// no IR, no single-stepping, evaluated straight off the ast.Program.
package interp

import (
	"io"
	"os"

	"github.com/AshTS/CLRSPseudocode/internal/ast"
	"github.com/AshTS/CLRSPseudocode/internal/diag"
	"github.com/AshTS/CLRSPseudocode/internal/token"
	"github.com/AshTS/CLRSPseudocode/internal/value"
)

// env is one call frame's variable bindings.
type env map[string]value.Value

// Interpreter holds the program's function table and shared builtins.
type Interpreter struct {
	functions map[string]*ast.Function
	names     []string
	output    io.Writer
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithOutput directs Print output to w instead of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.output = w }
}

// New builds an Interpreter over prog's functions.
func New(prog *ast.Program, opts ...Option) *Interpreter {
	in := &Interpreter{
		functions: make(map[string]*ast.Function, len(prog.Functions)),
		output:    os.Stdout,
	}
	for _, fn := range prog.Functions {
		in.functions[fn.Name.Text] = fn
		in.names = append(in.names, fn.Name.Text)
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run calls the named entry function with args and returns its result.
func (in *Interpreter) Run(name string, args []value.Value) (value.Value, error) {
	return in.call(name, nil, args)
}

// controlFlow signals a return unwinding out of nested blocks.
type controlFlow struct {
	returned bool
	value    value.Value
}

func (in *Interpreter) call(name string, callee *token.Token, args []value.Value) (value.Value, error) {
	switch name {
	case "Print":
		return value.Print(in.output, args)
	case "AssertEqual":
		result, err := value.AssertEqual(args)
		if err != nil {
			return nil, &diagError{diag.Errorf(callee, "%s", err)}
		}
		return result, nil
	}
	if fn, ok := value.LookupCallable(name); ok {
		result, err := fn(args)
		if err != nil {
			return nil, &diagError{diag.Errorf(callee, "%s", err)}
		}
		return result, nil
	}

	fn, ok := in.functions[name]
	if !ok {
		return nil, in.undefinedFunction(name, callee)
	}

	e := make(env, len(fn.Parameters))
	for i, p := range fn.Parameters {
		if i < len(args) {
			e[p.Text] = args[i]
		}
	}

	flow, err := in.execBlock(fn.Body, e)
	if err != nil {
		return nil, err
	}
	if flow.returned {
		return flow.value, nil
	}
	return value.None{}, nil
}

func (in *Interpreter) undefinedFunction(name string, tok *token.Token) error {
	d := diag.Errorf(tok, "function '%s' not defined", name)
	if suggestion, ok := diag.Suggest(name, in.names); ok {
		d = d.WithHelp("did you mean '" + suggestion + "'?")
	}
	return &diagError{d}
}

type diagError struct{ diag.Diagnostic }

func (e *diagError) Error() string { return e.Diagnostic.String() }

func (in *Interpreter) execBlock(block *ast.Block, e env) (controlFlow, error) {
	for _, stmt := range block.Statements {
		flow, err := in.execStatement(stmt, e)
		if err != nil || flow.returned {
			return flow, err
		}
	}
	return controlFlow{}, nil
}

func (in *Interpreter) execStatement(node ast.Node, e env) (controlFlow, error) {
	switch n := node.(type) {
	case *ast.Return:
		if n.Expression == nil {
			return controlFlow{returned: true, value: value.None{}}, nil
		}
		v, err := in.eval(n.Expression, e)
		if err != nil {
			return controlFlow{}, err
		}
		return controlFlow{returned: true, value: v}, nil

	case *ast.If:
		return in.execIf(n, e)

	case *ast.While:
		return in.execWhile(n, e)

	case *ast.For:
		return in.execFor(n, e)

	default:
		_, err := in.eval(node, e)
		return controlFlow{}, err
	}
}

func (in *Interpreter) execIf(n *ast.If, e env) (controlFlow, error) {
	for _, clause := range n.Clauses {
		cond, err := in.eval(clause.Condition, e)
		if err != nil {
			return controlFlow{}, err
		}
		b, ok := cond.(value.Boolean)
		if !ok {
			return controlFlow{}, &diagError{diag.Errorf(&clause.Keyword, "condition must be a boolean, got %s", cond.TypeName())}
		}
		if bool(b) {
			return in.execBlock(clause.Body, e)
		}
	}
	if n.Else != nil {
		return in.execBlock(n.Else, e)
	}
	return controlFlow{}, nil
}

func (in *Interpreter) execWhile(n *ast.While, e env) (controlFlow, error) {
	for {
		cond, err := in.eval(n.Condition, e)
		if err != nil {
			return controlFlow{}, err
		}
		b, ok := cond.(value.Boolean)
		if !ok {
			return controlFlow{}, &diagError{diag.Errorf(&n.Token, "condition must be a boolean, got %s", cond.TypeName())}
		}
		if !bool(b) {
			return controlFlow{}, nil
		}
		flow, err := in.execBlock(n.Body, e)
		if err != nil || flow.returned {
			return flow, err
		}
	}
}

func (in *Interpreter) execFor(n *ast.For, e env) (controlFlow, error) {
	a, err := in.eval(n.Bound0, e)
	if err != nil {
		return controlFlow{}, err
	}
	b, err := in.eval(n.Bound1, e)
	if err != nil {
		return controlFlow{}, err
	}
	lo, ok := a.(value.Number)
	if !ok {
		return controlFlow{}, &diagError{diag.Errorf(&n.Token, "loop bound must be a number, got %s", a.TypeName())}
	}
	hi, ok := b.(value.Number)
	if !ok {
		return controlFlow{}, &diagError{diag.Errorf(&n.Token, "loop bound must be a number, got %s", b.TypeName())}
	}

	i := lo
	for {
		e[n.LoopVar.Text] = i
		if n.Reverse {
			if i < hi {
				return controlFlow{}, nil
			}
		} else {
			if i > hi {
				return controlFlow{}, nil
			}
		}
		flow, err := in.execBlock(n.Body, e)
		if err != nil || flow.returned {
			return flow, err
		}
		// The step applies to the loop variable's current value, so a body
		// that assigns to it affects the iteration, as in the VM.
		cur, ok := e[n.LoopVar.Text].(value.Number)
		if !ok {
			return controlFlow{}, &diagError{diag.Errorf(&n.LoopVar, "loop variable must be a number, got %s", e[n.LoopVar.Text].TypeName())}
		}
		i = cur
		if n.Reverse {
			i--
		} else {
			i++
		}
	}
}
