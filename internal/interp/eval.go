package interp

import (
	"github.com/AshTS/CLRSPseudocode/internal/ast"
	"github.com/AshTS/CLRSPseudocode/internal/diag"
	"github.com/AshTS/CLRSPseudocode/internal/value"
)

func (in *Interpreter) eval(node ast.Node, e env) (value.Value, error) {
	switch n := node.(type) {
	case *ast.NumericValue:
		return value.Number(n.Value), nil

	case *ast.IdentifierValue:
		switch n.Token.Text {
		case "True":
			return value.Boolean(true), nil
		case "False":
			return value.Boolean(false), nil
		}
		v, ok := e[n.Token.Text]
		if !ok {
			return nil, in.undefinedVariable(n, e)
		}
		return v, nil

	case *ast.Expression:
		return in.evalExpression(n, e)

	default:
		return nil, &diagError{diag.Errorf(nil, "internal error: cannot evaluate this node")}
	}
}

func (in *Interpreter) undefinedVariable(n *ast.IdentifierValue, e env) error {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	d := diag.Errorf(&n.Token, "variable '%s' is not defined", n.Token.Text)
	if suggestion, ok := diag.Suggest(n.Token.Text, names); ok {
		d = d.WithHelp("did you mean '" + suggestion + "'?")
	}
	return &diagError{d}
}

func (in *Interpreter) evalExpression(n *ast.Expression, e env) (value.Value, error) {
	switch n.Kind {
	case ast.Assignment:
		v, err := in.eval(n.Children[1], e)
		if err != nil {
			return nil, err
		}
		if err := in.assign(n.Children[0], v, e); err != nil {
			return nil, err
		}
		return v, nil

	case ast.FunctionCall:
		callee, ok := n.Children[0].(*ast.IdentifierValue)
		if !ok {
			return nil, &diagError{diag.Errorf(nil, "expected a function name, found an expression")}
		}
		args := make([]value.Value, 0, len(n.Children)-1)
		for _, argNode := range n.Children[1:] {
			v, err := in.eval(argNode, e)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return in.call(callee.Token.Text, &callee.Token, args)

	case ast.MemberAccess:
		base, err := in.eval(n.Children[0], e)
		if err != nil {
			return nil, err
		}
		member := n.Children[1].(*ast.IdentifierValue).Token.Text
		result, err := value.MemberAccess(base, member)
		if err != nil {
			return nil, &diagError{diag.Errorf(&n.Symbols[0], "%s", err)}
		}
		return result, nil

	case ast.Indexing:
		base, err := in.eval(n.Children[0], e)
		if err != nil {
			return nil, err
		}
		idx, err := in.eval(n.Children[1], e)
		if err != nil {
			return nil, err
		}
		result, err := value.Index(base, idx)
		if err != nil {
			return nil, &diagError{diag.Errorf(&n.Symbols[0], "%s", err)}
		}
		return result, nil

	case ast.LogicalAnd:
		lhs, err := in.eval(n.Children[0], e)
		if err != nil {
			return nil, err
		}
		lb, ok := lhs.(value.Boolean)
		if !ok {
			return nil, &diagError{diag.Errorf(&n.Symbols[0], "operand must be a boolean, got %s", lhs.TypeName())}
		}
		if !bool(lb) {
			return lb, nil
		}
		return in.eval(n.Children[1], e)

	case ast.LogicalOr:
		lhs, err := in.eval(n.Children[0], e)
		if err != nil {
			return nil, err
		}
		lb, ok := lhs.(value.Boolean)
		if !ok {
			return nil, &diagError{diag.Errorf(&n.Symbols[0], "operand must be a boolean, got %s", lhs.TypeName())}
		}
		if bool(lb) {
			return lb, nil
		}
		return in.eval(n.Children[1], e)

	default:
		return in.evalBinary(n, e)
	}
}

var binaryBuiltinNames = map[ast.ExpressionKind]string{
	ast.Add:              "add",
	ast.Subtract:         "sub",
	ast.Multiply:         "mul",
	ast.Divide:           "div",
	ast.LessThan:         "lt",
	ast.GreaterThan:      "gt",
	ast.LessThanEqual:    "lte",
	ast.GreaterThanEqual: "gte",
	ast.Equality:         "equal",
	ast.Inequality:       "nequal",
}

func (in *Interpreter) evalBinary(n *ast.Expression, e env) (value.Value, error) {
	name, ok := binaryBuiltinNames[n.Kind]
	if !ok {
		return nil, &diagError{diag.Errorf(nil, "internal error: unsupported expression kind %s", n.Kind)}
	}
	lhs, err := in.eval(n.Children[0], e)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(n.Children[1], e)
	if err != nil {
		return nil, err
	}
	fn, _ := value.LookupBinaryOp(name)
	result, err := fn([]value.Value{lhs, rhs})
	if err != nil {
		return nil, &diagError{diag.Errorf(&n.Symbols[0], "%s", err)}
	}
	return result, nil
}

// assign stores v into the place described by dest: a bare identifier, a
// member access, or an index expression.
func (in *Interpreter) assign(dest ast.Node, v value.Value, e env) error {
	switch d := dest.(type) {
	case *ast.IdentifierValue:
		switch d.Token.Text {
		case "True", "False":
			return &diagError{diag.Errorf(&d.Token, "cannot assign to an immutable value '%s'", d.Token.Text)}
		}
		e[d.Token.Text] = v
		return nil

	case *ast.Expression:
		switch d.Kind {
		case ast.MemberAccess:
			base, err := in.eval(d.Children[0], e)
			if err != nil {
				return err
			}
			member := d.Children[1].(*ast.IdentifierValue).Token.Text
			if err := value.MutableMemberAccess(base, member, v); err != nil {
				return &diagError{diag.Errorf(&d.Symbols[0], "%s", err)}
			}
			return nil

		case ast.Indexing:
			base, err := in.eval(d.Children[0], e)
			if err != nil {
				return err
			}
			idx, err := in.eval(d.Children[1], e)
			if err != nil {
				return err
			}
			if err := value.MutableIndex(base, idx, v); err != nil {
				return &diagError{diag.Errorf(&d.Symbols[0], "%s", err)}
			}
			return nil
		}
	}
	return &diagError{diag.Errorf(nil, "invalid assignment target")}
}
