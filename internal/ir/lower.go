package ir

import (
	"github.com/AshTS/CLRSPseudocode/internal/ast"
	"github.com/AshTS/CLRSPseudocode/internal/diag"
	"github.com/AshTS/CLRSPseudocode/internal/token"
	"github.com/AshTS/CLRSPseudocode/internal/value"
)

// Lower lowers a parsed Program into one IR Function per source function.
func Lower(prog *ast.Program, source string) ([]*Function, diag.List, error) {
	var diags diag.List
	var out []*Function
	for _, fn := range prog.Functions {
		out = append(out, lowerFunction(fn, source, &diags))
	}
	if diags.Failed() {
		return nil, diags, errLowerFailed{diags}
	}
	return out, diags, nil
}

type errLowerFailed struct{ diags diag.List }

func (e errLowerFailed) Error() string { return "lowering failed:\n" + e.diags.String() }

func lowerFunction(fn *ast.Function, source string, diags *diag.List) *Function {
	out := NewFunction(fn.Name, fn.Parameters, source)
	lowerBlock(fn.Body, out, diags)
	out.AddInstruction(fn.Name.Loc.Line, Return{Value: Immediate{Value: value.None{}}})
	return out
}

func lowerBlock(block *ast.Block, fn *Function, diags *diag.List) {
	for _, stmt := range block.Statements {
		lowerStatement(stmt, fn, diags)
	}
}

func lowerStatement(node ast.Node, fn *Function, diags *diag.List) {
	switch n := node.(type) {
	case *ast.Return:
		var v Value = Immediate{Value: value.None{}}
		if n.Expression != nil {
			v = lowerExpression(n.Expression, fn, diags)
		}
		fn.AddInstruction(n.Token.Loc.Line, Return{Value: v})

	case *ast.If:
		lowerIf(n, fn, diags)

	case *ast.While:
		lowerWhile(n, fn, diags)

	case *ast.For:
		lowerFor(n, fn, diags)

	default:
		// A bare expression statement: lower for side effects, discard the
		// resulting place.
		lowerExpression(node, fn, diags)
	}
}

func lowerIf(n *ast.If, fn *Function, diags *diag.List) {
	var gotoEnds []int

	for _, clause := range n.Clauses {
		cond := lowerExpression(clause.Condition, fn, diags)
		branchIdx := fn.AddInstruction(clause.Keyword.Loc.Line, Branch{Cond: cond, True: fn.NextIndex() + 1, False: 0})
		lowerBlock(clause.Body, fn, diags)
		gotoIdx := fn.AddInstruction(clause.Keyword.Loc.Line, Goto{Target: 0})
		gotoEnds = append(gotoEnds, gotoIdx)
		patchBranchFalse(fn, branchIdx, fn.NextIndex())
	}

	if n.Else != nil {
		lowerBlock(n.Else, fn, diags)
	}

	end := fn.NextIndex()
	for _, idx := range gotoEnds {
		patchGoto(fn, idx, end)
	}
}

func lowerWhile(n *ast.While, fn *Function, diags *diag.List) {
	start := fn.NextIndex()
	cond := lowerExpression(n.Condition, fn, diags)
	branchIdx := fn.AddInstruction(n.Token.Loc.Line, Branch{Cond: cond, True: fn.NextIndex() + 1, False: 0})
	lowerBlock(n.Body, fn, diags)
	fn.AddInstruction(n.Token.Loc.Line, Goto{Target: start})
	patchBranchFalse(fn, branchIdx, fn.NextIndex())
}

func lowerFor(n *ast.For, fn *Function, diags *diag.List) {
	loopVar := Variable{Name: n.LoopVar.Text, Token: &n.LoopVar}

	a := lowerExpression(n.Bound0, fn, diags)
	b := lowerExpression(n.Bound1, fn, diags)
	fn.AddInstruction(n.Token.Loc.Line, Assign{Dest: loopVar, Src: a})

	start := fn.NextIndex()
	cmp := Lte
	if n.Reverse {
		cmp = Gte
	}
	cond := fn.NewTemp()
	fn.AddInstruction(n.Token.Loc.Line, BinaryOpInst{Op: cmp, Dest: cond, Lhs: loopVar, Rhs: b})
	branchIdx := fn.AddInstruction(n.Token.Loc.Line, Branch{Cond: cond, True: fn.NextIndex() + 1, False: 0})

	lowerBlock(n.Body, fn, diags)

	step := Add
	if n.Reverse {
		step = Sub
	}
	fn.AddInstruction(n.Token.Loc.Line, BinaryOpInst{Op: step, Dest: loopVar, Lhs: loopVar, Rhs: Immediate{Value: value.Number(1)}})
	fn.AddInstruction(n.Token.Loc.Line, Goto{Target: start})
	patchBranchFalse(fn, branchIdx, fn.NextIndex())
}

func patchBranchFalse(fn *Function, idx, target int) {
	b := fn.Instructions[idx].Kind.(Branch)
	b.False = target
	fn.Instructions[idx].Kind = b
}

func patchGoto(fn *Function, idx, target int) {
	fn.Instructions[idx] = Instruction{Line: fn.Instructions[idx].Line, Kind: Goto{Target: target}}
}

// lowerExpression lowers an expression node to an IR place, per §4.4.
func lowerExpression(node ast.Node, fn *Function, diags *diag.List) Value {
	switch n := node.(type) {
	case *ast.NumericValue:
		return Immediate{Value: value.Number(n.Value), Token: &n.Token}

	case *ast.IdentifierValue:
		switch n.Token.Text {
		case "True":
			return Immediate{Value: value.Boolean(true), Token: &n.Token}
		case "False":
			return Immediate{Value: value.Boolean(false), Token: &n.Token}
		default:
			return Variable{Name: n.Token.Text, Token: &n.Token}
		}

	case *ast.Expression:
		return lowerExpressionNode(n, fn, diags)

	default:
		diags.Add(diag.Errorf(nil, "internal error: cannot lower node as an expression"))
		return Immediate{Value: value.None{}}
	}
}

func lowerExpressionNode(n *ast.Expression, fn *Function, diags *diag.List) Value {
	switch n.Kind {
	case ast.Assignment:
		dest := lowerExpression(n.Children[0], fn, diags)
		src := lowerExpression(n.Children[1], fn, diags)
		line := n.Symbols[0].Loc.Line
		fn.AddInstruction(line, Assign{Dest: dest, Src: src})
		return src

	case ast.FunctionCall:
		calleePlace := lowerExpression(n.Children[0], fn, diags)
		callee, ok := asCalleeVariable(calleePlace)
		if !ok {
			diags.Add(diag.Errorf(calleeToken(n.Children[0]), "expected a function name, found an expression"))
			callee = Variable{Name: "<error>"}
		}
		var args []Value
		for _, argNode := range n.Children[1:] {
			args = append(args, lowerExpression(argNode, fn, diags))
		}
		temp := fn.NewTemp()
		line := n.Symbols[0].Loc.Line
		fn.AddInstruction(line, Call{Callee: callee, Dest: temp, Args: args})
		return temp

	case ast.MemberAccess:
		base := lowerExpression(n.Children[0], fn, diags)
		member := lowerExpression(n.Children[1], fn, diags)
		return MemberAccess{Base: base, Member: member}

	case ast.Indexing:
		base := lowerExpression(n.Children[0], fn, diags)
		index := lowerExpression(n.Children[1], fn, diags)
		return Indexing{Base: base, Index: index}

	case ast.LogicalAnd:
		return lowerShortCircuit(n, fn, diags, true)

	case ast.LogicalOr:
		return lowerShortCircuit(n, fn, diags, false)

	default:
		return lowerBinaryArithmetic(n, fn, diags)
	}
}

var arithmeticOps = map[ast.ExpressionKind]BinaryOp{
	ast.Add:              Add,
	ast.Subtract:         Sub,
	ast.Multiply:         Mul,
	ast.Divide:           Div,
	ast.LessThan:         Lt,
	ast.GreaterThan:      Gt,
	ast.LessThanEqual:    Lte,
	ast.GreaterThanEqual: Gte,
	ast.Equality:         Eq,
	ast.Inequality:       Neq,
}

func lowerBinaryArithmetic(n *ast.Expression, fn *Function, diags *diag.List) Value {
	op, ok := arithmeticOps[n.Kind]
	if !ok {
		diags.Add(diag.Errorf(nil, "internal error: unsupported expression kind %s", n.Kind))
		return Immediate{Value: value.None{}}
	}
	lhs := lowerExpression(n.Children[0], fn, diags)
	rhs := lowerExpression(n.Children[1], fn, diags)
	temp := fn.NewTemp()
	line := n.Symbols[0].Loc.Line
	fn.AddInstruction(line, BinaryOpInst{Op: op, Dest: temp, Lhs: lhs, Rhs: rhs})
	return temp
}

// lowerShortCircuit lowers `a and b` / `a or b` per §4.4: the branch target
// order is swapped between the two so that `and` rejoins on a false lhs and
// `or` rejoins on a true lhs.
func lowerShortCircuit(n *ast.Expression, fn *Function, diags *diag.List, isAnd bool) Value {
	temp := fn.NewTemp()
	line := n.Symbols[0].Loc.Line

	va := lowerExpression(n.Children[0], fn, diags)

	var branchIdx int
	if isAnd {
		branchIdx = fn.AddInstruction(line, Branch{Cond: va, True: fn.NextIndex() + 1, False: 0})
	} else {
		branchIdx = fn.AddInstruction(line, Branch{Cond: va, True: 0, False: fn.NextIndex() + 1})
	}

	vb := lowerExpression(n.Children[1], fn, diags)
	fn.AddInstruction(line, Assign{Dest: temp, Src: vb})
	gotoAfterIdx := fn.AddInstruction(line, Goto{Target: 0})

	rejoin := fn.NextIndex()
	fn.AddInstruction(line, Assign{Dest: temp, Src: va})

	after := fn.NextIndex()
	patchGoto(fn, gotoAfterIdx, after)

	b := fn.Instructions[branchIdx].Kind.(Branch)
	if isAnd {
		b.False = rejoin
	} else {
		b.True = rejoin
	}
	fn.Instructions[branchIdx].Kind = b

	return temp
}

func asCalleeVariable(v Value) (Value, bool) {
	if variable, ok := v.(Variable); ok {
		return variable, true
	}
	return nil, false
}

func calleeToken(node ast.Node) *token.Token {
	if id, ok := node.(*ast.IdentifierValue); ok {
		return &id.Token
	}
	return nil
}
