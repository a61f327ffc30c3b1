package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/AshTS/CLRSPseudocode/internal/ast"
)

// dumpProgram renders a Program as an indented tree, the parse stage's
// equivalent of ir.Function's instruction listing.
func dumpProgram(w io.Writer, prog *ast.Program) {
	for _, fn := range prog.Functions {
		dumpFunction(w, fn)
	}
}

func dumpFunction(w io.Writer, fn *ast.Function) {
	names := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		names[i] = p.Text
	}
	fmt.Fprintf(w, "%s(%s)\n", fn.Name.Text, strings.Join(names, ", "))
	dumpBlock(w, fn.Body, 1)
}

func dumpBlock(w io.Writer, block *ast.Block, depth int) {
	for _, stmt := range block.Statements {
		dumpNode(w, stmt, depth)
	}
}

func indent(w io.Writer, depth int) {
	fmt.Fprint(w, strings.Repeat("  ", depth))
}

func dumpNode(w io.Writer, node ast.Node, depth int) {
	indent(w, depth)
	switch n := node.(type) {
	case *ast.Return:
		if n.Expression == nil {
			fmt.Fprintln(w, "return")
			return
		}
		fmt.Fprintf(w, "return %s\n", dumpExpr(n.Expression))

	case *ast.If:
		for i, clause := range n.Clauses {
			if i == 0 {
				fmt.Fprintf(w, "if %s\n", dumpExpr(clause.Condition))
			} else {
				indent(w, depth)
				fmt.Fprintf(w, "elseif %s\n", dumpExpr(clause.Condition))
			}
			dumpBlock(w, clause.Body, depth+1)
		}
		if n.Else != nil {
			indent(w, depth)
			fmt.Fprintln(w, "else")
			dumpBlock(w, n.Else, depth+1)
		}

	case *ast.While:
		fmt.Fprintf(w, "while %s\n", dumpExpr(n.Condition))
		dumpBlock(w, n.Body, depth+1)

	case *ast.For:
		dir := "to"
		if n.Reverse {
			dir = "down to"
		}
		fmt.Fprintf(w, "for %s = %s %s %s\n", n.LoopVar.Text, dumpExpr(n.Bound0), dir, dumpExpr(n.Bound1))
		dumpBlock(w, n.Body, depth+1)

	default:
		fmt.Fprintln(w, dumpExpr(node))
	}
}

func dumpExpr(node ast.Node) string {
	switch n := node.(type) {
	case *ast.NumericValue:
		return fmt.Sprint(n.Value)
	case *ast.IdentifierValue:
		return n.Token.Text
	case *ast.Expression:
		return dumpExpression(n)
	default:
		return "<?>"
	}
}

func dumpExpression(n *ast.Expression) string {
	switch n.Kind {
	case ast.Assignment:
		return fmt.Sprintf("(%s = %s)", dumpExpr(n.Children[0]), dumpExpr(n.Children[1]))
	case ast.FunctionCall:
		args := make([]string, 0, len(n.Children)-1)
		for _, a := range n.Children[1:] {
			args = append(args, dumpExpr(a))
		}
		return fmt.Sprintf("%s(%s)", dumpExpr(n.Children[0]), strings.Join(args, ", "))
	case ast.MemberAccess:
		return fmt.Sprintf("%s.%s", dumpExpr(n.Children[0]), dumpExpr(n.Children[1]))
	case ast.Indexing:
		return fmt.Sprintf("%s[%s]", dumpExpr(n.Children[0]), dumpExpr(n.Children[1]))
	default:
		return fmt.Sprintf("(%s %s %s)", dumpExpr(n.Children[0]), n.Kind, dumpExpr(n.Children[1]))
	}
}
