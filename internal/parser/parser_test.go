package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AshTS/CLRSPseudocode/internal/ast"
	"github.com/AshTS/CLRSPseudocode/internal/lexer"
	"github.com/AshTS/CLRSPseudocode/internal/parser"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	lex := lexer.New("test.pseudo", source)
	prog, diags, err := parser.ParseDocument(lex)
	require.NoError(t, err, diags.String())
	return prog
}

func TestParseFunctionWithParameters(t *testing.T) {
	prog := parse(t, "add(a, b)\n    return a + b\n")
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "add", fn.Name.Text)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "a", fn.Parameters[0].Text)
	assert.Equal(t, "b", fn.Parameters[1].Text)
	require.Len(t, fn.Body.Statements, 1)
	_, ok := fn.Body.Statements[0].(*ast.Return)
	assert.True(t, ok)
}

func TestElseifElseGatedOnOuterIndentation(t *testing.T) {
	source := "f(x)\n" +
		"    if x\n" +
		"        return 1\n" +
		"    elseif x\n" +
		"        return 2\n" +
		"    else\n" +
		"        return 3\n"
	prog := parse(t, source)
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	require.Len(t, fn.Body.Statements, 1)
	ifNode, ok := fn.Body.Statements[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifNode.Clauses, 2)
	require.NotNil(t, ifNode.Else)
}

func TestStatementAfterIfAtOuterLevelIsNotConsumedAsElse(t *testing.T) {
	// A statement at the if's own indentation level that is not elseif/else
	// must remain a sibling statement, not be swallowed by the if chain.
	source := "f(x)\n" +
		"    if x\n" +
		"        return 1\n" +
		"    return 2\n"
	prog := parse(t, source)
	fn := prog.Functions[0]
	require.Len(t, fn.Body.Statements, 2)
	_, isIf := fn.Body.Statements[0].(*ast.If)
	assert.True(t, isIf)
	_, isReturn := fn.Body.Statements[1].(*ast.Return)
	assert.True(t, isReturn)
}

func TestRightAssociativeAdditive(t *testing.T) {
	prog := parse(t, "f()\n    return 1 + 2 + 3\n")
	ret := prog.Functions[0].Body.Statements[0].(*ast.Return)
	expr := ret.Expression.(*ast.Expression)
	require.Equal(t, ast.Add, expr.Kind)
	// Right-recursive: the right child of the outer add is itself an add.
	_, rightIsAdd := expr.Children[1].(*ast.Expression)
	assert.True(t, rightIsAdd, "additive parsing is right-recursive per the preserved oddity")
}
