package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AshTS/CLRSPseudocode/internal/interp"
	"github.com/AshTS/CLRSPseudocode/internal/lexer"
	"github.com/AshTS/CLRSPseudocode/internal/parser"
	"github.com/AshTS/CLRSPseudocode/internal/value"
)

func parse(t *testing.T, source string) *interp.Interpreter {
	t.Helper()
	lex := lexer.New("test.pseudo", source)
	prog, diags, err := parser.ParseDocument(lex)
	require.NoError(t, err, diags.String())
	return interp.New(prog)
}

func TestCallReturnsDirectlyOnGoCallStack(t *testing.T) {
	in := parse(t, "main()\n"+
		"    return double(21)\n"+
		"double(n)\n"+
		"    return n * 2\n")

	result, err := in.Run("main", nil)
	require.NoError(t, err)
	assert.Equal(t, value.Number(42), result)
}

func TestPrintGoesToConfiguredWriter(t *testing.T) {
	lex := lexer.New("test.pseudo", "main()\n    Print(1, 2)\n    return\n")
	prog, diags, err := parser.ParseDocument(lex)
	require.NoError(t, err, diags.String())

	var buf bytes.Buffer
	in := interp.New(prog, interp.WithOutput(&buf))
	_, err = in.Run("main", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1, 2")
}

func TestReturnUnwindsOutOfNestedBlocks(t *testing.T) {
	in := parse(t, "f(x)\n"+
		"    while x\n"+
		"        if x\n"+
		"            return 99\n"+
		"    return 0\n")

	result, err := in.Run("f", []value.Value{value.Boolean(true)})
	require.NoError(t, err)
	assert.Equal(t, value.Number(99), result, "a return nested inside while+if must unwind all the way out")
}

func TestForReverseCountsDown(t *testing.T) {
	in := parse(t, "f()\n"+
		"    total = 0\n"+
		"    for i = 3 down to 1\n"+
		"        total = total + i\n"+
		"    return total\n")

	result, err := in.Run("f", nil)
	require.NoError(t, err)
	assert.Equal(t, value.Number(6), result)
}

func TestArraysShareMutableStateAcrossCalls(t *testing.T) {
	in := parse(t, "main()\n"+
		"    a = Array(1, 2, 3)\n"+
		"    mutate(a)\n"+
		"    return a[1]\n"+
		"mutate(arr)\n"+
		"    arr[1] = 99\n"+
		"    return\n")

	result, err := in.Run("main", nil)
	require.NoError(t, err)
	assert.Equal(t, value.Number(99), result, "arrays are reference values, so a callee's mutation is visible to the caller")
}

func TestUndefinedVariableSuggestsNearestName(t *testing.T) {
	in := parse(t, "f(count)\n    return coutn\n")
	_, err := in.Run("f", []value.Value{value.Number(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coutn")
	assert.Contains(t, err.Error(), "did you mean 'count'?")
}

func TestUndefinedFunctionErrorNamesCallee(t *testing.T) {
	in := parse(t, "main()\n    return doubel(1)\n")
	_, err := in.Run("main", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doubel")
}

func TestAssignmentToBooleanLiteralFails(t *testing.T) {
	in := parse(t, "f()\n    True = 5\n    return True\n")
	_, err := in.Run("f", nil)
	require.Error(t, err, "True/False are immutable, matching the VM back end's rejection of assigning to an ir.Immediate")
	assert.Contains(t, err.Error(), "immutable")
}
