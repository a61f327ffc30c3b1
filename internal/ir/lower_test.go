package ir_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/AshTS/CLRSPseudocode/internal/ir"
	"github.com/AshTS/CLRSPseudocode/internal/lexer"
	"github.com/AshTS/CLRSPseudocode/internal/parser"
)

func lower(t *testing.T, source string) *ir.Function {
	t.Helper()
	lex := lexer.New("test.pseudo", source)
	prog, diags, err := parser.ParseDocument(lex)
	require.NoError(t, err, diags.String())
	functions, diags, err := ir.Lower(prog, "test.pseudo")
	require.NoError(t, err, diags.String())
	require.Len(t, functions, 1)
	return functions[0]
}

func instructionStrings(fn *ir.Function) []string {
	out := make([]string, len(fn.Instructions))
	for i, inst := range fn.Instructions {
		out[i] = inst.Kind.String()
	}
	return out
}

func TestLowerIfElseBranchesRejoinAtEnd(t *testing.T) {
	fn := lower(t, "f(x)\n"+
		"    if x\n"+
		"        return 1\n"+
		"    else\n"+
		"        return 2\n")

	want := []string{
		"branch     x, 1, 3",
		"return     1",
		"goto       4",
		"return     2",
		"return     None",
	}
	if diff := cmp.Diff(want, instructionStrings(fn)); diff != "" {
		t.Errorf("unexpected instruction listing (-want +got):\n%s", diff)
	}
}

func TestLowerWhileLoopsBackToCondition(t *testing.T) {
	fn := lower(t, "f(x)\n"+
		"    while x\n"+
		"        x = x\n")

	require.Len(t, fn.Instructions, 4)
	_, ok := fn.Instructions[0].Kind.(ir.Branch)
	require.True(t, ok)
	gotoInst, ok := fn.Instructions[2].Kind.(ir.Goto)
	require.True(t, ok)
	require.Equal(t, 0, gotoInst.Target, "the loop body must jump back to the condition check")
}

func TestLowerShortCircuitAndSwapsBranchTargetsFromOr(t *testing.T) {
	andFn := lower(t, "f(a, b)\n    return a and b\n")
	orFn := lower(t, "f(a, b)\n    return a or b\n")

	andBranch := firstBranch(t, andFn)
	orBranch := firstBranch(t, orFn)

	require.Equal(t, [2]int{andBranch.True, andBranch.False}, [2]int{orBranch.False, orBranch.True},
		"or must wire its branch targets as the mirror image of and's")
}

func firstBranch(t *testing.T, fn *ir.Function) ir.Branch {
	t.Helper()
	for _, inst := range fn.Instructions {
		if b, ok := inst.Kind.(ir.Branch); ok {
			return b
		}
	}
	t.Fatal("no branch instruction found")
	return ir.Branch{}
}
