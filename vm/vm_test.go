package vm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AshTS/CLRSPseudocode/internal/ir"
	"github.com/AshTS/CLRSPseudocode/internal/lexer"
	"github.com/AshTS/CLRSPseudocode/internal/parser"
	"github.com/AshTS/CLRSPseudocode/internal/value"
	"github.com/AshTS/CLRSPseudocode/vm"
)

func lowerAll(t *testing.T, source string) []*ir.Function {
	t.Helper()
	lex := lexer.New("test.pseudo", source)
	prog, diags, err := parser.ParseDocument(lex)
	require.NoError(t, err, diags.String())
	functions, diags, err := ir.Lower(prog, "test.pseudo")
	require.NoError(t, err, diags.String())
	return functions
}

func runToCompletion(t *testing.T, rt *vm.Runtime) {
	t.Helper()
	for i := 0; !rt.IsDone(); i++ {
		require.NoError(t, rt.SingleStep())
		require.Less(t, i, 100000, "runaway execution")
	}
}

func TestCallAndReturnAcrossFrames(t *testing.T) {
	functions := lowerAll(t, "main()\n"+
		"    return double(21)\n"+
		"double(n)\n"+
		"    return n * 2\n")

	rt, err := vm.New(functions)
	require.NoError(t, err)
	require.NoError(t, rt.StartExecution("main"))

	runToCompletion(t, rt)
	require.True(t, rt.IsDone())
}

func TestPrintGoesToConfiguredWriter(t *testing.T) {
	functions := lowerAll(t, "main()\n"+
		"    Print(1, 2)\n"+
		"    return\n")

	var buf bytes.Buffer
	rt, err := vm.New(functions, vm.WithOutput(&buf))
	require.NoError(t, err)
	require.NoError(t, rt.StartExecution("main"))
	runToCompletion(t, rt)

	require.Contains(t, buf.String(), "1, 2")
}

func TestVisibleStepAdvancesByLineNotByInstruction(t *testing.T) {
	functions := lowerAll(t, "main()\n"+
		"    while False\n"+
		"        return 1\n"+
		"    return 2\n")

	rt, err := vm.New(functions)
	require.NoError(t, err)
	require.NoError(t, rt.StartExecution("main"))

	var lines []int
	for !rt.IsDone() {
		require.NoError(t, rt.VisibleStep())
		if top := rt.Top(); top != nil {
			if inst := top.NextInstruction(); inst != nil {
				lines = append(lines, inst.Line)
			}
		}
	}
	require.NotEmpty(t, lines)
}

func TestUndefinedFunctionSuggestsNearestName(t *testing.T) {
	functions := lowerAll(t, "mian()\n    return 1\n")
	rt, err := vm.New(functions)
	require.NoError(t, err)

	err = rt.StartExecution("main")
	require.Error(t, err)
	d, ok := vm.AsDiagnostic(err)
	require.True(t, ok)
	require.Contains(t, d.String(), "mian")
}

func TestArrayIsSharedBetweenAliases(t *testing.T) {
	functions := lowerAll(t, "main()\n"+
		"    a = Array(1, 2, 3)\n"+
		"    b = a\n"+
		"    b[1] = 99\n"+
		"    return a[1]\n")

	rt, err := vm.New(functions)
	require.NoError(t, err)
	require.NoError(t, rt.StartExecution("main"))
	runToCompletion(t, rt)

	result, ok := rt.Result()
	require.True(t, ok)
	require.Equal(t, value.Number(99), result, "b[1]=99 must be visible through a, since they share the same array")
}
