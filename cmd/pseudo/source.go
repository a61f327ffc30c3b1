package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/AshTS/CLRSPseudocode/internal/ast"
	"github.com/AshTS/CLRSPseudocode/internal/diag"
	"github.com/AshTS/CLRSPseudocode/internal/lexer"
	"github.com/AshTS/CLRSPseudocode/internal/parser"
)

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading "+path)
	}
	return string(data), nil
}

// parseFile tokenizes and parses path, printing any diagnostics to stderr
// regardless of outcome, per §4.1/§4.2's accumulate-and-report posture.
func parseFile(path string) (*ast.Program, error) {
	source, err := readSource(path)
	if err != nil {
		return nil, err
	}
	lex := lexer.New(path, source)
	prog, diags, err := parser.ParseDocument(lex)
	printDiagnostics(diags)
	return prog, err
}

func printDiagnostics(diags diag.List) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

// entryFunction picks the function a whole-program run starts from: the one
// literally named Test, the convention the original's harness used.
func entryFunction(prog *ast.Program) (*ast.Function, error) {
	for _, fn := range prog.Functions {
		if fn.Name.Text == "Test" {
			return fn, nil
		}
	}
	return nil, fmt.Errorf("no function named 'Test' defined")
}
