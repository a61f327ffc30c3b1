package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AshTS/CLRSPseudocode/internal/ir"
)

func newCompileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <file>",
		Short: "Lower a source file to IR and print the instruction listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := parseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse failed")
			}
			functions, diags, err := ir.Lower(prog, args[0])
			printDiagnostics(diags)
			if err != nil {
				return fmt.Errorf("lowering failed")
			}
			for _, fn := range functions {
				fmt.Fprint(cmd.OutOrStdout(), fn)
			}
			return nil
		},
	}
}
