package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AshTS/CLRSPseudocode/internal/interp"
)

func newInterpretCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interpret <file>",
		Short: "Run a source file with the tree-walking interpreter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := parseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse failed")
			}
			entry, err := entryFunction(prog)
			if err != nil {
				return err
			}
			in := interp.New(prog, interp.WithOutput(cmd.OutOrStdout()))
			result, err := in.Run(entry.Name.Text, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "=> %s\n", result)
			return nil
		},
	}
}
