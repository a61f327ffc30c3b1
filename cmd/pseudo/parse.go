package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and print its parse tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := parseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse failed")
			}
			dumpProgram(cmd.OutOrStdout(), prog)
			return nil
		},
	}
}
