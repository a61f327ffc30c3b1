package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AshTS/CLRSPseudocode/internal/lexer"
	"github.com/AshTS/CLRSPseudocode/internal/token"
)

func newTokenizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <file>",
		Short: "Print the token stream for a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}
			lex := lexer.New(args[0], source)
			for {
				tok := lex.Next()
				fmt.Fprintln(cmd.OutOrStdout(), tok)
				if tok.Kind == token.EOF {
					break
				}
			}
			printDiagnostics(lex.Diagnostics())
			return nil
		},
	}
}
