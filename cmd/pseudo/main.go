// Command pseudo tokenizes, parses, lowers, interprets, or steps through
// the pseudocode language's programs, depending on subcommand.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pseudo",
		Short:         "A front end and single-step VM for the CLRS-style pseudocode language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newTokenizeCommand(),
		newParseCommand(),
		newInterpretCommand(),
		newCompileCommand(),
		newVMRunCommand(),
	)
	return root
}

// Test is the CLI's real entry point, named so it can be invoked directly
// from integration tests without shelling out to a built binary.
func Test(args []string) int {
	root := newRootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(Test(os.Args[1:]))
}
