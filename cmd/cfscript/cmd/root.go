package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cfscript",
	Short: "cfscript interpreter",
	Long: `cfscript is a small dynamically-typed scripting language: a hand-written
combinator parser over a tagged AST, a tree-walking evaluator with
lexically-scoped closures, and a fallible Result type threaded through
expression evaluation.

The one contractual form is:

  cfscript run <path>

An invocation that matches no subcommand prints "Invalid command!" and
exits non-zero.`,
	Version:            Version,
	Args:               cobra.ArbitraryArgs,
	SilenceUsage:       true,
	SilenceErrors:      true,
	DisableFlagParsing: false,
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println("Invalid command!")
		os.Exit(1)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
