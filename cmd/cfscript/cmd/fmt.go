package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cfs-lang/cfscript/internal/diagnostic"
	"github.com/cfs-lang/cfscript/internal/parser"
)

// fmtCmd re-renders a parsed program through the AST's own Display/String
// logic, a minifier/formatter in the spirit of the original source's
// minify.rs: parse once, print the tree back out, and whitespace/comment
// noise that didn't make it into the AST is gone.
var fmtCmd = &cobra.Command{
	Use:   "fmt <path>",
	Short: "Re-render a cfscript file from its parsed AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(_ *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	p := parser.New(string(source))
	prog, perr := p.ParseProgram()
	if perr != nil {
		d := diagnostic.FromParseError(perr)
		fmt.Fprint(os.Stderr, d.Render(path, string(source)))
		os.Exit(1)
	}

	fmt.Print(prog.String())
	return nil
}
