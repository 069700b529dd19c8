package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/cfs-lang/cfscript/internal/parser"
	"github.com/cfs-lang/cfscript/internal/script"
)

var dumpAST bool

var runCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "Run a cfscript file",
	Long: `Execute a cfscript (.cfs) program from a file.

Examples:
  cfscript run script.cfs
  cfscript run --dump-ast script.cfs`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before evaluating (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if dumpAST {
		p := parser.New(string(source))
		prog, perr := p.ParseProgram()
		if perr != nil {
			fmt.Fprintln(os.Stderr, perr.Error())
			os.Exit(1)
		}
		fmt.Printf("%# v\n", pretty.Formatter(prog))
	}

	driver := script.NewDriver(stdoutWriter{}, stdinReader{})
	result := driver.RunFile(path, string(source))
	if !result.Success() {
		fmt.Fprint(os.Stderr, result.Rendered(string(source)))
		os.Exit(1)
	}
	return nil
}
