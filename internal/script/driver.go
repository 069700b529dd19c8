package script

import (
	"io"
	"path/filepath"

	"github.com/cfs-lang/cfscript/internal/diagnostic"
	"github.com/cfs-lang/cfscript/internal/evaluator"
	"github.com/cfs-lang/cfscript/internal/parser"
	"github.com/cfs-lang/cfscript/internal/stdlib"
)

// Result is the outcome of running one script (spec.md §4.5 "accept
// (name, source) and run the parse/evaluate pipeline to a single pass/fail
// outcome, with a rendered diagnostic on failure").
type Result struct {
	Name       string
	Diagnostic *diagnostic.Diagnostic // nil on success
}

// Success reports whether the script ran to completion without a fatal
// parse or runtime error.
func (r Result) Success() bool { return r.Diagnostic == nil }

// Rendered returns the diagnostic's "line | source" rendering against
// source, or "" on success.
func (r Result) Rendered(source string) string {
	if r.Diagnostic == nil {
		return ""
	}
	return r.Diagnostic.Render(r.Name, source)
}

// Driver wires a standard-library Registry to the parse/evaluate pipeline
// (spec.md §4.5). One Driver can run many scripts; each run gets its own
// Importer so cross-script state (the "currently loading" stack, the
// resolved-module cache) never leaks between runs.
type Driver struct {
	Registry *stdlib.Registry
}

// NewDriver builds a Driver whose `print`/`input` globals read and write
// stdout/stdin (spec.md §6 "print"/"input").
func NewDriver(stdout, stdin io.ReadWriter) *Driver {
	return &Driver{Registry: stdlib.NewRegistry(stdout, stdin)}
}

// Run parses and evaluates source, named name, with relative imports
// resolved against baseDir (spec.md §4.5 "Running a script: parse, then
// (if parsing succeeded) evaluate").
func (d *Driver) Run(name, baseDir, source string) Result {
	p := parser.New(source)
	prog, perr := p.ParseProgram()
	if perr != nil {
		return Result{Name: name, Diagnostic: diagnostic.FromParseError(perr)}
	}

	im := NewImporter(d.Registry, baseDir)
	interp := evaluator.New(im)
	bindGlobals(interp.Global, d.Registry)

	if runErr := interp.Run(prog); runErr != nil {
		return Result{Name: name, Diagnostic: diagnostic.FromRuntimeError(runErr)}
	}
	return Result{Name: name}
}

// RunFile reads path and runs it, using its containing directory as the
// base for relative imports (spec.md §4.3 "relative to the importing
// script's own location").
func (d *Driver) RunFile(path string, source string) Result {
	return d.Run(path, filepath.Dir(path), source)
}

// bindGlobals installs the always-available globals (`print`, `input`)
// into a fresh script's top-level scope before any statement runs (spec.md
// §6 "Global functions available without import").
func bindGlobals(env *evaluator.Environment, reg *stdlib.Registry) {
	for name, v := range reg.Globals() {
		env.DefineVariable(name, v, true)
	}
}
