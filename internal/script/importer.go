// Package script implements cfscript's script driver (spec.md §2.7, §4.5):
// accept (name, source), run the parse/evaluate pipeline, render
// diagnostics. It also owns import resolution (spec.md §4.3 "Import
// protocol"), since that is the one place the evaluator needs to reach
// back out to the filesystem and the standard library registry.
package script

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cfs-lang/cfscript/internal/evaluator"
	"github.com/cfs-lang/cfscript/internal/parser"
	"github.com/cfs-lang/cfscript/internal/stdlib"
)

// Importer resolves `import … from "source"` against the standard library
// first, then the filesystem (spec.md §4.3 "Import protocol"). It tracks a
// stack of in-flight filesystem loads to detect circular imports (spec.md
// §4.3 "Circular imports are not supported; the implementation must detect
// and reject them (a stack of 'currently loading' sources suffices)").
type Importer struct {
	registry *stdlib.Registry
	baseDir  string
	loading  map[string]bool // currently-loading absolute paths
	cache    map[string]*evaluator.Module
}

// NewImporter creates an Importer rooted at baseDir, the directory relative
// filesystem import paths are resolved against (conventionally the
// directory containing the script that started the run).
func NewImporter(registry *stdlib.Registry, baseDir string) *Importer {
	return &Importer{
		registry: registry,
		baseDir:  baseDir,
		loading:  make(map[string]bool),
		cache:    make(map[string]*evaluator.Module),
	}
}

// Resolve implements evaluator.Importer.
func (im *Importer) Resolve(source string) (*evaluator.Module, *evaluator.RuntimeError) {
	if mod, ok := im.registry.Module(source); ok {
		return &evaluator.Module{Exports: mod}, nil
	}
	return im.resolveFile(source)
}

func (im *Importer) resolveFile(source string) (*evaluator.Module, *evaluator.RuntimeError) {
	path := source
	if filepath.Ext(path) == "" {
		path += ".cfs"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(im.baseDir, path)
	}
	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		return nil, &evaluator.RuntimeError{Kind: evaluator.ErrImport, Message: "cannot resolve import path: " + absErr.Error()}
	}

	if cached, ok := im.cache[abs]; ok {
		return cached, nil
	}
	if im.loading[abs] {
		return nil, &evaluator.RuntimeError{Kind: evaluator.ErrImport, Message: "circular import: " + source}
	}

	data, readErr := os.ReadFile(abs)
	if readErr != nil {
		return nil, &evaluator.RuntimeError{Kind: evaluator.ErrImport, Message: "cannot read import " + strings.TrimSpace(source) + ": " + readErr.Error()}
	}

	im.loading[abs] = true
	defer delete(im.loading, abs)

	p := parser.New(string(data))
	prog, perr := p.ParseProgram()
	if perr != nil {
		return nil, &evaluator.RuntimeError{Kind: evaluator.ErrImport, Pos: perr.Pos, Message: "parse error in import " + source + ": " + perr.Message}
	}

	// Imported scripts run in a fresh symbol table (spec.md §4.3 "executed
	// in a fresh symbol table"), nested under a sub-importer rooted at the
	// imported file's own directory so its own relative imports resolve
	// correctly.
	sub := NewImporter(im.registry, filepath.Dir(abs))
	sub.loading = im.loading // share the in-flight stack across the whole import graph
	sub.cache = im.cache     // share the resolved-module cache too, so a module reachable via two different importers in the same graph still runs only once
	interp := evaluator.New(sub)
	bindGlobals(interp.Global, im.registry)
	if runErr := interp.Run(prog); runErr != nil {
		return nil, &evaluator.RuntimeError{Kind: evaluator.ErrImport, Pos: runErr.Pos, Message: "error running import " + source + ": " + runErr.Message}
	}

	mod := &evaluator.Module{Exports: interp.Global.Bindings()}
	im.cache[abs] = mod
	return mod, nil
}
