// Package stdlib implements cfscript's built-in modules (spec.md §4.4,
// §6's "Built-in modules" table): math, fs, time, http, json, env, thread,
// collections, input_output, plus the two always-available globals print
// and input. Registration mirrors the shape of the teacher's
// internal/interp/builtins/registry.go — name, category, adapter — minus
// case-insensitive lookup, since cfscript is case-sensitive.
package stdlib

import (
	"fmt"
	"io"
	"sort"

	"github.com/cfs-lang/cfscript/internal/evaluator"
)

// Category groups a built-in for introspection/documentation, mirroring
// the teacher's Category enum.
type Category string

const (
	CategoryMath        Category = "math"
	CategoryFS          Category = "fs"
	CategoryTime        Category = "time"
	CategoryHTTP        Category = "http"
	CategoryJSON        Category = "json"
	CategoryEnv         Category = "env"
	CategoryThread      Category = "thread"
	CategoryCollections Category = "collections"
	CategoryIO          Category = "io"
)

// FunctionInfo holds one registered adapter.
type FunctionInfo struct {
	Name     string
	Fn       *evaluator.NativeFunction
	Category Category
}

// Registry is the set of modules cfscript ships (spec.md §4.4 "Each module
// is a mapping name → (arity-checked adapter)"). No module holds mutable
// state visible to the language.
type Registry struct {
	modules   map[string]map[string]evaluator.Value
	functions map[string]*FunctionInfo
}

// NewRegistry builds the full standard library.
func NewRegistry(stdout, stdin io.ReadWriter) *Registry {
	r := &Registry{
		modules:   make(map[string]map[string]evaluator.Value),
		functions: make(map[string]*FunctionInfo),
	}
	r.registerMath()
	r.registerFS()
	r.registerTime()
	r.registerHTTP()
	r.registerJSON()
	r.registerEnv()
	r.registerThread()
	r.registerCollections()
	r.registerIO(stdout, stdin)
	return r
}

func (r *Registry) ensureModule(name string) map[string]evaluator.Value {
	m, ok := r.modules[name]
	if !ok {
		m = make(map[string]evaluator.Value)
		r.modules[name] = m
	}
	return m
}

func (r *Registry) register(module, name string, category Category, minArgs, maxArgs int, fn func([]evaluator.Value) (evaluator.Value, *evaluator.RuntimeError)) {
	native := &evaluator.NativeFunction{
		Name: module + "." + name, MinArgs: minArgs, MaxArgs: maxArgs, Fn: fn,
	}
	r.ensureModule(module)[name] = native
	r.functions[module+"."+name] = &FunctionInfo{Name: name, Fn: native, Category: category}
}

func (r *Registry) registerConst(module, name string, v evaluator.Value) {
	r.ensureModule(module)[name] = v
}

// Module looks up a built-in module's exported bindings by name (spec.md
// §4.3 "If source names a built-in module, the module's import handler is
// consulted").
func (r *Registry) Module(name string) (map[string]evaluator.Value, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Globals returns the always-available functions (spec.md §6 "Global
// functions"): print and input.
func (r *Registry) Globals() map[string]evaluator.Value {
	out := make(map[string]evaluator.Value)
	for name, v := range r.modules["__global__"] {
		out[name] = v
	}
	return out
}

// FunctionNames lists every registered adapter, sorted, for documentation
// or `--list-builtins`-style tooling.
func (r *Registry) FunctionNames() []string {
	names := make([]string, 0, len(r.functions))
	for n := range r.functions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// checkNumber is one of spec.md §4.4's three shared adapter helpers ("check
// argument is number").
func checkNumber(args []evaluator.Value, i int) (float64, *evaluator.RuntimeError) {
	n, ok := args[i].(evaluator.Number)
	if !ok {
		return 0, &evaluator.RuntimeError{Kind: evaluator.ErrType, Message: fmt.Sprintf("argument %d must be a Number", i+1)}
	}
	return float64(n), nil
}

// checkString is the second shared helper ("check argument is string").
func checkString(args []evaluator.Value, i int) (string, *evaluator.RuntimeError) {
	s, ok := args[i].(evaluator.Str)
	if !ok {
		return "", &evaluator.RuntimeError{Kind: evaluator.ErrType, Message: fmt.Sprintf("argument %d must be a String", i+1)}
	}
	return string(s), nil
}

func ok(v evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
	return &evaluator.Result{Kind: evaluator.ResultOk, Value: v}, nil
}

func errResult(msg string) (evaluator.Value, *evaluator.RuntimeError) {
	return &evaluator.Result{Kind: evaluator.ResultErr, Value: evaluator.Str(msg)}, nil
}
