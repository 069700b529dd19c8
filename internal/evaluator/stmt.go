package evaluator

import (
	"strconv"

	"github.com/cfs-lang/cfscript/internal/ast"
	"github.com/cfs-lang/cfscript/internal/token"
)

// flowKind tags how a statement sequence terminated: fall-through or an
// in-flight `return` unwinding to the nearest function-call frame (spec.md
// §4.3 "Return unwinds to the nearest enclosing function-call frame").
type flowKind int

const (
	flowNone flowKind = iota
	flowReturn
)

type flow struct {
	kind  flowKind
	value Value
}

// Interpreter tree-walks a parsed Program. It also owns import resolution
// (spec.md §4.3 "Import protocol"), threaded through so native `import`
// handling can load sibling scripts.
type Interpreter struct {
	Global   *Environment
	Importer Importer
}

// Importer resolves an import source to bindings, either a built-in module
// or a filesystem script (spec.md §4.3 "Import protocol").
type Importer interface {
	Resolve(source string) (*Module, *RuntimeError)
}

// Module is the resolved result of an import: either a standard-library
// module's exported bindings, or another script's top-level scope.
type Module struct {
	Exports map[string]Value
}

// New creates an Interpreter with a fresh global scope.
func New(importer Importer) *Interpreter {
	return &Interpreter{Global: NewEnvironment(), Importer: importer}
}

// Run evaluates prog in the interpreter's global scope (spec.md §4.3
// "Program evaluation pushes the global scope").
func (it *Interpreter) Run(prog *ast.Program) *RuntimeError {
	for _, stmt := range prog.Statements {
		fl, err := it.evalStatement(stmt, it.Global)
		if err != nil {
			if err.isFallibleUnwind() {
				return &RuntimeError{Kind: ErrType, Pos: err.Pos, Message: "`?` on Err aborts the script: " + err.Result.Console()}
			}
			return err
		}
		if fl != nil && fl.kind == flowReturn {
			return nil // a bare top-level `return` ends the script early
		}
	}
	return nil
}

// evalStatement dispatches on node type (spec.md §4.3 "Statement
// evaluation").
func (it *Interpreter) evalStatement(node ast.Statement, env *Environment) (*flow, *RuntimeError) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		if _, isComment := n.Expression.(*ast.Comment); isComment {
			return nil, nil
		}
		_, err := it.evalExpression(n.Expression, env)
		return nil, err
	case *ast.VariableDeclaration:
		return nil, it.evalVariableDeclaration(n, env)
	case *ast.FunctionDeclaration:
		fn := &Function{
			Name: n.Name, Params: n.Params, Body: n.Body, Closure: env,
		}
		env.DefineFunction(n.Name, fn)
		return nil, nil
	case *ast.BlockStatement:
		return it.evalBlock(n, env)
	case *ast.IfStatement:
		return it.evalIf(n, env)
	case *ast.WhileStatement:
		return it.evalWhile(n, env)
	case *ast.ForStatement:
		return it.evalFor(n, env)
	case *ast.MatchStatement:
		return it.evalMatch(n, env)
	case *ast.ReturnStatement:
		if n.Argument == nil {
			return &flow{kind: flowReturn, value: Nil{}}, nil
		}
		v, err := it.evalExpression(n.Argument, env)
		if err != nil {
			return nil, err
		}
		return &flow{kind: flowReturn, value: v}, nil
	case *ast.ImportDeclaration:
		return nil, it.evalImport(n, env)
	default:
		return nil, nil
	}
}

func (it *Interpreter) evalVariableDeclaration(n *ast.VariableDeclaration, env *Environment) *RuntimeError {
	isConst := n.Keyword.String() == "let"
	for _, d := range n.Declarations {
		v, err := it.evalExpression(d.Value, env)
		if err != nil {
			return err
		}
		env.DefineVariable(d.Name, v, isConst)
	}
	return nil
}

// evalBlock pushes a fresh scope, runs its body, and pops the scope
// regardless of how it terminates (spec.md §4.3 "Block pushes a fresh
// inner scope on entry, pops on exit regardless of how the block
// terminates").
func (it *Interpreter) evalBlock(n *ast.BlockStatement, env *Environment) (*flow, *RuntimeError) {
	inner := env.NewEnclosed()
	return it.evalStatements(n.Body, inner)
}

func (it *Interpreter) evalStatements(stmts []ast.Statement, env *Environment) (*flow, *RuntimeError) {
	for _, s := range stmts {
		fl, err := it.evalStatement(s, env)
		if err != nil {
			return nil, err
		}
		if fl != nil {
			return fl, nil
		}
	}
	return nil, nil
}

func (it *Interpreter) evalIf(n *ast.IfStatement, env *Environment) (*flow, *RuntimeError) {
	test, err := it.evalExpression(n.Test, env)
	if err != nil {
		return nil, err
	}
	if Truthy(test) {
		return it.evalBlock(n.Body, env)
	}
	if n.Alternate != nil {
		return it.evalStatement(n.Alternate, env)
	}
	return nil, nil
}

func (it *Interpreter) evalWhile(n *ast.WhileStatement, env *Environment) (*flow, *RuntimeError) {
	for {
		test, err := it.evalExpression(n.Test, env)
		if err != nil {
			return nil, err
		}
		if !Truthy(test) {
			return nil, nil
		}
		fl, err := it.evalBlock(n.Body, env)
		if err != nil {
			return nil, err
		}
		if fl != nil {
			return fl, nil
		}
	}
}

// evalFor evaluates its source once, then iterates left-to-right (spec.md
// §4.3 "for…in evaluates its source once ... Arrays iterate
// left-to-right").
func (it *Interpreter) evalFor(n *ast.ForStatement, env *Environment) (*flow, *RuntimeError) {
	src, err := it.evalExpression(n.Source, env)
	if err != nil {
		return nil, err
	}

	var items []Value
	switch s := src.(type) {
	case *rangeValue:
		items, err = s.values(n.Position, nil)
		if err != nil {
			return nil, err
		}
	case *Array:
		items = s.Elements
	default:
		return nil, typeMismatch("for…in", "a Range or Array", src)
	}

	for _, item := range items {
		iterEnv := env.NewEnclosed()
		if bindErr := bindForNames(n.Names, item, iterEnv, n.Position); bindErr != nil {
			return nil, bindErr
		}
		fl, err := it.evalStatements(n.Body.Body, iterEnv)
		if err != nil {
			return nil, err
		}
		if fl != nil {
			return fl, nil
		}
	}
	return nil, nil
}

// bindForNames implements multi-name destructuring (spec.md §4.1 "multiple
// bound names are used for array-of-tuples destructuring"). A single name
// binds the whole item; multiple names require item to be an *Array of
// exactly that length (SPEC_FULL.md Open Question #5: arity mismatches are
// a runtime error, detected per iteration).
func bindForNames(names []string, item Value, env *Environment, pos token.Position) *RuntimeError {
	if len(names) == 1 {
		env.DefineVariable(names[0], item, false)
		return nil
	}
	arr, ok := item.(*Array)
	if !ok {
		return &RuntimeError{Kind: ErrType, Pos: pos, Message: "for…in destructuring requires array-of-tuples elements"}
	}
	if len(arr.Elements) != len(names) {
		return &RuntimeError{Kind: ErrArity, Pos: pos, Message: "for…in destructuring expects a tuple of length " + strconv.Itoa(len(names))}
	}
	for i, name := range names {
		env.DefineVariable(name, arr.Elements[i], false)
	}
	return nil
}

func (it *Interpreter) evalMatch(n *ast.MatchStatement, env *Environment) (*flow, *RuntimeError) {
	test, err := it.evalExpression(n.Test, env)
	if err != nil {
		return nil, err
	}
	for _, c := range n.Cases {
		matched, bindings, mErr := matchPattern(c.Pattern, test, it, env)
		if mErr != nil {
			return nil, mErr
		}
		if !matched {
			continue
		}
		caseEnv := env.NewEnclosed()
		for name, v := range bindings {
			caseEnv.DefineVariable(name, v, false)
		}
		return it.evalStatements(c.Body.Body, caseEnv)
	}
	return nil, nil
}

func matchPattern(p ast.Pattern, v Value, it *Interpreter, env *Environment) (bool, map[string]Value, *RuntimeError) {
	switch p.Kind {
	case ast.PatternIdent:
		return true, map[string]Value{p.Name: v}, nil
	case ast.PatternOk:
		res, ok := v.(*Result)
		if !ok || res.Kind != ResultOk {
			return false, nil, nil
		}
		return true, map[string]Value{p.Name: res.Value}, nil
	case ast.PatternErr:
		res, ok := v.(*Result)
		if !ok || res.Kind != ResultErr {
			return false, nil, nil
		}
		return true, map[string]Value{p.Name: res.Value}, nil
	default: // PatternLiteral
		lit, err := it.evalExpression(p.Literal, env)
		if err != nil {
			return false, nil, err
		}
		return StructuralEqual(lit, v), nil, nil
	}
}
