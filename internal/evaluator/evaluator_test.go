package evaluator

import (
	"testing"

	"github.com/cfs-lang/cfscript/internal/parser"
)

// noImports is an Importer that rejects every source; most evaluator tests
// never import anything.
type noImports struct{}

func (noImports) Resolve(source string) (*Module, *RuntimeError) {
	return nil, &RuntimeError{Kind: ErrImport, Message: "no modules available: " + source}
}

func run(t *testing.T, src string) (*Interpreter, *RuntimeError) {
	t.Helper()
	p := parser.New(src)
	prog, perr := p.ParseProgram()
	if perr != nil {
		t.Fatalf("parse error: %s", perr.Error())
	}
	it := New(noImports{})
	err := it.Run(prog)
	return it, err
}

func mustRun(t *testing.T, src string) *Interpreter {
	t.Helper()
	it, err := run(t, src)
	if err != nil {
		t.Fatalf("runtime error: %s", err.Error())
	}
	return it
}

func getVar(t *testing.T, it *Interpreter, name string) Value {
	t.Helper()
	v, ok := it.Global.Get(name)
	if !ok {
		t.Fatalf("expected %s to be bound", name)
	}
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	it := mustRun(t, `let x = 1 + 2 * 3`)
	v := getVar(t, it, "x")
	if n, ok := v.(Number); !ok || n != 7 {
		t.Errorf("got %#v, want Number(7)", v)
	}
}

func TestPowerIsLeftAssociative(t *testing.T) {
	it := mustRun(t, `let x = 2 ** 3 ** 2`)
	v := getVar(t, it, "x")
	// left-associative: (2 ** 3) ** 2 == 64
	if n, ok := v.(Number); !ok || n != 64 {
		t.Errorf("got %#v, want Number(64)", v)
	}
}

// `&&`/`||` always produce a Bool, even though they evaluate their right
// operand lazily and that operand may be any truthy/falsy value.
func TestLogicalOperatorsAlwaysProduceBool(t *testing.T) {
	it := mustRun(t, `
let a = 1 && 2
let b = 0 && 2
let c = 0 || "default"
let d = "" || 0
`)
	if v := getVar(t, it, "a"); v.(Bool) != true {
		t.Errorf("a: got %#v, want Bool(true)", v)
	}
	if v := getVar(t, it, "b"); v.(Bool) != false {
		t.Errorf("b: got %#v, want Bool(false)", v)
	}
	if v := getVar(t, it, "c"); v.(Bool) != true {
		t.Errorf("c: got %#v, want Bool(true)", v)
	}
	if v := getVar(t, it, "d"); v.(Bool) != false {
		t.Errorf("d: got %#v, want Bool(false)", v)
	}
}

func TestStructuralEqualityAcrossComposites(t *testing.T) {
	it := mustRun(t, `let same = [1, 2, {a: 3}] == [1, 2, {a: 3}]`)
	v := getVar(t, it, "same")
	if b, ok := v.(Bool); !ok || !bool(b) {
		t.Errorf("got %#v, want Bool(true)", v)
	}
}

func TestClosureCapturesByReference(t *testing.T) {
	it := mustRun(t, `
var counter = 0
fn increment() {
	counter = counter + 1
	return counter
}
let a = increment()
let b = increment()
`)
	if v := getVar(t, it, "a"); v.(Number) != 1 {
		t.Errorf("a: got %#v", v)
	}
	if v := getVar(t, it, "b"); v.(Number) != 2 {
		t.Errorf("b: got %#v", v)
	}
	if v := getVar(t, it, "counter"); v.(Number) != 2 {
		t.Errorf("counter: got %#v", v)
	}
}

func TestRecursion(t *testing.T) {
	it := mustRun(t, `
fn fact(n) {
	if n <= 1 {
		return 1
	}
	return n * fact(n - 1)
}
let x = fact(5)
`)
	if v := getVar(t, it, "x"); v.(Number) != 120 {
		t.Errorf("got %#v, want Number(120)", v)
	}
}

func TestMutualRecursion(t *testing.T) {
	it := mustRun(t, `
fn isEven(n) {
	if n == 0 {
		return true
	}
	return isOdd(n - 1)
}
fn isOdd(n) {
	if n == 0 {
		return false
	}
	return isEven(n - 1)
}
let x = isEven(10)
`)
	if v := getVar(t, it, "x"); v.(Bool) != true {
		t.Errorf("got %#v, want Bool(true)", v)
	}
}

// `?` unwinds an Err to the nearest enclosing function call, which then
// itself evaluates to that Err value rather than propagating further.
func TestFallibleUnwindsToNearestFunctionCall(t *testing.T) {
	it := mustRun(t, `
fn fails() {
	return Err("boom")
}
fn wrapper() {
	let v = fails()?
	return Ok(v)
}
let result = wrapper()
`)
	v := getVar(t, it, "result")
	res, ok := v.(*Result)
	if !ok {
		t.Fatalf("got %#v, want *Result", v)
	}
	if res.Kind != ResultErr {
		t.Errorf("expected ResultErr, got %v", res.Kind)
	}
	if s, ok := res.Value.(Str); !ok || s != "boom" {
		t.Errorf("got payload %#v", res.Value)
	}
}

// An unwind that reaches the top level without an enclosing function call
// aborts the script with a runtime error.
func TestFallibleUnwindAtTopLevelAbortsScript(t *testing.T) {
	_, err := run(t, `let v = Err("oops")?`)
	if err == nil {
		t.Fatal("expected the script to abort")
	}
}

func TestMatchOkErrIdentAndLiteralPatterns(t *testing.T) {
	it := mustRun(t, `
fn classify(r) {
	match r {
		Ok(v) => { return "ok:" + v },
		Err(e) => { return "err:" + e },
	}
}
let a = classify(Ok("good"))
let b = classify(Err("bad"))

let n = 2
var label = ""
match n {
	1 => { label = "one" },
	2 => { label = "two" },
	x => { label = "other" },
}
`)
	if v := getVar(t, it, "a"); v.(Str) != "ok:good" {
		t.Errorf("a: got %#v", v)
	}
	if v := getVar(t, it, "b"); v.(Str) != "err:bad" {
		t.Errorf("b: got %#v", v)
	}
	if v := getVar(t, it, "label"); v.(Str) != "two" {
		t.Errorf("label: got %#v", v)
	}
}

func TestForInOverArraySingleName(t *testing.T) {
	it := mustRun(t, `
var total = 0
for x in [1, 2, 3] {
	total = total + x
}
`)
	if v := getVar(t, it, "total"); v.(Number) != 6 {
		t.Errorf("got %#v, want Number(6)", v)
	}
}

func TestForInOverRangeExclusive(t *testing.T) {
	it := mustRun(t, `
var count = 0
for i in 0..5 {
	count = count + 1
}
`)
	if v := getVar(t, it, "count"); v.(Number) != 5 {
		t.Errorf("got %#v, want Number(5)", v)
	}
}

func TestForInMultiNameDestructuring(t *testing.T) {
	it := mustRun(t, `
var keys = []
var vals = []
for k, v in [[1, 10], [2, 20]] {
	keys = keys + [k]
	vals = vals + [v]
}
`)
	keys := getVar(t, it, "keys").(*Array)
	if len(keys.Elements) != 2 || keys.Elements[0].(Number) != 1 || keys.Elements[1].(Number) != 2 {
		t.Errorf("got keys %#v", keys)
	}
	vals := getVar(t, it, "vals").(*Array)
	if len(vals.Elements) != 2 || vals.Elements[0].(Number) != 10 || vals.Elements[1].(Number) != 20 {
		t.Errorf("got vals %#v", vals)
	}
}

func TestForInDestructuringArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `
for a, b in [[1, 2, 3]] {
	let x = a
}
`)
	if err == nil {
		t.Fatal("expected an arity runtime error")
	}
	if err.Kind != ErrArity {
		t.Errorf("got kind %s, want arity", err.Kind)
	}
}

func TestCompoundAssignmentOperators(t *testing.T) {
	it := mustRun(t, `
var x = 10
x += 5
x -= 2
x *= 2
x /= 13
`)
	v := getVar(t, it, "x")
	if n, ok := v.(Number); !ok || n != 2 {
		t.Errorf("got %#v, want Number(2)", v)
	}
}

func TestMemberAndIndexAssignment(t *testing.T) {
	it := mustRun(t, `
let obj = {a: 1}
obj.a = 2
obj.b = 3

let arr = [1, 2, 3]
arr[0] = 99
`)
	obj := getVar(t, it, "obj").(*Object)
	a, _ := obj.Get("a")
	if a.(Number) != 2 {
		t.Errorf("obj.a: got %#v", a)
	}
	b, _ := obj.Get("b")
	if b.(Number) != 3 {
		t.Errorf("obj.b: got %#v", b)
	}
	arr := getVar(t, it, "arr").(*Array)
	if arr.Elements[0].(Number) != 99 {
		t.Errorf("arr[0]: got %#v", arr.Elements[0])
	}
}

func TestAssignToConstantIsRuntimeError(t *testing.T) {
	_, err := run(t, `
let x = 1
x = 2
`)
	if err == nil {
		t.Fatal("expected a const assignment error")
	}
	if err.Kind != ErrName {
		t.Errorf("got kind %s, want name", err.Kind)
	}
}

// importer stub supplying a fixed export set, used to exercise star and
// named import binding without going through internal/script.
type fixedExports struct {
	exports map[string]Value
}

func (f fixedExports) Resolve(string) (*Module, *RuntimeError) {
	return &Module{Exports: f.exports}, nil
}

func TestImportNamedBindings(t *testing.T) {
	p := parser.New(`import greeting, shout as loud from "whatever"`)
	prog, perr := p.ParseProgram()
	if perr != nil {
		t.Fatalf("parse error: %s", perr.Error())
	}
	it := New(fixedExports{exports: map[string]Value{
		"greeting": Str("hi"),
		"shout":    Str("HI"),
	}})
	if err := it.Run(prog); err != nil {
		t.Fatalf("runtime error: %s", err.Error())
	}
	if v := getVar(t, it, "greeting"); v.(Str) != "hi" {
		t.Errorf("greeting: got %#v", v)
	}
	if v := getVar(t, it, "loud"); v.(Str) != "HI" {
		t.Errorf("loud: got %#v", v)
	}
}

func TestImportStarNamespaced(t *testing.T) {
	p := parser.New(`import * as m from "whatever"`)
	prog, perr := p.ParseProgram()
	if perr != nil {
		t.Fatalf("parse error: %s", perr.Error())
	}
	it := New(fixedExports{exports: map[string]Value{"pi": Number(3.14)}})
	if err := it.Run(prog); err != nil {
		t.Fatalf("runtime error: %s", err.Error())
	}
	ns := getVar(t, it, "m").(*Object)
	pi, ok := ns.Get("pi")
	if !ok || pi.(Number) != 3.14 {
		t.Errorf("got %#v", pi)
	}
}

func TestUndefinedNameIsRuntimeError(t *testing.T) {
	_, err := run(t, `let x = undefined_thing`)
	if err == nil {
		t.Fatal("expected a name error")
	}
	if err.Kind != ErrName {
		t.Errorf("got kind %s, want name", err.Kind)
	}
}

func TestArityMismatchOnCallIsRuntimeError(t *testing.T) {
	_, err := run(t, `
fn add(a, b) { return a + b }
let x = add(1)
`)
	if err == nil {
		t.Fatal("expected an arity error")
	}
	if err.Kind != ErrArity {
		t.Errorf("got kind %s, want arity", err.Kind)
	}
}
