// Package evaluator tree-walks a parsed cfscript program (spec.md §4.3).
// The split mirrors the teacher's interp package: a Value tagged interface
// for runtime data, an Environment for lexical scoping, and the
// Interpreter's evalStatement/evalExpression methods dispatching on AST node
// type.
package evaluator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cfs-lang/cfscript/internal/ast"
)

// Value is any runtime cfscript value.
type Value interface {
	Type() string
	Console() string // console/template rendering, spec.md §4.3 "TemplateLiteral"
}

// Number is cfscript's sole numeric type, a 64-bit float (SPEC_FULL.md Open
// Question #1).
type Number float64

func (Number) Type() string { return "Number" }
func (n Number) Console() string {
	f := float64(n)
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Str is cfscript's string type — already-decoded fragment text, never the
// raw source spelling.
type Str string

func (Str) Type() string      { return "String" }
func (s Str) Console() string { return string(s) }

// Bool is cfscript's boolean type.
type Bool bool

func (Bool) Type() string { return "bool" }
func (b Bool) Console() string {
	if b {
		return "true"
	}
	return "false"
}

// Nil is cfscript's unit/absent value.
type Nil struct{}

func (Nil) Type() string      { return "Nil" }
func (Nil) Console() string   { return "nil" }

// Array is an ordered, mutable, heterogeneous sequence.
type Array struct {
	Elements []Value
}

func (*Array) Type() string { return "Array" }
func (a *Array) Console() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = renderNested(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Object is an insertion-ordered string-keyed map.
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *Object) Len() int { return len(o.keys) }

func (*Object) Type() string { return "Object" }
func (o *Object) Console() string {
	parts := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		parts = append(parts, k+": "+renderNested(o.values[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func renderNested(v Value) string {
	if s, ok := v.(Str); ok {
		return strconv.Quote(string(s))
	}
	return v.Console()
}

// ResultKind tags a Result as Ok or Err.
type ResultKind int

const (
	ResultOk ResultKind = iota
	ResultErr
)

// Result is the Ok(v)/Err(x) value variant used by fallibility (spec.md
// §3 "Ok"/"Err", GLOSSARY "Fallibility").
type Result struct {
	Kind  ResultKind
	Value Value
}

func (*Result) Type() string { return "Result" }
func (r *Result) Console() string {
	if r.Kind == ResultOk {
		return "Ok(" + renderNested(r.Value) + ")"
	}
	return "Err(" + renderNested(r.Value) + ")"
}

// Function is a user-defined closure: parameters plus a body, closing over
// the environment in which it was declared by reference (spec.md §9:
// closures capture by reference, not by snapshot, so mutual recursion works
// without cycles).
type Function struct {
	Name       string
	Params     []ast.Param
	Body       ast.Statement
	IsShortcut bool
	Closure    *Environment
}

func (*Function) Type() string { return "Function" }
func (f *Function) Console() string {
	if f.Name != "" {
		return "fn " + f.Name
	}
	return "fn(anonymous)"
}

// NativeFunction wraps a standard-library adapter (spec.md §4.4 "Standard
// library").
type NativeFunction struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for unbounded
	Fn      func(args []Value) (Value, *RuntimeError)
}

func (*NativeFunction) Type() string { return "Function" }
func (n *NativeFunction) Console() string {
	return "fn " + n.Name + " (native)"
}

// Truthy implements spec.md §4.3's truthiness table: "Nil, false, 0, empty
// string, empty array, empty object are falsy; everything else truthy".
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(x)
	case Number:
		return x != 0
	case Str:
		return x != ""
	case *Array:
		return len(x.Elements) != 0
	case *Object:
		return x.Len() != 0
	default:
		return true
	}
}

// StructuralEqual implements spec.md §4.3 "== != structural equality
// (independent of type)".
func StructuralEqual(a, b Value) bool {
	switch x := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case *Array:
		y, ok := b.(*Array)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !StructuralEqual(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		xk := x.Keys()
		sort.Strings(xk)
		yk := y.Keys()
		sort.Strings(yk)
		for i := range xk {
			if xk[i] != yk[i] {
				return false
			}
			xv, _ := x.Get(xk[i])
			yv, _ := y.Get(yk[i])
			if !StructuralEqual(xv, yv) {
				return false
			}
		}
		return true
	case *Result:
		y, ok := b.(*Result)
		return ok && x.Kind == y.Kind && StructuralEqual(x.Value, y.Value)
	default:
		return false
	}
}

func typeMismatch(op, wantedShape string, v Value) *RuntimeError {
	return &RuntimeError{
		Kind:    ErrType,
		Message: fmt.Sprintf("operator %s requires %s, got %s", op, wantedShape, v.Type()),
	}
}
