package evaluator

import (
	"fmt"

	"github.com/cfs-lang/cfscript/internal/token"
)

// ErrKind categorizes a runtime failure (spec.md §7's taxonomy: Name, Type,
// Arity, Import, Adapter errors).
type ErrKind string

const (
	ErrName    ErrKind = "name"    // undefined variable/function, or assignment to a constant
	ErrType    ErrKind = "type"    // operator/operand type mismatch
	ErrArity   ErrKind = "arity"   // wrong argument count
	ErrImport  ErrKind = "import"  // unresolved or cyclic import
	ErrAdapter ErrKind = "adapter" // a native function's own failure
	ErrRange   ErrKind = "range"   // a Range missing a required endpoint

	// errFallibleUnwind is not a user-facing error kind: it carries an
	// Err(x) value up through expression/statement evaluation until the
	// nearest enclosing function call converts it into that call's return
	// value (spec.md §4.3 "Fallible"). If it escapes the outermost Program
	// evaluation, Interpreter.Run turns it into a script-aborting ErrType
	// error.
	errFallibleUnwind ErrKind = "__fallible_unwind__"
)

// RuntimeError is cfscript's single runtime diagnostic shape, mirroring
// ParseError's fields so internal/diagnostic can render both uniformly.
type RuntimeError struct {
	Kind     ErrKind
	Message  string
	Pos      token.Position
	Result   *Result // populated only for errFallibleUnwind
}

func (e *RuntimeError) Error() string { return e.Message }

func (e *RuntimeError) isFallibleUnwind() bool { return e.Kind == errFallibleUnwind }

func nameError(pos token.Position, name string) *RuntimeError {
	return &RuntimeError{Kind: ErrName, Pos: pos, Message: "undefined name: " + name}
}

// constError reports assignment to a constant as a name error (spec.md §7
// folds it under the Name error kind; spec.md §8's scoping property calls
// it out as producing "a name error").
func constError(pos token.Position, name string) *RuntimeError {
	return &RuntimeError{Kind: ErrName, Pos: pos, Message: "cannot assign to constant: " + name}
}

func arityError(pos token.Position, name string, want, got int) *RuntimeError {
	msg := fmt.Sprintf("%s expects %d argument(s), got %d", name, want, got)
	return &RuntimeError{Kind: ErrArity, Pos: pos, Message: msg}
}
