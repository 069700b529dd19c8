package evaluator

// Environment is cfscript's symbol table: three maps (variables, constants,
// functions) plus an outer-scope link, grounded on the teacher's
// runtime.Environment but case-sensitive — cfscript has no DWScript-style
// case-insensitive identifier rule, so plain Go maps replace the teacher's
// ident.Map.
type Environment struct {
	variables map[string]Value
	constants map[string]bool
	functions map[string]*Function
	outer     *Environment
}

// NewEnvironment creates a root-level environment with no outer scope.
func NewEnvironment() *Environment {
	return &Environment{
		variables: make(map[string]Value),
		constants: make(map[string]bool),
		functions: make(map[string]*Function),
	}
}

// NewEnclosed creates a scope nested inside e (spec.md §4.3 "Block pushes a
// fresh inner scope on entry, pops on exit").
func (e *Environment) NewEnclosed() *Environment {
	child := NewEnvironment()
	child.outer = e
	return child
}

// DefineVariable binds name in the current scope. isConst marks it as a
// `let` declaration (spec.md §4.3 "Writing a constant is an error").
func (e *Environment) DefineVariable(name string, v Value, isConst bool) {
	e.variables[name] = v
	if isConst {
		e.constants[name] = true
	} else {
		delete(e.constants, name)
	}
}

// DefineFunction binds a named function declaration in the current scope.
func (e *Environment) DefineFunction(name string, fn *Function) {
	e.functions[name] = fn
}

// Get resolves name as a variable or function, searching outward through
// the scope chain.
func (e *Environment) Get(name string) (Value, bool) {
	if v, ok := e.variables[name]; ok {
		return v, true
	}
	if fn, ok := e.functions[name]; ok {
		return fn, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// IsConstant reports whether name resolves to a `let` binding somewhere in
// the scope chain.
func (e *Environment) IsConstant(name string) bool {
	if _, ok := e.variables[name]; ok {
		return e.constants[name]
	}
	if _, ok := e.functions[name]; ok {
		return true // function declarations are never reassignable
	}
	if e.outer != nil {
		return e.outer.IsConstant(name)
	}
	return false
}

// Set writes to an already-declared variable, searching outward. Returns
// false if name is undeclared anywhere in the chain.
func (e *Environment) Set(name string, v Value) bool {
	if _, ok := e.variables[name]; ok {
		e.variables[name] = v
		return true
	}
	if e.outer != nil {
		return e.outer.Set(name, v)
	}
	return false
}

// Has reports whether name is bound anywhere in the scope chain.
func (e *Environment) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Bindings returns every name declared directly in this scope (functions
// and variables, not the outer chain). Used to gather an imported script's
// exports (spec.md §4.3 "a script's top-level bindings become its
// exports").
func (e *Environment) Bindings() map[string]Value {
	out := make(map[string]Value, len(e.variables)+len(e.functions))
	for name, v := range e.variables {
		out[name] = v
	}
	for name, fn := range e.functions {
		out[name] = fn
	}
	return out
}
