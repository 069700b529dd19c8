package evaluator

import "github.com/cfs-lang/cfscript/internal/ast"

// evalImport implements spec.md §4.3 "Import protocol": resolve the source
// via the configured Importer, then bind the requested names (or, for a
// star-import, every exported name) into the current scope.
func (it *Interpreter) evalImport(n *ast.ImportDeclaration, env *Environment) *RuntimeError {
	mod, err := it.Importer.Resolve(n.Source)
	if err != nil {
		err.Pos = n.Position
		return err
	}

	if n.IsStarImport {
		if n.StarLocal != "" {
			ns := NewObject()
			for name, v := range mod.Exports {
				ns.Set(name, v)
			}
			env.DefineVariable(n.StarLocal, ns, true)
			return nil
		}
		for name, v := range mod.Exports {
			bindImportedValue(env, name, v)
		}
		return nil
	}

	for _, spec := range n.Specifiers {
		v, ok := mod.Exports[spec.Name]
		if !ok {
			return &RuntimeError{Kind: ErrImport, Pos: n.Position, Message: "module " + n.Source + " does not export " + spec.Name}
		}
		bindImportedValue(env, spec.Local, v)
	}
	return nil
}

func bindImportedValue(env *Environment, name string, v Value) {
	if fn, ok := v.(*Function); ok {
		env.DefineFunction(name, fn)
		return
	}
	if fn, ok := v.(*NativeFunction); ok {
		env.DefineVariable(name, fn, true)
		return
	}
	env.DefineVariable(name, v, true)
}
