package evaluator

import "github.com/cfs-lang/cfscript/internal/ast"

// evalCallExpr resolves the callee and invokes it (spec.md §4.3 "Call").
func (it *Interpreter) evalCallExpr(n *ast.CallExpr, env *Environment) (Value, *RuntimeError) {
	callee, err := it.evalExpression(n.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(n.Arguments))
	for i, a := range n.Arguments {
		v, aErr := it.evalExpression(a, env)
		if aErr != nil {
			return nil, aErr
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case *Function:
		return it.callFunction(n, fn, args)
	case *NativeFunction:
		return it.callNative(n, fn, args)
	default:
		return nil, typeMismatch("call", "a Function", callee)
	}
}

// callFunction binds parameters in a fresh scope seeded from the
// function's closure (spec.md §4.3 "binds parameters in a fresh scope" and
// §9 "closures captured by reference to declaring scope").
func (it *Interpreter) callFunction(site *ast.CallExpr, fn *Function, args []Value) (Value, *RuntimeError) {
	if len(args) != len(fn.Params) {
		name := fn.Name
		if name == "" {
			name = "anonymous function"
		}
		return nil, arityError(site.Position, name, len(fn.Params), len(args))
	}

	callEnv := fn.Closure.NewEnclosed()
	for i, p := range fn.Params {
		callEnv.DefineVariable(p.Name, args[i], false)
	}

	switch body := fn.Body.(type) {
	case *ast.BlockStatement:
		fl, err := it.evalStatements(body.Body, callEnv)
		if err != nil {
			if err.isFallibleUnwind() {
				return err.Result, nil
			}
			return nil, err
		}
		if fl != nil && fl.kind == flowReturn {
			return fl.value, nil
		}
		return Nil{}, nil
	case *ast.ExpressionStatement:
		v, err := it.evalExpression(body.Expression, callEnv)
		if err != nil {
			if err.isFallibleUnwind() {
				return err.Result, nil
			}
			return nil, err
		}
		return v, nil
	default:
		return Nil{}, nil
	}
}

func (it *Interpreter) callNative(site *ast.CallExpr, fn *NativeFunction, args []Value) (Value, *RuntimeError) {
	if len(args) < fn.MinArgs || (fn.MaxArgs >= 0 && len(args) > fn.MaxArgs) {
		return nil, arityError(site.Position, fn.Name, fn.MinArgs, len(args))
	}
	v, err := fn.Fn(args)
	if err != nil {
		err.Pos = site.Position
		return nil, err
	}
	return v, nil
}
