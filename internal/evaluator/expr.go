package evaluator

import (
	"strconv"

	"github.com/cfs-lang/cfscript/internal/ast"
	"github.com/cfs-lang/cfscript/internal/token"
)

// evalExpression dispatches on node type (spec.md §4.3 "Expression
// evaluation").
func (it *Interpreter) evalExpression(node ast.Expression, env *Environment) (Value, *RuntimeError) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return Number(n.Value), nil
	case *ast.BoolLiteral:
		return Bool(n.Value), nil
	case *ast.NilLiteral:
		return Nil{}, nil
	case *ast.StringLiteral:
		return it.evalStringLiteral(n)
	case *ast.TemplateLiteral:
		return it.evalTemplateLiteral(n, env)
	case *ast.Identifier:
		v, ok := env.Get(n.Name)
		if !ok {
			return nil, nameError(n.Position, n.Name)
		}
		return v, nil
	case *ast.ParenExpr:
		return it.evalExpression(n.Inner, env)
	case *ast.ArrayLiteral:
		return it.evalArrayLiteral(n, env)
	case *ast.ObjectLiteral:
		return it.evalObjectLiteral(n, env)
	case *ast.RangeExpr:
		return it.evalRangeExpr(n, env)
	case *ast.BinaryExpr:
		return it.evalBinaryExpr(n, env)
	case *ast.CallExpr:
		return it.evalCallExpr(n, env)
	case *ast.MemberExpr:
		v, _, err := it.evalMemberTarget(n, env)
		return v, err
	case *ast.AssignmentExpr:
		return it.evalAssignmentExpr(n, env)
	case *ast.FallibleExpr:
		return it.evalFallibleExpr(n, env)
	case *ast.OkExpr:
		inner, err := it.evalExpression(n.Inner, env)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: ResultOk, Value: inner}, nil
	case *ast.ErrExpr:
		inner, err := it.evalExpression(n.Inner, env)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: ResultErr, Value: inner}, nil
	case *ast.FnExpression:
		return &Function{Params: n.Params, Body: n.Body, IsShortcut: n.IsShortcut, Closure: env}, nil
	case *ast.Comment:
		return Nil{}, nil
	default:
		return nil, &RuntimeError{Kind: ErrType, Pos: node.Pos(), Message: "cannot evaluate this expression"}
	}
}

func (it *Interpreter) evalStringLiteral(n *ast.StringLiteral) (Value, *RuntimeError) {
	var sb []byte
	for _, f := range n.Fragments {
		switch f.Kind {
		case ast.FragEscapedWS:
			continue
		default:
			sb = append(sb, f.Text...)
		}
	}
	return Str(sb), nil
}

func (it *Interpreter) evalTemplateLiteral(n *ast.TemplateLiteral, env *Environment) (Value, *RuntimeError) {
	var sb []byte
	for _, f := range n.Fragments {
		switch f.Kind {
		case ast.FragEscapedWS:
			continue
		case ast.FragInterpolation:
			v, err := it.evalExpression(f.Expr, env)
			if err != nil {
				return nil, err
			}
			sb = append(sb, v.Console()...)
		default:
			sb = append(sb, f.Text...)
		}
	}
	return Str(sb), nil
}

func (it *Interpreter) evalArrayLiteral(n *ast.ArrayLiteral, env *Environment) (Value, *RuntimeError) {
	elements := make([]Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := it.evalExpression(e, env)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return &Array{Elements: elements}, nil
}

func (it *Interpreter) evalObjectLiteral(n *ast.ObjectLiteral, env *Environment) (Value, *RuntimeError) {
	obj := NewObject()
	for _, prop := range n.Properties {
		v, err := it.evalExpression(prop.Value, env)
		if err != nil {
			return nil, err
		}
		obj.Set(prop.Key, v)
	}
	return obj, nil
}

func (it *Interpreter) evalRangeExpr(n *ast.RangeExpr, env *Environment) (Value, *RuntimeError) {
	kind := rangeExclusive
	if n.Kind == ast.RangeInclusive {
		kind = rangeInclusive
	}
	r := &rangeValue{Kind: kind}
	if n.Start != nil {
		v, err := it.evalExpression(n.Start, env)
		if err != nil {
			return nil, err
		}
		f, ok := v.(Number)
		if !ok {
			return nil, typeMismatch("range", "a Number start", v)
		}
		start := float64(f)
		r.Start = &start
	}
	if n.End != nil {
		v, err := it.evalExpression(n.End, env)
		if err != nil {
			return nil, err
		}
		f, ok := v.(Number)
		if !ok {
			return nil, typeMismatch("range", "a Number end", v)
		}
		end := float64(f)
		r.End = &end
	}
	return r, nil
}

func (it *Interpreter) evalFallibleExpr(n *ast.FallibleExpr, env *Environment) (Value, *RuntimeError) {
	v, err := it.evalExpression(n.Inner, env)
	if err != nil {
		return nil, err
	}
	res, ok := v.(*Result)
	if !ok {
		return nil, &RuntimeError{Kind: ErrType, Pos: n.Position, Message: "`?` requires an Ok/Err value, got " + v.Type()}
	}
	if res.Kind == ResultErr {
		return nil, &RuntimeError{Kind: errFallibleUnwind, Pos: n.Position, Result: res}
	}
	return res.Value, nil
}

func (it *Interpreter) evalAssignmentExpr(n *ast.AssignmentExpr, env *Environment) (Value, *RuntimeError) {
	source, err := it.evalExpression(n.Source, env)
	if err != nil {
		return nil, err
	}

	if n.Operator != token.ASSIGN {
		current, cErr := it.evalExpression(n.Target, env)
		if cErr != nil {
			return nil, cErr
		}
		op := compoundToBinaryOp(n.Operator)
		source, err = applyBinaryOp(n.Position, op, current, source)
		if err != nil {
			return nil, err
		}
	}

	switch target := n.Target.(type) {
	case *ast.Identifier:
		if env.IsConstant(target.Name) {
			return nil, constError(target.Position, target.Name)
		}
		if !env.Set(target.Name, source) {
			return nil, nameError(target.Position, target.Name)
		}
		return source, nil
	case *ast.MemberExpr:
		return it.assignMember(target, source, env)
	default:
		return nil, &RuntimeError{Kind: ErrType, Pos: n.Position, Message: "invalid assignment target"}
	}
}

func compoundToBinaryOp(t token.Type) token.Type {
	switch t {
	case token.PLUS_ASSIGN:
		return token.PLUS
	case token.MINUS_ASSIGN:
		return token.MINUS
	case token.STAR_ASSIGN:
		return token.STAR
	case token.SLASH_ASSIGN:
		return token.SLASH
	case token.PERCENT_ASSIGN:
		return token.PERCENT
	default:
		return token.ILLEGAL
	}
}

func (it *Interpreter) assignMember(m *ast.MemberExpr, value Value, env *Environment) (Value, *RuntimeError) {
	objVal, err := it.evalExpression(m.Object, env)
	if err != nil {
		return nil, err
	}

	if m.Computed {
		idxVal, iErr := it.evalExpression(m.Property, env)
		if iErr != nil {
			return nil, iErr
		}
		switch obj := objVal.(type) {
		case *Array:
			idx, ok := idxVal.(Number)
			if !ok {
				return nil, typeMismatch("index", "a Number", idxVal)
			}
			i := int(idx)
			if i < 0 || i >= len(obj.Elements) {
				return nil, &RuntimeError{Kind: ErrType, Pos: m.Position, Message: "array index out of range"}
			}
			obj.Elements[i] = value
			return value, nil
		case *Object:
			key, ok := idxVal.(Str)
			if !ok {
				return nil, typeMismatch("index", "a String key", idxVal)
			}
			obj.Set(string(key), value)
			return value, nil
		default:
			return nil, typeMismatch("[]=", "an Array or Object", objVal)
		}
	}

	ident, ok := m.Property.(*ast.Identifier)
	if !ok {
		return nil, &RuntimeError{Kind: ErrType, Pos: m.Position, Message: "invalid member assignment target"}
	}
	obj, ok := objVal.(*Object)
	if !ok {
		return nil, typeMismatch(".=", "an Object", objVal)
	}
	obj.Set(ident.Name, value)
	return value, nil
}

// evalMemberTarget resolves `a.b` / `a[b]` for reads.
func (it *Interpreter) evalMemberTarget(m *ast.MemberExpr, env *Environment) (Value, Value, *RuntimeError) {
	objVal, err := it.evalExpression(m.Object, env)
	if err != nil {
		return nil, nil, err
	}

	if m.Computed {
		idxVal, iErr := it.evalExpression(m.Property, env)
		if iErr != nil {
			return nil, nil, iErr
		}
		v, mErr := indexInto(m.Position, objVal, idxVal)
		return v, idxVal, mErr
	}

	ident, ok := m.Property.(*ast.Identifier)
	if !ok {
		return nil, nil, &RuntimeError{Kind: ErrType, Pos: m.Position, Message: "invalid member access"}
	}
	v, mErr := it.propertyOf(m.Position, objVal, ident.Name)
	return v, Str(ident.Name), mErr
}

func indexInto(pos token.Position, obj, index Value) (Value, *RuntimeError) {
	switch o := obj.(type) {
	case *Array:
		idx, ok := index.(Number)
		if !ok {
			return nil, typeMismatch("index", "a Number", index)
		}
		i := int(idx)
		if i < 0 || i >= len(o.Elements) {
			return nil, &RuntimeError{Kind: ErrType, Pos: pos, Message: "array index out of range: " + strconv.Itoa(i)}
		}
		return o.Elements[i], nil
	case *Object:
		key, ok := index.(Str)
		if !ok {
			return nil, typeMismatch("index", "a String key", index)
		}
		v, ok := o.Get(string(key))
		if !ok {
			return Nil{}, nil
		}
		return v, nil
	case Str:
		idx, ok := index.(Number)
		if !ok {
			return nil, typeMismatch("index", "a Number", index)
		}
		runes := []rune(string(o))
		i := int(idx)
		if i < 0 || i >= len(runes) {
			return nil, &RuntimeError{Kind: ErrType, Pos: pos, Message: "string index out of range: " + strconv.Itoa(i)}
		}
		return Str(string(runes[i])), nil
	default:
		return nil, typeMismatch("[]", "an Array, Object, or String", obj)
	}
}

// propertyOf resolves `a.b`: built-in properties first (array/string
// length, result accessors), then object fields.
func (it *Interpreter) propertyOf(pos token.Position, obj Value, name string) (Value, *RuntimeError) {
	switch o := obj.(type) {
	case *Array:
		if name == "length" {
			return Number(len(o.Elements)), nil
		}
	case Str:
		if name == "length" {
			return Number(len([]rune(string(o)))), nil
		}
	case *Object:
		v, ok := o.Get(name)
		if !ok {
			return Nil{}, nil
		}
		return v, nil
	case *Result:
		switch name {
		case "is_ok":
			return Bool(o.Kind == ResultOk), nil
		case "is_err":
			return Bool(o.Kind == ResultErr), nil
		case "value":
			return o.Value, nil
		}
	}
	return nil, &RuntimeError{Kind: ErrType, Pos: pos, Message: "no property " + strconv.Quote(name) + " on " + obj.Type()}
}
