package evaluator

import (
	"math"

	"github.com/cfs-lang/cfscript/internal/ast"
	"github.com/cfs-lang/cfscript/internal/token"
)

// evalBinaryExpr evaluates both operands then dispatches (spec.md §4.3
// "Binary").
func (it *Interpreter) evalBinaryExpr(n *ast.BinaryExpr, env *Environment) (Value, *RuntimeError) {
	left, err := it.evalExpression(n.Left, env)
	if err != nil {
		return nil, err
	}

	// Short-circuit boolean operators evaluate the right side lazily, but
	// always produce a Bool rather than the surviving operand.
	switch n.Operator {
	case token.AND:
		if !Truthy(left) {
			return Bool(false), nil
		}
		right, err := it.evalExpression(n.Right, env)
		if err != nil {
			return nil, err
		}
		return Bool(Truthy(right)), nil
	case token.OR:
		if Truthy(left) {
			return Bool(true), nil
		}
		right, err := it.evalExpression(n.Right, env)
		if err != nil {
			return nil, err
		}
		return Bool(Truthy(right)), nil
	}

	right, err := it.evalExpression(n.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(n.Position, n.Operator, left, right)
}

// applyBinaryOp implements spec.md §4.3's operator table.
func applyBinaryOp(pos token.Position, op token.Type, left, right Value) (Value, *RuntimeError) {
	switch op {
	case token.EQ:
		return Bool(StructuralEqual(left, right)), nil
	case token.NOT_EQ:
		return Bool(!StructuralEqual(left, right)), nil
	case token.PLUS:
		return addValues(pos, left, right)
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.POW:
		return arithmetic(pos, op, left, right)
	case token.LT, token.LT_EQ, token.GT, token.GT_EQ:
		return compare(pos, op, left, right)
	case token.AND:
		return Bool(Truthy(left) && Truthy(right)), nil
	case token.OR:
		return Bool(Truthy(left) || Truthy(right)), nil
	default:
		return nil, &RuntimeError{Kind: ErrType, Pos: pos, Message: "unsupported binary operator " + op.String()}
	}
}

func addValues(pos token.Position, left, right Value) (Value, *RuntimeError) {
	switch l := left.(type) {
	case Number:
		r, ok := right.(Number)
		if !ok {
			return nil, typeMismatch("+", "two Numbers", right)
		}
		return l + r, nil
	case Str:
		r, ok := right.(Str)
		if !ok {
			return nil, typeMismatch("+", "two Strings", right)
		}
		return l + r, nil
	case *Array:
		r, ok := right.(*Array)
		if !ok {
			return nil, typeMismatch("+", "two Arrays", right)
		}
		out := make([]Value, 0, len(l.Elements)+len(r.Elements))
		out = append(out, l.Elements...)
		out = append(out, r.Elements...)
		return &Array{Elements: out}, nil
	case *Object:
		r, ok := right.(*Object)
		if !ok {
			return nil, typeMismatch("+", "two Objects", right)
		}
		merged := NewObject()
		for _, k := range l.Keys() {
			v, _ := l.Get(k)
			merged.Set(k, v)
		}
		for _, k := range r.Keys() {
			v, _ := r.Get(k)
			merged.Set(k, v) // right wins, spec.md §4.3
		}
		return merged, nil
	default:
		return nil, typeMismatch("+", "Number, String, Array, or Object", left)
	}
}

func arithmetic(pos token.Position, op token.Type, left, right Value) (Value, *RuntimeError) {
	l, ok := left.(Number)
	if !ok {
		return nil, typeMismatch(op.String(), "two Numbers", left)
	}
	r, ok := right.(Number)
	if !ok {
		return nil, typeMismatch(op.String(), "two Numbers", right)
	}
	lf, rf := float64(l), float64(r)
	switch op {
	case token.MINUS:
		return Number(lf - rf), nil
	case token.STAR:
		return Number(lf * rf), nil
	case token.SLASH:
		// Division by zero follows host float semantics (inf/NaN),
		// spec.md §4.3 — intentional, not guarded against.
		return Number(lf / rf), nil
	case token.PERCENT:
		return Number(math.Mod(lf, rf)), nil
	case token.POW:
		return Number(math.Pow(lf, rf)), nil
	default:
		return nil, &RuntimeError{Kind: ErrType, Pos: pos, Message: "not an arithmetic operator: " + op.String()}
	}
}

func compare(pos token.Position, op token.Type, left, right Value) (Value, *RuntimeError) {
	l, ok := left.(Number)
	if !ok {
		return nil, typeMismatch(op.String(), "two Numbers", left)
	}
	r, ok := right.(Number)
	if !ok {
		return nil, typeMismatch(op.String(), "two Numbers", right)
	}
	switch op {
	case token.LT:
		return Bool(l < r), nil
	case token.LT_EQ:
		return Bool(l <= r), nil
	case token.GT:
		return Bool(l > r), nil
	case token.GT_EQ:
		return Bool(l >= r), nil
	default:
		return nil, &RuntimeError{Kind: ErrType, Pos: pos, Message: "not a comparison operator: " + op.String()}
	}
}
