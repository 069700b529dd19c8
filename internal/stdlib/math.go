package stdlib

import (
	"math"
	"math/rand"

	"github.com/cfs-lang/cfscript/internal/evaluator"
)

// registerMath wires spec.md §6's math module: trig, rounding, logs, power,
// random, plus the named constants.
func (r *Registry) registerMath() {
	unary := func(name string, f func(float64) float64) {
		r.register("math", name, CategoryMath, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
			x, err := checkNumber(args, 0)
			if err != nil {
				return nil, err
			}
			return evaluator.Number(f(x)), nil
		})
	}

	unary("cos", math.Cos)
	unary("sin", math.Sin)
	unary("tan", math.Tan)
	unary("acos", math.Acos)
	unary("asin", math.Asin)
	unary("atan", math.Atan)
	unary("ceil", math.Ceil)
	unary("floor", math.Floor)
	unary("log", math.Log10)
	unary("ln", math.Log)
	unary("sqrt", math.Sqrt)

	r.register("math", "power", CategoryMath, 2, 2, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		base, err := checkNumber(args, 0)
		if err != nil {
			return nil, err
		}
		exp, err := checkNumber(args, 1)
		if err != nil {
			return nil, err
		}
		return evaluator.Number(math.Pow(base, exp)), nil
	})

	r.register("math", "random", CategoryMath, 0, 0, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		return evaluator.Number(rand.Float64()), nil
	})

	r.registerConst("math", "PI", evaluator.Number(math.Pi))
	r.registerConst("math", "E", evaluator.Number(math.E))
	r.registerConst("math", "LN_2", evaluator.Number(math.Ln2))
	r.registerConst("math", "LN_10", evaluator.Number(math.Log(10)))
	r.registerConst("math", "LOG10_2", evaluator.Number(math.Log10(2)))
	r.registerConst("math", "SQRT_2", evaluator.Number(math.Sqrt2))
	r.registerConst("math", "FRAC_1_PI", evaluator.Number(1/math.Pi))
}
