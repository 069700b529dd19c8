package stdlib

import (
	"runtime"

	"github.com/cfs-lang/cfscript/internal/evaluator"
)

// registerThread wires spec.md §6's thread module. Per spec.md §5, a
// single script is strictly sequential — "no concurrency inside a single
// script" — so this module exposes introspection over the host's
// scheduling rather than spawning goroutines that would race on the
// script's shared Environment maps. Real parallelism lives one layer up,
// in the batch driver (SPEC_FULL.md §3.6's `runall`), outside the core.
func (r *Registry) registerThread() {
	r.register("thread", "id", CategoryThread, 0, 0, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		return evaluator.Number(0), nil
	})

	r.register("thread", "count", CategoryThread, 0, 0, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		return evaluator.Number(runtime.GOMAXPROCS(0)), nil
	})

	r.register("thread", "yield", CategoryThread, 0, 0, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		runtime.Gosched()
		return evaluator.Nil{}, nil
	})
}
