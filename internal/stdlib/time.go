package stdlib

import (
	"time"

	"github.com/cfs-lang/cfscript/internal/evaluator"
)

// registerTime wires spec.md §6's time module: a blocking sleep(ms) and
// now_millis, the current Unix time in milliseconds.
func (r *Registry) registerTime() {
	r.register("time", "sleep", CategoryTime, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		ms, err := checkNumber(args, 0)
		if err != nil {
			return nil, err
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return evaluator.Nil{}, nil
	})

	r.register("time", "now_millis", CategoryTime, 0, 0, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		return evaluator.Number(time.Now().UnixMilli()), nil
	})
}
