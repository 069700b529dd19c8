package stdlib

import (
	"os"
	"strings"

	"github.com/cfs-lang/cfscript/internal/evaluator"
)

// registerEnv wires spec.md §6's env module: access to the host process's
// environment variables (get, set, all) and its arguments, the same "thin wrapper over a host capability"
// shape as fs/time (spec.md §1 "trivial wrappers in the standard library").
func (r *Registry) registerEnv() {
	r.register("env", "get", CategoryEnv, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		name, err := checkString(args, 0)
		if err != nil {
			return nil, err
		}
		v, found := os.LookupEnv(name)
		if !found {
			return errResult("environment variable not set: " + name)
		}
		return ok(evaluator.Str(v))
	})

	r.register("env", "set", CategoryEnv, 2, 2, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		name, err := checkString(args, 0)
		if err != nil {
			return nil, err
		}
		value, err := checkString(args, 1)
		if err != nil {
			return nil, err
		}
		if setErr := os.Setenv(name, value); setErr != nil {
			return errResult(setErr.Error())
		}
		return evaluator.Nil{}, nil
	})

	r.register("env", "args", CategoryEnv, 0, 0, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		arr := &evaluator.Array{}
		for _, a := range os.Args[1:] {
			arr.Elements = append(arr.Elements, evaluator.Str(a))
		}
		return arr, nil
	})

	r.register("env", "all", CategoryEnv, 0, 0, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		obj := evaluator.NewObject()
		for _, kv := range os.Environ() {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) == 2 {
				obj.Set(parts[0], evaluator.Str(parts[1]))
			}
		}
		return obj, nil
	})
}
