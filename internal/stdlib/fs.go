package stdlib

import (
	"os"

	"github.com/cfs-lang/cfscript/internal/evaluator"
)

// registerFS wires spec.md §6's fs module. Both adapters report an I/O
// failure as an Err value rather than aborting the script, per spec.md §4.4
// "I/O adapters surface failure as Err, never as a RuntimeError" (so a
// caller can still recover with a match statement). read_to_string returns
// Ok(text) on success; rename returns Nil on success.
func (r *Registry) registerFS() {
	r.register("fs", "read_to_string", CategoryFS, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		path, err := checkString(args, 0)
		if err != nil {
			return nil, err
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return errResult(readErr.Error())
		}
		return ok(evaluator.Str(string(data)))
	})

	// rename(from, to): args[1] is the new path, not a directory, per
	// SPEC_FULL.md's resolution of the original's ambiguous "destination".
	r.register("fs", "rename", CategoryFS, 2, 2, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		from, err := checkString(args, 0)
		if err != nil {
			return nil, err
		}
		to, err := checkString(args, 1)
		if err != nil {
			return nil, err
		}
		if renameErr := os.Rename(from, to); renameErr != nil {
			return errResult(renameErr.Error())
		}
		return evaluator.Nil{}, nil
	})
}
