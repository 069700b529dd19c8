package stdlib

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cfs-lang/cfscript/internal/evaluator"
)

// registerIO wires spec.md §6's always-available globals (`print`, `input`)
// and the `input_output` reserved module, both backed by the stdout/stdin
// handles the script driver threads through (spec.md §6 "No persisted
// state. The interpreter reads source, produces stdout/stderr").
func (r *Registry) registerIO(stdout, stdin io.ReadWriter) {
	reader := bufio.NewReader(stdin)

	printFn := func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		fmt.Fprintln(stdout, args[0].Console())
		return evaluator.Nil{}, nil
	}
	r.register("__global__", "print", CategoryIO, 1, 1, printFn)
	r.register("input_output", "print", CategoryIO, 1, 1, printFn)

	inputFn := func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		prompt, err := checkString(args, 0)
		if err != nil {
			return nil, err
		}
		restrictEmpty := false
		if len(args) > 1 {
			restrictEmpty = evaluator.Truthy(args[1])
		}
		if prompt != "" {
			fmt.Fprint(stdout, prompt)
		}
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return errResult(readErr.Error())
		}
		line = trimNewline(line)
		if restrictEmpty && line == "" {
			return errResult("input must not be empty")
		}
		return ok(evaluator.Str(line))
	}
	r.register("__global__", "input", CategoryIO, 1, 2, inputFn)
	r.register("input_output", "input", CategoryIO, 1, 2, inputFn)
}

func trimNewline(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		n--
		if n > 0 && s[n-1] == '\r' {
			n--
		}
	}
	return s[:n]
}
