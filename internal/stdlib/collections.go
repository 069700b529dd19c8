package stdlib

import (
	"sort"

	"github.com/maruel/natural"

	"github.com/cfs-lang/cfscript/internal/evaluator"
)

// registerCollections wires spec.md §6's collections module: array/object
// helpers that don't fit the language's operator table (§4.3), grounded in
// the teacher's pack-wide use of maruel/natural for human-friendly
// ordering (SPEC_FULL.md §2 "Natural sort").
func (r *Registry) registerCollections() {
	r.register("collections", "sort_natural", CategoryCollections, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		arr, ok := args[0].(*evaluator.Array)
		if !ok {
			return nil, &evaluator.RuntimeError{Kind: evaluator.ErrType, Message: "argument 1 must be an Array"}
		}
		strs := make([]string, len(arr.Elements))
		for i, e := range arr.Elements {
			s, isStr := e.(evaluator.Str)
			if !isStr {
				return nil, &evaluator.RuntimeError{Kind: evaluator.ErrType, Message: "sort_natural requires an Array of Strings"}
			}
			strs[i] = string(s)
		}
		sort.Slice(strs, func(i, j int) bool { return natural.Less(strs[i], strs[j]) })
		out := make([]evaluator.Value, len(strs))
		for i, s := range strs {
			out[i] = evaluator.Str(s)
		}
		return &evaluator.Array{Elements: out}, nil
	})

	r.register("collections", "sort", CategoryCollections, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		arr, ok := args[0].(*evaluator.Array)
		if !ok {
			return nil, &evaluator.RuntimeError{Kind: evaluator.ErrType, Message: "argument 1 must be an Array"}
		}
		out := make([]evaluator.Value, len(arr.Elements))
		copy(out, arr.Elements)
		var sortErr *evaluator.RuntimeError
		sort.SliceStable(out, func(i, j int) bool {
			ni, iOK := out[i].(evaluator.Number)
			nj, jOK := out[j].(evaluator.Number)
			if iOK && jOK {
				return ni < nj
			}
			si, iOK := out[i].(evaluator.Str)
			sj, jOK := out[j].(evaluator.Str)
			if iOK && jOK {
				return si < sj
			}
			if sortErr == nil {
				sortErr = &evaluator.RuntimeError{Kind: evaluator.ErrType, Message: "sort requires a uniformly Number or String Array"}
			}
			return false
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return &evaluator.Array{Elements: out}, nil
	})

	r.register("collections", "reverse", CategoryCollections, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		arr, ok := args[0].(*evaluator.Array)
		if !ok {
			return nil, &evaluator.RuntimeError{Kind: evaluator.ErrType, Message: "argument 1 must be an Array"}
		}
		out := make([]evaluator.Value, len(arr.Elements))
		for i, e := range arr.Elements {
			out[len(out)-1-i] = e
		}
		return &evaluator.Array{Elements: out}, nil
	})

	r.register("collections", "unique", CategoryCollections, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		arr, ok := args[0].(*evaluator.Array)
		if !ok {
			return nil, &evaluator.RuntimeError{Kind: evaluator.ErrType, Message: "argument 1 must be an Array"}
		}
		var out []evaluator.Value
		for _, e := range arr.Elements {
			seen := false
			for _, o := range out {
				if evaluator.StructuralEqual(e, o) {
					seen = true
					break
				}
			}
			if !seen {
				out = append(out, e)
			}
		}
		return &evaluator.Array{Elements: out}, nil
	})

	r.register("collections", "keys", CategoryCollections, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		obj, ok := args[0].(*evaluator.Object)
		if !ok {
			return nil, &evaluator.RuntimeError{Kind: evaluator.ErrType, Message: "argument 1 must be an Object"}
		}
		arr := &evaluator.Array{}
		for _, k := range obj.Keys() {
			arr.Elements = append(arr.Elements, evaluator.Str(k))
		}
		return arr, nil
	})

	r.register("collections", "values", CategoryCollections, 1, 1, func(args []evaluator.Value) (evaluator.Value, *evaluator.RuntimeError) {
		obj, ok := args[0].(*evaluator.Object)
		if !ok {
			return nil, &evaluator.RuntimeError{Kind: evaluator.ErrType, Message: "argument 1 must be an Object"}
		}
		arr := &evaluator.Array{}
		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			arr.Elements = append(arr.Elements, v)
		}
		return arr, nil
	})
}
