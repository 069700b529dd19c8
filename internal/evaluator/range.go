package evaluator

import "github.com/cfs-lang/cfscript/internal/token"

// rangeValue is the runtime form of an ast.RangeExpr (spec.md §3 "Range",
// §4.3 "for…in ... a Range source produces values lazily in order"). Start
// and End are pointers so an absent endpoint is distinguishable from an
// endpoint that evaluated to 0.
type rangeValue struct {
	Start *float64
	End   *float64
	Kind  rangeKind
}

type rangeKind int

const (
	rangeExclusive rangeKind = iota
	rangeInclusive
)

func (*rangeValue) Type() string    { return "Range" }
func (r *rangeValue) Console() string {
	out := ""
	if r.Start != nil {
		out += Number(*r.Start).Console()
	}
	if r.Kind == rangeInclusive {
		out += "..="
	} else {
		out += ".."
	}
	if r.End != nil {
		out += Number(*r.End).Console()
	}
	return out
}

// values materializes the range's elements in iteration order (spec.md
// §4.3: "start inclusive; end exclusive for `..`, inclusive for `..=`; a
// missing start is an error unless the context supplies one; a missing end
// is an error").
func (r *rangeValue) values(pos token.Position, defaultStart *float64) ([]Value, *RuntimeError) {
	start := r.Start
	if start == nil {
		start = defaultStart
	}
	if start == nil {
		return nil, &RuntimeError{Kind: ErrRange, Pos: pos, Message: "range is missing a start value"}
	}
	if r.End == nil {
		return nil, &RuntimeError{Kind: ErrRange, Pos: pos, Message: "range is missing an end value"}
	}

	var out []Value
	end := *r.End
	if r.Kind == rangeInclusive {
		for v := *start; v <= end; v++ {
			out = append(out, Number(v))
		}
	} else {
		for v := *start; v < end; v++ {
			out = append(out, Number(v))
		}
	}
	return out, nil
}
