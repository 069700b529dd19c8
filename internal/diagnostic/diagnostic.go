// Package diagnostic renders cfscript's parse and runtime errors into the
// "line | source" + caret layout spec.md §4.1/§4.5 calls for, unifying
// *parser.ParseError and evaluator runtime errors behind one shape. The
// rendering mirrors the teacher's structured_error.go reporting, trimmed to
// cfscript's simpler single-error (no multi-diagnostic batch) model.
package diagnostic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cfs-lang/cfscript/internal/token"
)

// Label is one annotated span in the rendered diagnostic.
type Label struct {
	Line    int
	Column  int
	Length  int
	Message string
}

// Diagnostic is cfscript's single unified error shape (spec.md §4.1
// "Errors carry an error-code, a one-line message, zero or more labels ...,
// and notes").
type Diagnostic struct {
	Kind    string // "parse" or "runtime"
	Code    string
	Message string
	Pos     token.Position
	Labels  []Label
	Notes   []string
	Context []string // outermost first; Render prints it innermost first
}

// Render reproduces the teacher's "line | source / caret" layout. name is
// the file name shown in the location line; the output is plain text with
// no ANSI styling.
func (d *Diagnostic) Render(name, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "error[%s]: %s\n", d.Code, d.Message)
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", name, d.Pos.Line, d.Pos.Column)

	lines := strings.Split(source, "\n")
	if d.Pos.Line >= 1 && d.Pos.Line <= len(lines) {
		lineText := lines[d.Pos.Line-1]
		gutter := strconv.Itoa(d.Pos.Line)
		pad := strings.Repeat(" ", len(gutter))
		fmt.Fprintf(&b, "%s |\n", pad)
		fmt.Fprintf(&b, "%s | %s\n", gutter, lineText)
		caretCol := d.Pos.Column
		if caretCol < 1 {
			caretCol = 1
		}
		fmt.Fprintf(&b, "%s | %s^\n", pad, strings.Repeat(" ", caretCol-1))
	}

	for _, l := range d.Labels {
		if l.Message != "" {
			fmt.Fprintf(&b, "  = label: %s\n", l.Message)
		}
	}
	for _, n := range d.Notes {
		fmt.Fprintf(&b, "  = note: %s\n", n)
	}
	if len(d.Context) > 0 {
		fmt.Fprintf(&b, "  = while parsing: %s\n", strings.Join(reverse(d.Context), " > "))
	}
	return b.String()
}

func reverse(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
