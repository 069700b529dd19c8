package lexer

import (
	"github.com/cfs-lang/cfscript/internal/token"
)

// readString scans a single- or double-quoted string (spec.md §4.1). The
// lexer itself does not decode escapes — it hands the parser the raw span
// between the delimiters (escapes included, verbatim), and the parser's
// fragment builder (internal/parser/strings.go) splits that span into
// Literal/EscapedChar/EscapedWS fragments. This mirrors the teacher's split
// between lexer (find the token's extent) and parser (interpret its
// content).
func (l *Lexer) readString(pos token.Position, quote rune) token.Token {
	l.readRune() // consume opening quote
	start := l.pos

	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' && l.peekRune() != 0 {
			l.readRune()
		}
		l.readRune()
	}

	raw := l.input[start:l.pos]
	if l.ch == quote {
		l.readRune() // consume closing quote
	}
	return token.Token{Type: token.STRING, Literal: raw, Pos: pos}
}

// readTemplate scans a #"…" template literal (spec.md §4.1); the token ends
// at the first unnested closing `"`. `{{` is an
// escaped brace; a lone `{` opens an interpolated expression that runs
// until its matching `}`, tracking nested braces and nested string/template
// delimiters so that braces inside `{ "a}b" }` don't terminate early.
func (l *Lexer) readTemplate(pos token.Position) token.Token {
	l.readRune() // '#'
	l.readRune() // opening '"'
	start := l.pos

	depth := 0
	for {
		switch {
		case l.ch == 0:
			goto done
		case l.ch == '\\' && depth == 0 && l.peekRune() != 0:
			l.readRune()
			l.readRune()
			continue
		case l.ch == '"' && depth == 0:
			goto done
		case l.ch == '{' && l.peekRune() == '{' && depth == 0:
			l.readRune()
			l.readRune()
			continue
		case l.ch == '{':
			depth++
			l.readRune()
			continue
		case l.ch == '}' && depth > 0:
			depth--
			l.readRune()
			continue
		case (l.ch == '"' || l.ch == '\'') && depth > 0:
			// skip a nested string literal verbatim so its braces/quotes
			// don't confuse the depth tracker.
			q := l.ch
			l.readRune()
			for l.ch != q && l.ch != 0 {
				if l.ch == '\\' && l.peekRune() != 0 {
					l.readRune()
				}
				l.readRune()
			}
			if l.ch == q {
				l.readRune()
			}
			continue
		default:
			l.readRune()
		}
	}
done:
	raw := l.input[start:l.pos]
	if l.ch == '"' {
		l.readRune()
	}
	return token.Token{Type: token.TEMPLATE_STRING, Literal: raw, Pos: pos}
}
