package parser

import (
	"strconv"
	"strings"

	"github.com/cfs-lang/cfscript/internal/ast"
	"github.com/cfs-lang/cfscript/internal/token"
)

// parseStringFragments decodes a STRING token's raw span (escapes included,
// verbatim) into Literal/EscapedChar fragments (spec.md §3 "Str is a
// sequence of string fragments", §4.1 "String": "\n \r \t \b \f \\ \/ \" and
// \u{HEX}"). pos is the token's starting position, used only to report
// decode errors at roughly the right place — sub-fragment positions are not
// tracked byte-accurately since fragments never need their own diagnostics
// once a literal has parsed successfully.
func parseStringFragments(raw string, pos token.Position) ([]ast.Fragment, string) {
	var frags []ast.Fragment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			frags = append(frags, ast.Fragment{Kind: ast.FragLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(raw)
	i := 0
	for i < len(runes) {
		if runes[i] != '\\' {
			lit.WriteRune(runes[i])
			i++
			continue
		}
		if i+1 >= len(runes) {
			return nil, "dangling escape at end of string"
		}
		next := runes[i+1]
		switch next {
		case 'n':
			flush()
			frags = append(frags, ast.Fragment{Kind: ast.FragEscapedChar, Text: "\n"})
			i += 2
		case 'r':
			flush()
			frags = append(frags, ast.Fragment{Kind: ast.FragEscapedChar, Text: "\r"})
			i += 2
		case 't':
			flush()
			frags = append(frags, ast.Fragment{Kind: ast.FragEscapedChar, Text: "\t"})
			i += 2
		case 'b':
			flush()
			frags = append(frags, ast.Fragment{Kind: ast.FragEscapedChar, Text: "\b"})
			i += 2
		case 'f':
			flush()
			frags = append(frags, ast.Fragment{Kind: ast.FragEscapedChar, Text: "\f"})
			i += 2
		case '\\':
			flush()
			frags = append(frags, ast.Fragment{Kind: ast.FragEscapedChar, Text: "\\"})
			i += 2
		case '/':
			flush()
			frags = append(frags, ast.Fragment{Kind: ast.FragEscapedChar, Text: "/"})
			i += 2
		case '"':
			flush()
			frags = append(frags, ast.Fragment{Kind: ast.FragEscapedChar, Text: "\""})
			i += 2
		case 'u':
			if i+2 >= len(runes) || runes[i+2] != '{' {
				return nil, "invalid unicode escape: expected \\u{HEX}"
			}
			end := i + 3
			for end < len(runes) && runes[end] != '}' {
				end++
			}
			if end >= len(runes) {
				return nil, "unterminated unicode escape"
			}
			hex := string(runes[i+3 : end])
			v, convErr := strconv.ParseInt(hex, 16, 32)
			if convErr != nil {
				return nil, "invalid unicode escape digits: " + strconv.Quote(hex)
			}
			flush()
			frags = append(frags, ast.Fragment{Kind: ast.FragEscapedChar, Text: string(rune(v))})
			i = end + 1
		default:
			if isSpace(next) {
				flush()
				start := i + 1
				j := start
				for j < len(runes) && isSpace(runes[j]) {
					j++
				}
				frags = append(frags, ast.Fragment{Kind: ast.FragEscapedWS, Text: string(runes[start:j])})
				i = j
			} else {
				return nil, "unknown escape sequence \\" + string(next)
			}
		}
	}
	flush()
	return frags, ""
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// parseTemplateFragments decodes a TEMPLATE_STRING token's raw span into
// Literal/EscapedChar/Interpolation fragments (spec.md §3 "TemplateLiteral",
// §4.1 "Template literal": "`{{` is an escaped `{`; a lone `{…}` holds an
// interpolated expression"). The lexer has already matched brace depth and
// skipped nested string delimiters (internal/lexer/strings.go), so this
// pass only needs to split on top-level `{`/`}` and recurse into
// parseStringFragments-style escape decoding for the literal runs.
func parseTemplateFragments(p *Parser, raw string, pos token.Position) ([]ast.Fragment, string) {
	var frags []ast.Fragment
	var lit strings.Builder

	flush := func() {
		if lit.Len() == 0 {
			return
		}
		sub, errMsg := parseStringFragments(lit.String(), pos)
		if errMsg != "" {
			frags = append(frags, ast.Fragment{Kind: ast.FragLiteral, Text: lit.String()})
		} else {
			frags = append(frags, sub...)
		}
		lit.Reset()
	}

	runes := []rune(raw)
	i := 0
	for i < len(runes) {
		switch {
		case runes[i] == '{' && i+1 < len(runes) && runes[i+1] == '{':
			lit.WriteRune('{')
			i += 2
		case runes[i] == '}' && i+1 < len(runes) && runes[i+1] == '}':
			lit.WriteRune('}')
			i += 2
		case runes[i] == '{':
			flush()
			depth := 1
			start := i + 1
			j := start
			for j < len(runes) && depth > 0 {
				switch runes[j] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						goto closed
					}
				}
				j++
			}
		closed:
			if depth != 0 {
				return nil, "unterminated interpolation"
			}
			exprSrc := string(runes[start:j])
			expr, errMsg := parseInterpolation(exprSrc)
			if errMsg != "" {
				return nil, errMsg
			}
			frags = append(frags, ast.Fragment{Kind: ast.FragInterpolation, Expr: expr})
			i = j + 1
		default:
			lit.WriteRune(runes[i])
			i++
		}
	}
	flush()
	return frags, ""
}

// parseInterpolation parses the text inside a template `{…}` hole as a full
// expression using a fresh sub-parser. Diagnostics raised while parsing the
// hole carry positions relative to the hole's own text, a deliberate
// simplification: an interpolation failing to parse is rare enough that a
// slightly coarser position is an acceptable tradeoff against threading
// byte-offset bookkeeping through every fragment.
func parseInterpolation(src string) (ast.Expression, string) {
	sub := New(src)
	expr := sub.parseExpression()
	if sub.Failed() {
		return nil, sub.Errors().Error()
	}
	if !sub.peekTokenIs(token.EOF) {
		return nil, "unexpected trailing input in interpolation"
	}
	return expr, ""
}
