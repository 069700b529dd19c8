package lexer

import (
	"testing"

	"github.com/cfs-lang/cfscript/internal/token"
)

func collectTypes(src string) []token.Type {
	l := New(src)
	var types []token.Type
	for {
		tok := l.Next()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			return types
		}
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	types := collectTypes("let x = foo")
	want := []token.Type{token.LET, token.IDENT, token.ASSIGN, token.IDENT, token.EOF}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

func TestNumberLiteral(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"1e10", "1e10"},
		{"1.5e-3", "1.5e-3"},
		{"2e", "2"}, // trailing bare 'e' with no exponent digits backtracks
	}
	for _, c := range cases {
		l := New(c.src)
		tok := l.Next()
		if tok.Type != token.NUMBER {
			t.Fatalf("%q: got type %s, want NUMBER", c.src, tok.Type)
		}
		if tok.Literal != c.want {
			t.Errorf("%q: got literal %q, want %q", c.src, tok.Literal, c.want)
		}
	}
}

func TestOperators(t *testing.T) {
	types := collectTypes("+ - * / % == != <= >= && || ** += -= *= /= %= -> => >> .. ..=")
	want := []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT_EQ, token.GT_EQ, token.AND, token.OR,
		token.POW, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.ARROW, token.FAT_ARROW,
		token.SHORTCUT, token.RANGE_EXCL, token.RANGE_INCL, token.EOF,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(types), types, len(want), want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

func TestStringRawSpanKeepsEscapesVerbatim(t *testing.T) {
	l := New(`"a\"b"`)
	tok := l.Next()
	if tok.Type != token.STRING {
		t.Fatalf("got type %s, want STRING", tok.Type)
	}
	if tok.Literal != `a\"b` {
		t.Errorf("got literal %q, want %q", tok.Literal, `a\"b`)
	}
}

func TestTemplateBraceDepthSkipsNestedString(t *testing.T) {
	l := New(`#"prefix {"a}b"} suffix"#`)
	tok := l.Next()
	if tok.Type != token.TEMPLATE_STRING {
		t.Fatalf("got type %s, want TEMPLATE_STRING", tok.Type)
	}
	if tok.Literal != `prefix {"a}b"} suffix` {
		t.Errorf("got literal %q", tok.Literal)
	}
}

func TestCommentsAreTriviaNotTokens(t *testing.T) {
	l := New("// a comment\nlet")
	tok := l.Next()
	if tok.Type != token.LET {
		t.Fatalf("got type %s, want LET (comment should be skipped as trivia)", tok.Type)
	}
	comments := l.LeadingComments()
	if len(comments) != 1 || comments[0].Literal != "// a comment" {
		t.Errorf("got comments %v", comments)
	}
}

func TestBOMAndNFCNormalization(t *testing.T) {
	// "e" + combining acute accent U+0301 (NFD, two runes) must normalize
	// to the single precomposed rune U+00E9 (NFC) before identifier
	// scanning, and a leading BOM (U+FEFF) must be stripped rather than
	// treated as an illegal token.
	bom := "\uFEFF"
	decomposed := "e\u0301"
	precomposed := "\u00e9"

	l := New(bom + decomposed)
	tok := l.Next()
	if tok.Type != token.IDENT {
		t.Fatalf("got type %s, want IDENT", tok.Type)
	}
	if tok.Literal != precomposed {
		t.Errorf("got literal %q (%d runes), want NFC-normalized %q (%d rune)",
			tok.Literal, len([]rune(tok.Literal)), precomposed, len([]rune(precomposed)))
	}
}
