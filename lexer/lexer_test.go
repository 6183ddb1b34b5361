package lexer

import (
	"testing"

	"github.com/masinc/jyaml-go/errors"
	"github.com/masinc/jyaml-go/token"
)

// tokenize drains a Lexer, asserting no error, and returns every token
// including the trailing EOF.
func tokenize(t *testing.T, src string) token.Tokens {
	t.Helper()
	l, err := New([]byte(src), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var toks token.Tokens
	for {
		tk, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		toks = append(toks, tk)
		if tk.Type == token.EOFType {
			return toks
		}
	}
}

func types(toks token.Tokens) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tk := range toks {
		out[i] = tk.Type
	}
	return out
}

func TestNextDelimiters(t *testing.T) {
	toks := tokenize(t, `{"a":[1,2]}`)
	got := types(toks)
	want := []token.Type{
		token.NewlineType, // virtual leading newline
		token.LBraceType, token.StringType, token.ColonType, token.LBracketType,
		token.NumberType, token.CommaType, token.NumberType, token.RBracketType,
		token.RBraceType, token.NewlineType, token.EOFType,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanNumberVariants(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"0", "0"},
		{"-0", "-0"},
		{"123", "123"},
		{"-123", "-123"},
		{"+123", "+123"},
		{"1.5", "1.5"},
		{"1e10", "1e10"},
		{"1.5e-10", "1.5e-10"},
	}
	for _, tt := range tests {
		toks := tokenize(t, tt.src)
		if toks[1].Type != token.NumberType || toks[1].Value != tt.want {
			t.Errorf("tokenize(%q): token[1] = %+v, want NumberType %q", tt.src, toks[1], tt.want)
		}
	}
}

func TestScanNumberRejectsLeadingZero(t *testing.T) {
	l, err := New([]byte("01"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Next() // virtual newline
	if _, err := l.Next(); err == nil {
		t.Fatal("expected InvalidNumber for leading-zero literal")
	} else if e, ok := errors.As(err); !ok || e.Kind != errors.InvalidNumber {
		t.Fatalf("error = %v, want InvalidNumber", err)
	}
}

func TestScanNumberRejectsTrailingGarbage(t *testing.T) {
	l, err := New([]byte("123abc"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Next()
	if _, err := l.Next(); err == nil {
		t.Fatal("expected InvalidNumber for trailing garbage")
	}
}

func TestScanBarewordRejectsUnquotedWord(t *testing.T) {
	l, err := New([]byte("yes"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Next()
	_, err = l.Next()
	e, ok := errors.As(err)
	if !ok || e.Kind != errors.InvalidLiteral {
		t.Fatalf("error = %v, want InvalidLiteral", err)
	}
}

func TestScanBarewordAcceptsKeywords(t *testing.T) {
	for _, word := range []string{"true", "false", "null"} {
		toks := tokenize(t, word)
		if toks[1].Value != word {
			t.Errorf("tokenize(%q) = %+v", word, toks[1])
		}
	}
}

func TestDoubleQuotedEscapes(t *testing.T) {
	toks := tokenize(t, `"a\nb\tA"`)
	if toks[1].Type != token.StringType {
		t.Fatalf("token = %+v, want StringType", toks[1])
	}
	if want := "a\nb\tA"; toks[1].Value != want {
		t.Fatalf("decoded = %q, want %q", toks[1].Value, want)
	}
}

func TestDoubleQuotedSurrogatePair(t *testing.T) {
	toks := tokenize(t, "\"\\uD83D\\uDE00\"")
	if toks[1].Value != "\U0001F600" {
		t.Fatalf("decoded = %q, want grinning-face emoji", toks[1].Value)
	}
}

func TestDoubleQuotedRejectsUnescapedControl(t *testing.T) {
	l, err := New([]byte("\"a\tb\""), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Next()
	_, err = l.Next()
	e, ok := errors.As(err)
	if !ok || e.Kind != errors.UnescapedControl {
		t.Fatalf("error = %v, want UnescapedControl", err)
	}
}

func TestSingleQuotedOnlyEscapesBackslashAndQuote(t *testing.T) {
	toks := tokenize(t, `'a\nb\'c'`)
	if want := `a\nb'c`; toks[1].Value != want {
		t.Fatalf("decoded = %q, want %q (only \\\\ and \\' are escapes)", toks[1].Value, want)
	}
}

func TestDashVsNegativeNumberDisambiguation(t *testing.T) {
	toks := tokenize(t, "- 1")
	if toks[1].Type != token.DashType {
		t.Fatalf("token = %+v, want DashType", toks[1])
	}

	toks = tokenize(t, "-1")
	if toks[1].Type != token.NumberType || toks[1].Value != "-1" {
		t.Fatalf("token = %+v, want NumberType -1", toks[1])
	}
}

func TestNewlineCarriesNextLineIndent(t *testing.T) {
	l, err := New([]byte("\"a\": 1\n  \"b\": 2\n"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var newlines []*token.Token
	for {
		tk, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if tk.Type == token.NewlineType {
			newlines = append(newlines, tk)
		}
		if tk.Type == token.EOFType {
			break
		}
	}
	if len(newlines) < 2 {
		t.Fatalf("got %d newlines, want at least 2", len(newlines))
	}
	if newlines[0].IndentSpaces != 0 {
		t.Errorf("leading newline indent = %d, want 0", newlines[0].IndentSpaces)
	}
	if newlines[1].IndentSpaces != 2 {
		t.Errorf("second newline indent = %d, want 2", newlines[1].IndentSpaces)
	}
}

func TestTabInIndentationRejected(t *testing.T) {
	l, err := New([]byte("\ta: 1\n"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = l.Next()
	e, ok := errors.As(err)
	if !ok || e.Kind != errors.TabInIndentation {
		t.Fatalf("error = %v, want TabInIndentation", err)
	}
}

func TestCommentCaptured(t *testing.T) {
	l, err := New([]byte("# hello\n1"), true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for {
		tk, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if tk.Type == token.EOFType {
			break
		}
	}
	if len(l.Comments) != 1 || l.Comments[0].Text != "hello" {
		t.Fatalf("Comments = %+v, want one comment with text %q", l.Comments, "hello")
	}
}

func TestCommentDiscardedWhenNotCapturing(t *testing.T) {
	l, err := New([]byte("# hello\n1"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for {
		tk, err := l.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if tk.Type == token.EOFType {
			break
		}
	}
	if len(l.Comments) != 0 {
		t.Fatalf("Comments = %+v, want none when captureComments is false", l.Comments)
	}
}

func TestBlockScalarHeaderKeepChompingUnsupported(t *testing.T) {
	l, err := New([]byte("|+\n  a\n"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Next() // leading newline
	_, err = l.Next()
	e, ok := errors.As(err)
	if !ok || e.Kind != errors.UnsupportedFeature {
		t.Fatalf("error = %v, want UnsupportedFeature", err)
	}
}

func TestReadBlockScalarBodyLiteralClip(t *testing.T) {
	l, err := New([]byte("|\n  a\n  b\n"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Next() // leading newline
	hdr, err := l.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if hdr.Type != token.BlockScalarType {
		t.Fatalf("token = %+v, want BlockScalarType", hdr)
	}
	body, err := l.ReadBlockScalarBody(hdr.Kind, hdr.ChompKind, 0)
	if err != nil {
		t.Fatalf("ReadBlockScalarBody: %v", err)
	}
	if want := "a\nb\n"; body != want {
		t.Fatalf("body = %q, want %q", body, want)
	}
}

func TestReadBlockScalarBodyFoldedJoinsLines(t *testing.T) {
	l, err := New([]byte(">\n  a\n  b\n"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Next()
	hdr, err := l.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	body, err := l.ReadBlockScalarBody(hdr.Kind, hdr.ChompKind, 0)
	if err != nil {
		t.Fatalf("ReadBlockScalarBody: %v", err)
	}
	if want := "a b\n"; body != want {
		t.Fatalf("body = %q, want %q", body, want)
	}
}

func TestReadBlockScalarBodyStripChomping(t *testing.T) {
	l, err := New([]byte("|-\n  a\n\n\n"), false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Next()
	hdr, err := l.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	body, err := l.ReadBlockScalarBody(hdr.Kind, hdr.ChompKind, 0)
	if err != nil {
		t.Fatalf("ReadBlockScalarBody: %v", err)
	}
	if want := "a"; body != want {
		t.Fatalf("body = %q, want %q (strip chomping drops all trailing newlines)", body, want)
	}
}
