// Package lexer implements the JYAML Lexer: a pull-based, one-token
// lookahead tokenizer over a source.Reader. It does not decide between
// block and flow style: it emits raw structural tokens, scalar
// literals, and NEWLINE(indent) events, leaving style disambiguation
// to the parser's flow-depth counter and indent stack (spec.md §9,
// "two grammars, one lexer").
package lexer

import (
	"strings"

	"github.com/masinc/jyaml-go/errors"
	"github.com/masinc/jyaml-go/source"
	"github.com/masinc/jyaml-go/token"
	"github.com/masinc/jyaml-go/value"
)

// Lexer tokenizes JYAML source text.
type Lexer struct {
	r *source.Reader

	captureComments bool
	Comments        []value.Comment

	lineStart         bool
	emittedEOFNewline bool
	pending           token.Tokens
}

// New constructs a Lexer over src. When captureComments is true, line
// comments are recorded to Comments instead of being discarded.
func New(src []byte, captureComments bool) (*Lexer, error) {
	r, err := source.New(src)
	if err != nil {
		return nil, err
	}
	return &Lexer{r: r, captureComments: captureComments, lineStart: true}, nil
}

// Empty reports whether the underlying source has no characters.
func (l *Lexer) Empty() bool { return l.r.Empty() }

func isSpace(c rune) bool { return c == ' ' }
func isTab(c rune) bool   { return c == '\t' }
func isLineBreak(c rune) bool {
	return c == '\n' || c == '\r'
}
func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isDelimAfterDash(c rune) bool {
	switch c {
	case 0, ' ', '\t', '\n', '\r', ',', '}', ']':
		return true
	}
	return false
}

// isStopChar reports whether c ends a bareword/number run.
func isStopChar(c rune) bool {
	switch c {
	case 0, ' ', '\t', '\n', '\r', '{', '}', '[', ']', ',', ':', '#', '\'', '"':
		return true
	}
	return false
}

// Next returns the next token in the stream, or an *errors.Error.
func (l *Lexer) Next() (*token.Token, error) {
	if len(l.pending) > 0 {
		tk := l.pending[0]
		l.pending = l.pending[1:]
		return tk, nil
	}
	if l.lineStart {
		return l.scanLineStart()
	}
	return l.scanToken()
}

// consumeLineBreak advances past a line terminator: LF, CR, or CRLF.
// (source.Reader.Advance already folds CRLF into a single advance.)
func (l *Lexer) consumeLineBreak() {
	l.r.Advance()
}

// skipSpaces consumes a run of ' ' characters, counting them, and
// fails on a tab per the "no tabs outside strings" policy (spec.md §9
// open question, resolved: reject tabs anywhere outside quoted text).
func (l *Lexer) skipSpaces() (int, error) {
	n := 0
	for {
		c := l.r.Peek()
		if isSpace(c) {
			l.r.Advance()
			n++
			continue
		}
		if isTab(c) {
			pos := l.r.Position()
			return n, errors.New(errors.TabInIndentation, pos, "tab character is not allowed")
		}
		return n, nil
	}
}

func (l *Lexer) isCommentStart() bool {
	c := l.r.Peek()
	if c == '#' {
		return true
	}
	return c == '/' && l.r.PeekAt(1) == '/'
}

// consumeCommentToEOL consumes from the current '#'/'//' marker to
// (not including) the line terminator, recording the stripped text.
func (l *Lexer) consumeCommentToEOL(start token.Position) {
	if l.r.Peek() == '#' {
		l.r.Advance()
	} else {
		l.r.Advance()
		l.r.Advance()
	}
	if l.r.Peek() == ' ' {
		l.r.Advance()
	}
	var b strings.Builder
	for !l.r.AtEOF() && !isLineBreak(l.r.Peek()) {
		b.WriteRune(l.r.Advance())
	}
	if l.captureComments {
		l.Comments = append(l.Comments, value.Comment{Text: b.String(), Position: start})
	}
}

// scanLineStart is the indentation/blank-line/comment-line skipping
// loop. It returns exactly one NEWLINE token per logical line break,
// carrying the indent of the next real content line (0 at EOF).
func (l *Lexer) scanLineStart() (*token.Token, error) {
	for {
		if l.r.AtEOF() {
			if l.emittedEOFNewline {
				return &token.Token{Type: token.EOFType, Position: l.r.Position()}, nil
			}
			l.emittedEOFNewline = true
			return &token.Token{Type: token.NewlineType, Position: l.r.Position(), IndentSpaces: 0}, nil
		}
		spaces, err := l.skipSpaces()
		if err != nil {
			return nil, err
		}
		if l.r.AtEOF() {
			continue // loop back into the EOF branch above
		}
		c := l.r.Peek()
		switch {
		case isLineBreak(c):
			l.consumeLineBreak()
			continue
		case l.isCommentStart():
			l.consumeCommentToEOL(l.r.Position())
			if l.r.AtEOF() {
				continue
			}
			l.consumeLineBreak()
			continue
		default:
			l.lineStart = false
			pos := l.r.Position()
			return &token.Token{Type: token.NewlineType, Position: pos, IndentSpaces: spaces}, nil
		}
	}
}

func (l *Lexer) scanToken() (*token.Token, error) {
	if _, err := l.skipSpaces(); err != nil {
		return nil, err
	}
	if l.r.AtEOF() {
		l.lineStart = true
		return l.scanLineStart()
	}
	c := l.r.Peek()
	pos := l.r.Position()

	switch {
	case isLineBreak(c):
		l.consumeLineBreak()
		l.lineStart = true
		return l.scanLineStart()
	case l.isCommentStart():
		l.consumeCommentToEOL(pos)
		l.lineStart = true
		return l.scanLineStart()
	case c == '{':
		l.r.Advance()
		return &token.Token{Type: token.LBraceType, Position: pos, Raw: "{"}, nil
	case c == '}':
		l.r.Advance()
		return &token.Token{Type: token.RBraceType, Position: pos, Raw: "}"}, nil
	case c == '[':
		l.r.Advance()
		return &token.Token{Type: token.LBracketType, Position: pos, Raw: "["}, nil
	case c == ']':
		l.r.Advance()
		return &token.Token{Type: token.RBracketType, Position: pos, Raw: "]"}, nil
	case c == ',':
		l.r.Advance()
		return &token.Token{Type: token.CommaType, Position: pos, Raw: ","}, nil
	case c == ':':
		l.r.Advance()
		return &token.Token{Type: token.ColonType, Position: pos, Raw: ":"}, nil
	case c == '"':
		return l.scanDoubleQuoted(pos)
	case c == '\'':
		return l.scanSingleQuoted(pos)
	case c == '|' || c == '>':
		return l.scanBlockScalarHeader(pos)
	case c == '-':
		if isDelimAfterDash(l.r.PeekAt(1)) {
			l.r.Advance()
			return &token.Token{Type: token.DashType, Position: pos, Raw: "-"}, nil
		}
		return l.scanNumber(pos)
	case isDigit(c) || c == '+' || c == '.':
		return l.scanNumber(pos)
	default:
		return l.scanBareword(pos)
	}
}

func (l *Lexer) scanNumber(pos token.Position) (*token.Token, error) {
	var b strings.Builder
	for !l.r.AtEOF() && !isStopChar(l.r.Peek()) {
		b.WriteRune(l.r.Advance())
	}
	lexeme := b.String()
	ok, _ := validateNumber(lexeme)
	if !ok {
		return nil, errors.New(errors.InvalidNumber, pos, "invalid number literal %q", lexeme)
	}
	return &token.Token{Type: token.NumberType, Position: pos, Value: lexeme, Raw: lexeme}, nil
}

// validateNumber checks lexeme against the grammar:
//
//	number := sign? int frac? exp?
//	sign    := '+' | '-'
//	int     := '0' | [1-9][0-9]*
//	frac    := '.' [0-9]+
//	exp     := ('e'|'E') [+-]? [0-9]+
func validateNumber(s string) (ok bool, isFloat bool) {
	i, n := 0, len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if i >= n || s[i] < '0' || s[i] > '9' {
		return false, false
	}
	if s[i] == '0' {
		i++
	} else {
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if i < n && s[i] == '.' {
		isFloat = true
		i++
		start := i
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false, false
		}
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		isFloat = true
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false, false
		}
	}
	return i == n, isFloat
}

func (l *Lexer) scanBareword(pos token.Position) (*token.Token, error) {
	var b strings.Builder
	for !l.r.AtEOF() && !isStopChar(l.r.Peek()) {
		b.WriteRune(l.r.Advance())
	}
	word := b.String()
	switch word {
	case "true", "false":
		return &token.Token{Type: token.BoolType, Position: pos, Value: word, Raw: word}, nil
	case "null":
		return &token.Token{Type: token.NullType, Position: pos, Value: word, Raw: word}, nil
	}
	return nil, errors.New(errors.InvalidLiteral, pos, "invalid literal %q (did you mean to quote it?)", word)
}

func (l *Lexer) scanDoubleQuoted(pos token.Position) (*token.Token, error) {
	var raw strings.Builder
	raw.WriteByte('"')
	l.r.Advance() // opening quote
	var decoded strings.Builder
	for {
		if l.r.AtEOF() {
			return nil, errors.New(errors.UnterminatedString, pos, "unterminated double-quoted string")
		}
		c := l.r.Peek()
		if isLineBreak(c) {
			return nil, errors.New(errors.UnterminatedString, pos, "unterminated double-quoted string")
		}
		if c == '"' {
			l.r.Advance()
			raw.WriteByte('"')
			break
		}
		if c == '\\' {
			escPos := l.r.Position()
			l.r.Advance()
			raw.WriteByte('\\')
			if l.r.AtEOF() {
				return nil, errors.New(errors.UnterminatedString, pos, "unterminated double-quoted string")
			}
			e := l.r.Advance()
			raw.WriteRune(e)
			switch e {
			case '"':
				decoded.WriteByte('"')
			case '\'':
				decoded.WriteByte('\'')
			case '\\':
				decoded.WriteByte('\\')
			case '/':
				decoded.WriteByte('/')
			case 'b':
				decoded.WriteByte('\b')
			case 'f':
				decoded.WriteByte('\f')
			case 'n':
				decoded.WriteByte('\n')
			case 'r':
				decoded.WriteByte('\r')
			case 't':
				decoded.WriteByte('\t')
			case 'u':
				r, consumed, err := l.readUnicodeEscape(escPos)
				if err != nil {
					return nil, err
				}
				raw.WriteString(consumed)
				decoded.WriteRune(r)
			default:
				return nil, errors.New(errors.InvalidEscape, escPos, "invalid escape sequence \\%c", e)
			}
			continue
		}
		if c < 0x20 {
			return nil, errors.New(errors.UnescapedControl, l.r.Position(), "unescaped control character U+%04X", c)
		}
		decoded.WriteRune(c)
		raw.WriteRune(c)
		l.r.Advance()
	}
	return &token.Token{Type: token.StringType, Position: pos, Value: decoded.String(), Raw: raw.String()}, nil
}

// readUnicodeEscape reads the 4 hex digits following \u (already
// consumed), combining a following \uDCxx low surrogate if the first
// escape decoded to a high surrogate.
func (l *Lexer) readUnicodeEscape(pos token.Position) (rune, string, error) {
	hi, text, err := l.readHex4(pos)
	if err != nil {
		return 0, "", err
	}
	if hi >= 0xD800 && hi <= 0xDBFF {
		if l.r.Peek() == '\\' && l.r.PeekAt(1) == 'u' {
			save := text
			l.r.Advance()
			l.r.Advance()
			lo, lotext, err := l.readHex4(pos)
			if err != nil {
				return 0, "", err
			}
			if lo >= 0xDC00 && lo <= 0xDFFF {
				combined := ((hi - 0xD800) << 10) + (lo - 0xDC00) + 0x10000
				return rune(combined), save + "\\u" + lotext, nil
			}
			return 0, "", errors.New(errors.InvalidEscape, pos, "unpaired surrogate \\u%04X", hi)
		}
		return 0, "", errors.New(errors.InvalidEscape, pos, "unpaired surrogate \\u%04X", hi)
	}
	if hi >= 0xDC00 && hi <= 0xDFFF {
		return 0, "", errors.New(errors.InvalidEscape, pos, "unpaired surrogate \\u%04X", hi)
	}
	return rune(hi), text, nil
}

func (l *Lexer) readHex4(pos token.Position) (int32, string, error) {
	var v int32
	var b strings.Builder
	for i := 0; i < 4; i++ {
		if l.r.AtEOF() {
			return 0, "", errors.New(errors.InvalidEscape, pos, "incomplete \\u escape")
		}
		c := l.r.Advance()
		b.WriteRune(c)
		d, ok := hexDigit(c)
		if !ok {
			return 0, "", errors.New(errors.InvalidEscape, pos, "invalid hex digit %q in \\u escape", c)
		}
		v = v*16 + d
	}
	return v, b.String(), nil
}

func hexDigit(c rune) (int32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// scanSingleQuoted implements the format's deliberate divergence from
// YAML: only \\ and \' are escapes; any other backslash is literal
// two-character content (spec.md §9, "single-quote escape divergence").
func (l *Lexer) scanSingleQuoted(pos token.Position) (*token.Token, error) {
	var raw strings.Builder
	raw.WriteByte('\'')
	l.r.Advance()
	var decoded strings.Builder
	for {
		if l.r.AtEOF() {
			return nil, errors.New(errors.UnterminatedString, pos, "unterminated single-quoted string")
		}
		c := l.r.Peek()
		if isLineBreak(c) {
			return nil, errors.New(errors.UnterminatedString, pos, "unterminated single-quoted string")
		}
		if c == '\'' {
			l.r.Advance()
			raw.WriteByte('\'')
			break
		}
		if c == '\\' {
			l.r.Advance()
			raw.WriteByte('\\')
			if l.r.AtEOF() {
				return nil, errors.New(errors.UnterminatedString, pos, "unterminated single-quoted string")
			}
			e := l.r.Advance()
			raw.WriteRune(e)
			switch e {
			case '\\':
				decoded.WriteByte('\\')
			case '\'':
				decoded.WriteByte('\'')
			default:
				decoded.WriteByte('\\')
				decoded.WriteRune(e)
			}
			continue
		}
		if c < 0x20 {
			return nil, errors.New(errors.UnescapedControl, l.r.Position(), "unescaped control character U+%04X", c)
		}
		decoded.WriteRune(c)
		raw.WriteRune(c)
		l.r.Advance()
	}
	return &token.Token{Type: token.StringType, Position: pos, Value: decoded.String(), Raw: raw.String()}, nil
}

func (l *Lexer) scanBlockScalarHeader(pos token.Position) (*token.Token, error) {
	marker := l.r.Advance() // '|' or '>'
	kind := token.LiteralScalar
	if marker == '>' {
		kind = token.FoldedScalar
	}
	chomp := token.ClipChomping
	raw := string(marker)
	switch l.r.Peek() {
	case '-':
		l.r.Advance()
		chomp = token.StripChomping
		raw += "-"
	case '+':
		l.r.Advance()
		return nil, errors.New(errors.UnsupportedFeature, pos, "keep chomping indicator (+) is not supported")
	}
	return &token.Token{Type: token.BlockScalarType, Position: pos, Kind: kind, ChompKind: chomp, Raw: raw}, nil
}

// ReadBlockScalarBody is called by the parser immediately after
// receiving a BlockScalarType token. It consumes the raw block-scalar
// body directly from the source, bypassing normal tokenization (per
// spec.md §9, block scalars are not re-lexed as structural tokens),
// and leaves the lexer positioned so the next Next() call resumes
// normal scanning at the line that terminates the scalar.
func (l *Lexer) ReadBlockScalarBody(kind token.BlockScalarKind, chomp token.Chomping, baseIndent int) (string, error) {
	// Consume the remainder of the header line: whitespace or a
	// comment only.
	for {
		if l.r.AtEOF() {
			l.queueNewline(0)
			return applyChomp("", chomp), nil
		}
		c := l.r.Peek()
		if c == ' ' {
			l.r.Advance()
			continue
		}
		if c == '\t' {
			return "", errors.New(errors.TabInIndentation, l.r.Position(), "tab character is not allowed")
		}
		if isLineBreak(c) {
			l.consumeLineBreak()
			break
		}
		if l.isCommentStart() {
			l.consumeCommentToEOL(l.r.Position())
			if l.r.AtEOF() {
				l.queueNewline(0)
				return applyChomp("", chomp), nil
			}
			l.consumeLineBreak()
			break
		}
		return "", errors.New(errors.UnexpectedToken, l.r.Position(), "expected end of line after block scalar header")
	}

	var lines []string
	var blanks []bool
	firstIndent := -1

	for {
		if l.r.AtEOF() {
			l.queueNewline(0)
			break
		}
		spaces, err := l.countLeadingSpaces()
		if err != nil {
			return "", err
		}
		blankLine := l.r.AtEOF() || isLineBreak(l.r.Peek())

		if blankLine {
			if l.r.AtEOF() {
				l.queueNewline(0)
				break
			}
			if firstIndent == -1 {
				l.consumeLineBreak()
				continue
			}
			extra := spaces - firstIndent
			if extra < 0 {
				extra = 0
			}
			lines = append(lines, strings.Repeat(" ", extra))
			blanks = append(blanks, true)
			l.consumeLineBreak()
			continue
		}

		if firstIndent == -1 {
			if spaces <= baseIndent {
				l.queueNewline(spaces)
				return applyChomp("", chomp), nil
			}
			firstIndent = spaces
		}
		if spaces < firstIndent {
			l.queueNewline(spaces)
			break
		}

		content := l.consumeRestOfLineRaw()
		extra := spaces - firstIndent
		lines = append(lines, strings.Repeat(" ", extra)+content)
		blanks = append(blanks, false)

		if l.r.AtEOF() {
			l.queueNewline(0)
			break
		}
		l.consumeLineBreak()
	}

	if firstIndent == -1 {
		return applyChomp("", chomp), nil
	}
	var joined string
	if kind == token.LiteralScalar {
		joined = strings.Join(lines, "\n") + "\n"
	} else {
		joined = foldLines(lines, blanks)
	}
	return applyChomp(joined, chomp), nil
}

// countLeadingSpaces counts spaces without consuming a trailing
// newline/EOF, erroring on a tab.
func (l *Lexer) countLeadingSpaces() (int, error) {
	n := 0
	for l.r.Peek() == ' ' {
		l.r.Advance()
		n++
	}
	if l.r.Peek() == '\t' {
		return n, errors.New(errors.TabInIndentation, l.r.Position(), "tab character is not allowed")
	}
	return n, nil
}

func (l *Lexer) consumeRestOfLineRaw() string {
	var b strings.Builder
	for !l.r.AtEOF() && !isLineBreak(l.r.Peek()) {
		b.WriteRune(l.r.Advance())
	}
	return b.String()
}

// queueNewline enqueues a synthetic NEWLINE token (used once the
// block-scalar reader has already measured the indent of the line
// that terminates it) and arranges for the lexer to resume normal
// mid-line scanning once it is consumed.
func (l *Lexer) queueNewline(indent int) {
	l.lineStart = false
	l.pending.Add(&token.Token{Type: token.NewlineType, Position: l.r.Position(), IndentSpaces: indent})
	if indent == 0 && l.r.AtEOF() {
		l.emittedEOFNewline = true
	}
}

func foldLines(lines []string, blanks []bool) string {
	var b strings.Builder
	for i, ln := range lines {
		if blanks[i] {
			b.WriteByte('\n')
			continue
		}
		if i > 0 && !blanks[i-1] {
			b.WriteByte(' ')
		}
		b.WriteString(ln)
	}
	b.WriteByte('\n')
	s := b.String()
	for strings.HasSuffix(s, "\n\n") {
		s = s[:len(s)-1]
	}
	return s
}

func applyChomp(s string, chomp token.Chomping) string {
	if chomp == token.StripChomping {
		return strings.TrimRight(s, "\n")
	}
	if s == "" {
		return ""
	}
	return strings.TrimRight(s, "\n") + "\n"
}
