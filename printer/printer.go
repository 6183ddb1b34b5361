// Package printer renders a colored source snippet around a failing
// token, for the jyaml CLI's error output.
package printer

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/masinc/jyaml-go/token"
)

// Property is a prefix/suffix pair applied around a token's raw text.
type Property struct {
	Prefix string
	Suffix string
}

// Printer renders Tokens (and error snippets built from them) as text.
type Printer struct {
	LineNumber       bool
	LineNumberFormat func(num int) string
	String           func() *Property
	Number           func() *Property
	Keyword          func() *Property
}

func defaultLineNumberFormat(num int) string {
	return fmt.Sprintf("%3d | ", num)
}

const escape = "\x1b"

func format(attr color.Attribute) string {
	return fmt.Sprintf("%s[%dm", escape, attr)
}

func (p *Printer) setDefaultColorSet() {
	p.String = func() *Property {
		return &Property{Prefix: format(color.FgHiGreen), Suffix: format(color.Reset)}
	}
	p.Number = func() *Property {
		return &Property{Prefix: format(color.FgHiMagenta), Suffix: format(color.Reset)}
	}
	p.Keyword = func() *Property {
		return &Property{Prefix: format(color.FgHiCyan), Suffix: format(color.Reset)}
	}
}

func (p *Printer) property(tk *token.Token) *Property {
	switch tk.Type {
	case token.StringType:
		if p.String != nil {
			return p.String()
		}
	case token.NumberType:
		if p.Number != nil {
			return p.Number()
		}
	case token.BoolType, token.NullType:
		if p.Keyword != nil {
			return p.Keyword()
		}
	}
	return &Property{}
}

// PrintTokens renders a run of tokens back to their original text,
// applying color per-token and optional leading line numbers.
func (p *Printer) PrintTokens(tokens token.Tokens) string {
	if len(tokens) == 0 {
		return ""
	}
	if p.LineNumber && p.LineNumberFormat == nil {
		p.LineNumberFormat = defaultLineNumberFormat
	}
	var b strings.Builder
	lastLine := -1
	for _, tk := range tokens {
		prop := p.property(tk)
		if tk.Position.Line != lastLine {
			if lastLine != -1 {
				b.WriteByte('\n')
			}
			if p.LineNumber {
				b.WriteString(p.LineNumberFormat(tk.Position.Line))
			}
			lastLine = tk.Position.Line
		}
		b.WriteString(prop.Prefix)
		b.WriteString(tk.Raw)
		b.WriteString(prop.Suffix)
	}
	return b.String()
}

// PrintErrorToken renders a source snippet centered on tk: up to three
// lines of context before and after, a `> NN |` marker on the failing
// line, and a `^` caret under the failing column.
func (p *Printer) PrintErrorToken(tk *token.Token, isColored bool) string {
	const context = 3
	curLine := tk.Position.Line

	start := tk
	for start.Prev != nil && curLine-start.Prev.Position.Line <= context {
		start = start.Prev
	}
	end := tk
	for end.Next != nil && end.Next.Position.Line-curLine <= context {
		end = end.Next
	}

	var toks token.Tokens
	for t := start; t != nil; t = t.Next {
		toks = append(toks, t)
		if t == end {
			break
		}
	}

	p.LineNumber = true
	p.LineNumberFormat = func(num int) string {
		marker := "  "
		if num == curLine {
			marker = "> "
		}
		text := fmt.Sprintf("%s%3d | ", marker, num)
		if isColored && num == curLine {
			return format(color.Bold) + format(color.FgHiWhite) + text + format(color.Reset)
		}
		return text
	}
	if isColored {
		p.setDefaultColorSet()
	}
	body := p.PrintTokens(toks)

	prefixLen := len(fmt.Sprintf("  %3d | ", 1))
	caretCol := prefixLen + tk.Position.Column - 1
	if caretCol < prefixLen {
		caretCol = prefixLen
	}
	caret := strings.Repeat(" ", caretCol) + "^"
	return body + "\n" + caret
}

// PrintErrorMessage renders msg, optionally colored red.
func (p *Printer) PrintErrorMessage(msg string, isColored bool) string {
	if isColored {
		return format(color.FgHiRed) + msg + format(color.Reset)
	}
	return msg
}
