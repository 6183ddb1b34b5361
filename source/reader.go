// Package source implements the JYAML Source Reader: UTF-8 validation,
// BOM rejection, and a character cursor tracking 1-indexed line/column
// and 0-indexed byte offset.
package source

import (
	"unicode/utf8"

	"github.com/masinc/jyaml-go/errors"
	"github.com/masinc/jyaml-go/token"
)

// bom is the UTF-8 encoding of U+FEFF.
var bom = [3]byte{0xEF, 0xBB, 0xBF}

// Reader is a pull-based cursor over validated UTF-8 source text.
type Reader struct {
	runes []rune
	idx   int

	line   int
	column int
	offset []int // byte offset of runes[i]
}

// New validates buf as BOM-free UTF-8 and returns a Reader positioned
// at its first character.
func New(buf []byte) (*Reader, error) {
	if len(buf) >= 3 && buf[0] == bom[0] && buf[1] == bom[1] && buf[2] == bom[2] {
		return nil, errors.New(errors.InvalidEncoding, token.Position{Line: 1, Column: 1, Offset: 0}, "BOM not allowed")
	}
	runes := make([]rune, 0, len(buf))
	offsets := make([]int, 0, len(buf))
	line, col := 1, 1
	for i := 0; i < len(buf); {
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, errors.New(errors.InvalidEncoding, token.Position{Line: line, Column: col, Offset: i}, "invalid UTF-8 at byte offset %d", i)
		}
		runes = append(runes, r)
		offsets = append(offsets, i)
		i += size
		switch {
		case r == '\r', r == '\n' && (len(runes) < 2 || runes[len(runes)-2] != '\r'):
			line++
			col = 1
		case r != '\n':
			col++
		}
	}
	return &Reader{
		runes:  runes,
		idx:    0,
		line:   1,
		column: 1,
		offset: offsets,
	}, nil
}

// Peek returns the current character without consuming it, or 0 at EOF.
func (r *Reader) Peek() rune {
	if r.idx >= len(r.runes) {
		return 0
	}
	return r.runes[r.idx]
}

// PeekAt returns the character `ahead` positions from the current one
// (PeekAt(0) == Peek()), or 0 past EOF.
func (r *Reader) PeekAt(ahead int) rune {
	i := r.idx + ahead
	if i < 0 || i >= len(r.runes) {
		return 0
	}
	return r.runes[i]
}

// AtEOF reports whether the cursor has consumed all input.
func (r *Reader) AtEOF() bool {
	return r.idx >= len(r.runes)
}

// Advance consumes and returns the current character, updating
// line/column/offset. A lone CR, a lone LF, and CRLF each advance the
// line counter exactly once.
func (r *Reader) Advance() rune {
	if r.AtEOF() {
		return 0
	}
	c := r.runes[r.idx]
	r.idx++
	switch c {
	case '\n':
		r.line++
		r.column = 1
	case '\r':
		if r.Peek() == '\n' {
			// consume the paired LF as part of the same terminator
			r.idx++
		}
		r.line++
		r.column = 1
	default:
		r.column++
	}
	return c
}

// Position returns the cursor's current (line, column, byte offset).
func (r *Reader) Position() token.Position {
	off := len(r.runes)
	if r.idx < len(r.offset) {
		off = r.offset[r.idx]
	} else if len(r.offset) > 0 {
		off = r.offset[len(r.offset)-1] + utf8.RuneLen(r.runes[len(r.runes)-1])
	}
	return token.Position{Line: r.line, Column: r.column, Offset: off}
}

// Empty reports whether the source contains no characters at all.
func (r *Reader) Empty() bool {
	return len(r.runes) == 0
}
