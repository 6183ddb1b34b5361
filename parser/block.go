package parser

import (
	"github.com/masinc/jyaml-go/errors"
	"github.com/masinc/jyaml-go/token"
	"github.com/masinc/jyaml-go/value"
)

// indentOf converts a token's 1-indexed column to the 0-indexed
// indent-space unit used throughout this package, matching
// token.Token.IndentSpaces and lexer.ReadBlockScalarBody's baseIndent.
func indentOf(tk *token.Token) int { return tk.Position.Column - 1 }

// parseBlockObject parses a block mapping whose first key is the
// current token. Its frame column is fixed by that key; every
// subsequent key at the same frame must align with it exactly
// (spec.md §4.3.3, "each frame has one mode, chosen by the first
// structural token").
//
// Dedent detection never consumes the NEWLINE that separates one
// frame from the next: it is inspected via its IndentSpaces field and
// only consumed when the line belongs to THIS frame. A returning
// frame therefore always leaves its caller looking at that same
// unconsumed NEWLINE token, which is what lets every enclosing frame
// (and ultimately the root) re-test the same indent against its own
// frame column without any special-casing for "did the value already
// consume its trailing newline".
func (p *Parser) parseBlockObject(minIndent int) (value.Value, error) {
	first, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	if err := p.state.pushFrame(first.Position); err != nil {
		return value.Value{}, err
	}
	defer p.state.popFrame()

	frameCol := indentOf(first)
	obj := value.NewObject()
	firstSeen := map[string]token.Position{}

	for {
		keyTok, err := p.state.cur()
		if err != nil {
			return value.Value{}, err
		}
		// IndentSpaces is 0 both for "next line starts at column 0"
		// and for true EOF, so a frameCol-0 frame cannot tell those
		// apart from the NEWLINE alone: only the token fetched after
		// consuming it resolves the ambiguity.
		if keyTok.Type == token.EOFType {
			break
		}
		if keyTok.Type != token.StringType {
			return value.Value{}, errors.Expect(keyTok, "quoted string key", describeToken(keyTok))
		}
		key := keyTok.Value
		if prev, dup := firstSeen[key]; dup {
			return value.Value{}, errors.NewAt(errors.DuplicateKey, keyTok, "duplicate key %q (first used at %s)", key, prev)
		}
		firstSeen[key] = keyTok.Position
		p.state.advance()

		colonTok, err := p.state.cur()
		if err != nil {
			return value.Value{}, err
		}
		if colonTok.Type != token.ColonType {
			return value.Value{}, errors.Expect(colonTok, "':'", describeToken(colonTok))
		}

		val, err := p.parseMappingValue(colonTok, frameCol)
		if err != nil {
			return value.Value{}, err
		}
		obj.Set(key, val)

		nl, err := p.state.cur()
		if err != nil {
			return value.Value{}, err
		}
		if nl.Type == token.EOFType {
			break
		}
		if nl.Type != token.NewlineType {
			return value.Value{}, errors.Expect(nl, "newline", describeToken(nl))
		}
		switch col := nl.IndentSpaces; {
		case col == frameCol:
			p.state.advance()
			continue
		case col > frameCol:
			return value.Value{}, errors.NewAt(errors.InconsistentIndent, nl, "indentation does not align with any open block")
		default:
			// Dedent: leave nl unconsumed for the caller.
			return value.MakeObject(obj), nil
		}
	}
	return value.MakeObject(obj), nil
}

// parseMappingValue parses the value following ':', handling both the
// same-line case (with InvalidColonSpacing enforcement) and the
// following-lines case (with MissingValue on immediate dedent/EOF).
// colonTok is the current token (':' itself is not yet consumed).
func (p *Parser) parseMappingValue(colonTok *token.Token, frameCol int) (value.Value, error) {
	nt, err := p.state.peek()
	if err != nil {
		return value.Value{}, err
	}
	if nt.Type == token.NewlineType {
		if nt.IndentSpaces <= frameCol {
			return value.Value{}, errors.NewAt(errors.MissingValue, colonTok, "key has no value")
		}
		p.state.advance() // consume colon
		p.state.advance() // consume newline
		return p.parseValue(frameCol)
	}
	if nt.Position.Line == colonTok.Position.Line && nt.Position.Column == colonTok.Position.Column+1 {
		return value.Value{}, errors.NewAt(errors.InvalidColonSpacing, nt, "missing space after ':'")
	}
	p.state.advance() // consume colon
	return p.parseValue(frameCol)
}

// parseBlockArray parses a block sequence whose first bullet is the
// current token.
func (p *Parser) parseBlockArray(minIndent int) (value.Value, error) {
	first, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	if err := p.state.pushFrame(first.Position); err != nil {
		return value.Value{}, err
	}
	defer p.state.popFrame()

	frameCol := indentOf(first)
	var elems []value.Value

	for {
		dash, err := p.state.cur()
		if err != nil {
			return value.Value{}, err
		}
		// See the matching comment in parseBlockObject: IndentSpaces
		// alone cannot distinguish "continuation at column 0" from
		// EOF, so the ambiguity is resolved here instead.
		if dash.Type == token.EOFType {
			break
		}
		if dash.Type != token.DashType {
			return value.Value{}, errors.Expect(dash, "'-'", describeToken(dash))
		}
		p.state.advance()

		val, err := p.parseSequenceValue(dash, frameCol)
		if err != nil {
			return value.Value{}, err
		}
		elems = append(elems, val)

		nl, err := p.state.cur()
		if err != nil {
			return value.Value{}, err
		}
		if nl.Type == token.EOFType {
			break
		}
		if nl.Type != token.NewlineType {
			return value.Value{}, errors.Expect(nl, "newline", describeToken(nl))
		}
		switch col := nl.IndentSpaces; {
		case col == frameCol:
			p.state.advance()
			continue
		case col > frameCol:
			return value.Value{}, errors.NewAt(errors.InconsistentIndent, nl, "indentation does not align with any open block")
		default:
			return value.Array(elems), nil
		}
	}
	return value.Array(elems), nil
}

// parseSequenceValue parses the element following '-' (already
// consumed by the caller). A dash with nothing after it on the same
// line, and nothing more deeply indented on the following line,
// yields null (YAML's standard "- " omission); spec.md's MissingValue
// is reserved for "key:" with no value, not for bare sequence bullets.
func (p *Parser) parseSequenceValue(dash *token.Token, frameCol int) (value.Value, error) {
	nt, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	if nt.Type == token.NewlineType {
		if nt.IndentSpaces <= frameCol {
			return p.recordSpan(value.Null(), dash.Position, nt.Position), nil
		}
		p.state.advance()
		return p.parseValue(frameCol)
	}
	return p.parseValue(frameCol)
}
