// Package parser implements the JYAML parser: a recursive-descent
// parser over lexer.Lexer that carries two independent pieces of state
// the grammar itself does not encode (spec.md §9, "indentation as
// state, not syntax"):
//
//   - an indent frame per open block construct, tracked implicitly by
//     the Go call stack and explicitly by parserState.depth for the
//     DepthExceeded limit;
//   - a flow-depth counter that turns NEWLINE tokens non-semantic and
//     rejects block-only constructs (DASH, block-scalar headers, bare
//     "key: value") while greater than zero.
package parser

import (
	"strconv"
	"strings"

	"github.com/masinc/jyaml-go/errors"
	"github.com/masinc/jyaml-go/lexer"
	"github.com/masinc/jyaml-go/token"
	"github.com/masinc/jyaml-go/value"
)

// Parser parses a single JYAML document from source bytes.
type Parser struct {
	state   *parserState
	docMode bool
	nextID  value.NodeID
	spans   map[value.NodeID]value.Span
}

// New constructs a Parser over src. docMode enables comment capture
// and span recording for ParseDocument; Value-only parsing never pays
// for either.
func New(src []byte, docMode bool, cfg Config) (*Parser, error) {
	lex, err := lexer.New(src, docMode)
	if err != nil {
		return nil, err
	}
	p := &Parser{state: newState(lex, cfg), docMode: docMode}
	if docMode {
		p.spans = make(map[value.NodeID]value.Span)
	}
	return p, nil
}

// ParseValue parses src and returns its bare value tree.
func (p *Parser) ParseValue() (value.Value, error) {
	return p.parseTop()
}

// ParseDocument parses src and returns the value tree plus the
// comments and spans collected along the way.
func (p *Parser) ParseDocument() (*value.Document, error) {
	root, err := p.parseTop()
	if err != nil {
		return nil, err
	}
	return &value.Document{Root: root, Comments: p.state.lex.Comments, Spans: p.spans}, nil
}

// parseTop implements the root grammar production: skip leading blank
// lines, parse exactly one value, skip trailing blank lines, require
// EOF.
func (p *Parser) parseTop() (value.Value, error) {
	if err := p.skipLeadingNewlines(); err != nil {
		return value.Value{}, err
	}
	cur, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	if cur.Type == token.EOFType {
		return value.Value{}, errors.NewAt(errors.EmptyDocument, cur, "document contains no value")
	}
	root, err := p.parseValue(-1)
	if err != nil {
		return value.Value{}, err
	}
	cur, err = p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	for cur.Type == token.NewlineType {
		p.state.advance()
		cur, err = p.state.cur()
		if err != nil {
			return value.Value{}, err
		}
	}
	if cur.Type != token.EOFType {
		return value.Value{}, errors.NewAt(errors.UnexpectedContent, cur, "unexpected content after document root value")
	}
	return root, nil
}

func (p *Parser) skipLeadingNewlines() error {
	for {
		cur, err := p.state.cur()
		if err != nil {
			return err
		}
		if cur.Type != token.NewlineType {
			return nil
		}
		p.state.advance()
	}
}

// parseValue parses exactly one value and, in document mode, records
// its source span: Start is the position of the token parseValue was
// called on, End is the position of whatever token follows (the same
// exclusive-end convention value.Span documents). Every value node the
// parser builds is constructed through this one entry point, so
// wrapping it here is sufficient to cover the whole tree; the lone
// exception is the implicit null a bare sequence dash yields, recorded
// separately in parseSequenceValue.
func (p *Parser) parseValue(minIndent int) (value.Value, error) {
	start, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	v, err := p.parseValueDispatch(minIndent)
	if err != nil {
		return value.Value{}, err
	}
	if !p.docMode {
		return v, nil
	}
	end, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	return p.recordSpan(v, start.Position, end.Position), nil
}

// recordSpan assigns v the next NodeID and files its span, a no-op
// outside document mode (Parser.spans is nil there).
func (p *Parser) recordSpan(v value.Value, start, end token.Position) value.Value {
	if !p.docMode {
		return v
	}
	id := p.nextID
	p.nextID++
	p.spans[id] = value.Span{Start: start, End: end}
	v.ID = id
	return v
}

// parseValueDispatch dispatches on the current token to parse exactly
// one value. minIndent is the indent-space column (0-indexed) of the
// enclosing frame; it is forwarded to parseBlockObject/parseBlockArray
// when this call opens a brand-new block construct.
func (p *Parser) parseValueDispatch(minIndent int) (value.Value, error) {
	cur, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}

	switch cur.Type {
	case token.LBraceType:
		return p.parseFlowObject()
	case token.LBracketType:
		return p.parseFlowArray()
	case token.StringType:
		nt, err := p.state.peek()
		if err != nil {
			return value.Value{}, err
		}
		if nt.Type == token.ColonType {
			if p.state.flowDepth > 0 {
				return value.Value{}, errors.NewAt(errors.BlockInFlow, cur, "block mapping key is not allowed inside flow context")
			}
			return p.parseBlockObject(minIndent)
		}
		p.state.advance()
		return value.String(cur.Value), nil
	case token.NumberType, token.BoolType, token.NullType:
		nt, err := p.state.peek()
		if err != nil {
			return value.Value{}, err
		}
		if nt.Type == token.ColonType {
			return value.Value{}, errors.NewAt(errors.NonStringKey, cur, "mapping key must be a quoted string")
		}
		p.state.advance()
		return scalarFromToken(cur)
	case token.DashType:
		if p.state.flowDepth > 0 {
			return value.Value{}, errors.NewAt(errors.BlockInFlow, cur, "block sequence is not allowed inside flow context")
		}
		return p.parseBlockArray(minIndent)
	case token.BlockScalarType:
		if p.state.flowDepth > 0 {
			return value.Value{}, errors.NewAt(errors.BlockInFlow, cur, "block scalar is not allowed inside flow context")
		}
		return p.parseBlockScalar(minIndent)
	default:
		return value.Value{}, errors.Expect(cur, "a value", describeToken(cur))
	}
}

func scalarFromToken(tk *token.Token) (value.Value, error) {
	switch tk.Type {
	case token.BoolType:
		return value.Bool(tk.Value == "true"), nil
	case token.NullType:
		return value.Null(), nil
	case token.NumberType:
		return numberValue(tk)
	}
	return value.Value{}, errors.NewAt(errors.UnexpectedToken, tk, "not a scalar token")
}

// numberValue converts a validated number lexeme to a value.Value,
// distinguishing the int/float sub-case by literal shape per
// spec.md's Value Model invariant. A lexeme shaped like an integer
// that overflows int64 falls back to float64, same as JSON decoders
// that treat such literals as doubles.
func numberValue(tk *token.Token) (value.Value, error) {
	lexeme := tk.Value
	isFloat := strings.ContainsAny(lexeme, ".eE")
	if !isFloat {
		if i, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
			return value.Int(i, lexeme), nil
		}
	}
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return value.Value{}, errors.NewAt(errors.InvalidNumber, tk, "number literal %q is out of range", lexeme)
	}
	return value.Float(f, lexeme), nil
}

func describeToken(tk *token.Token) string {
	if tk.Type == token.EOFType {
		return "end of input"
	}
	if tk.Raw != "" {
		return tk.Type.String() + " " + strconv.Quote(tk.Raw)
	}
	return tk.Type.String()
}

// parseBlockScalar reads a |/> block scalar body via the lexer's
// dedicated raw-line reader, which requires the enclosing frame's
// indent to interpret the body's indentation (spec.md §4.3.4).
func (p *Parser) parseBlockScalar(minIndent int) (value.Value, error) {
	hdr, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	if minIndent < 0 {
		minIndent = 0
	}
	text, err := p.state.lex.ReadBlockScalarBody(hdr.Kind, hdr.ChompKind, minIndent)
	if err != nil {
		return value.Value{}, err
	}
	p.state.buf = nil // the lexer's raw reader bypassed our lookahead buffer
	return value.String(text), nil
}
