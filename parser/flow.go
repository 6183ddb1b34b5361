package parser

import (
	"github.com/masinc/jyaml-go/errors"
	"github.com/masinc/jyaml-go/token"
	"github.com/masinc/jyaml-go/value"
)

// parseFlowObject parses a '{' ... '}' mapping. Trailing commas are
// tolerated (spec.md §4.3.2 EXPANSION); every other JSON-object rule
// applies unchanged.
func (p *Parser) parseFlowObject() (value.Value, error) {
	open, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	if err := p.state.pushFrame(open.Position); err != nil {
		return value.Value{}, err
	}
	defer p.state.popFrame()

	p.state.flowDepth++
	defer func() { p.state.flowDepth-- }()
	p.state.advance()

	obj := value.NewObject()
	cur, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	if cur.Type == token.RBraceType {
		p.state.advance()
		return value.MakeObject(obj), nil
	}

	firstSeen := map[string]token.Position{}
	for {
		keyTok, err := p.state.cur()
		if err != nil {
			return value.Value{}, err
		}
		switch keyTok.Type {
		case token.StringType:
		case token.NumberType, token.BoolType, token.NullType:
			return value.Value{}, errors.NewAt(errors.NonStringKey, keyTok, "mapping key must be a quoted string")
		default:
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
		p.state.advance()

		val, err := p.parseValue(-1)
		if err != nil {
			return value.Value{}, err
		}
		obj.Set(key, val)

		cur, err := p.state.cur()
		if err != nil {
			return value.Value{}, err
		}
		switch cur.Type {
		case token.CommaType:
			p.state.advance()
			cur, err = p.state.cur()
			if err != nil {
				return value.Value{}, err
			}
			if cur.Type == token.RBraceType {
				p.state.advance()
				return value.MakeObject(obj), nil
			}
			continue
		case token.RBraceType:
			p.state.advance()
			return value.MakeObject(obj), nil
		default:
			return value.Value{}, errors.Expect(cur, "',' or '}'", describeToken(cur))
		}
	}
}

// parseFlowArray parses a '[' ... ']' sequence. Trailing commas are
// tolerated the same way as in flow objects.
func (p *Parser) parseFlowArray() (value.Value, error) {
	open, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	if err := p.state.pushFrame(open.Position); err != nil {
		return value.Value{}, err
	}
	defer p.state.popFrame()

	p.state.flowDepth++
	defer func() { p.state.flowDepth-- }()
	p.state.advance()

	var elems []value.Value
	cur, err := p.state.cur()
	if err != nil {
		return value.Value{}, err
	}
	if cur.Type == token.RBracketType {
		p.state.advance()
		return value.Array(elems), nil
	}

	for {
		val, err := p.parseValue(-1)
		if err != nil {
			return value.Value{}, err
		}
		elems = append(elems, val)

		cur, err := p.state.cur()
		if err != nil {
			return value.Value{}, err
		}
		switch cur.Type {
		case token.CommaType:
			p.state.advance()
			cur, err = p.state.cur()
			if err != nil {
				return value.Value{}, err
			}
			if cur.Type == token.RBracketType {
				p.state.advance()
				return value.Array(elems), nil
			}
			continue
		case token.RBracketType:
			p.state.advance()
			return value.Array(elems), nil
		default:
			return value.Value{}, errors.Expect(cur, "',' or ']'", describeToken(cur))
		}
	}
}
