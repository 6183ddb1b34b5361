package parser

import (
	"time"

	"github.com/masinc/jyaml-go/errors"
	"github.com/masinc/jyaml-go/lexer"
	"github.com/masinc/jyaml-go/token"
)

// Config holds the resource-limit knobs from spec.md §5: an optional
// nesting cap, an optional token-count ceiling, and an optional
// wall-clock deadline.
type Config struct {
	MaxDepth   int
	TokenLimit int
	Deadline   time.Time // zero value means unlimited
}

// DefaultMaxDepth is the nesting cap applied when Config.MaxDepth is
// left at zero, matching spec.md §5's "default >= 128 recommended".
const DefaultMaxDepth = 128

type parserState struct {
	lex        *lexer.Lexer
	buf        []*token.Token
	flowDepth  int
	depth      int
	maxDepth   int
	tokenLimit int
	tokenCount int
	deadline   time.Time
}

func newState(lex *lexer.Lexer, cfg Config) *parserState {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &parserState{lex: lex, maxDepth: maxDepth, tokenLimit: cfg.TokenLimit, deadline: cfg.Deadline}
}

// fetchRaw pulls the next token straight from the lexer, enforcing the
// optional token-count ceiling and wall-clock deadline.
func (p *parserState) fetchRaw() (*token.Token, error) {
	tk, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	p.tokenCount++
	if p.tokenLimit > 0 && p.tokenCount > p.tokenLimit {
		return nil, errors.New(errors.ParseLimitExceeded, tk.Position, "token limit of %d exceeded", p.tokenLimit)
	}
	if !p.deadline.IsZero() && time.Now().After(p.deadline) {
		return nil, errors.New(errors.ParseLimitExceeded, tk.Position, "parse deadline exceeded")
	}
	return tk, nil
}

// fetch pulls the next semantically relevant token: in flow context
// (flowDepth > 0), NEWLINE tokens are non-semantic and are filtered
// out here so the grammar never has to see them (spec.md §4.3, §9).
func (p *parserState) fetch() (*token.Token, error) {
	for {
		tk, err := p.fetchRaw()
		if err != nil {
			return nil, err
		}
		if p.flowDepth > 0 && tk.Type == token.NewlineType {
			continue
		}
		return tk, nil
	}
}

// cur returns the current lookahead token, fetching it lazily.
func (p *parserState) cur() (*token.Token, error) {
	if len(p.buf) == 0 {
		tk, err := p.fetch()
		if err != nil {
			return nil, err
		}
		p.buf = append(p.buf, tk)
	}
	return p.buf[0], nil
}

// peek returns the token after cur without consuming either.
func (p *parserState) peek() (*token.Token, error) {
	if _, err := p.cur(); err != nil {
		return nil, err
	}
	if len(p.buf) < 2 {
		tk, err := p.fetch()
		if err != nil {
			return nil, err
		}
		p.buf = append(p.buf, tk)
	}
	return p.buf[1], nil
}

// advance discards the current lookahead token.
func (p *parserState) advance() {
	if len(p.buf) > 0 {
		p.buf = p.buf[1:]
	}
}

// pushFrame enters one level of block/flow nesting, enforcing
// DepthExceeded (spec.md §5).
func (p *parserState) pushFrame(pos token.Position) error {
	p.depth++
	if p.depth > p.maxDepth {
		return errors.New(errors.DepthExceeded, pos, "nesting depth exceeds limit of %d", p.maxDepth)
	}
	return nil
}

func (p *parserState) popFrame() {
	p.depth--
}
