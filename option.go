package jyaml

import (
	"time"

	"github.com/masinc/jyaml-go/parser"
)

// Option configures a Parse/Validate call, mirroring the teacher's
// functional DecodeOption/EncodeOption pattern.
type Option func(*config) error

type config struct {
	cfg     parser.Config
	timeout time.Duration
}

// WithMaxDepth caps the nesting depth of block and flow constructs,
// surfacing DepthExceeded once exceeded. Zero or negative leaves the
// library default (parser.DefaultMaxDepth) in effect.
func WithMaxDepth(n int) Option {
	return func(c *config) error {
		c.cfg.MaxDepth = n
		return nil
	}
}

// WithTokenLimit caps the number of tokens the lexer may produce,
// surfacing ParseLimitExceeded once exceeded. Zero (the default)
// means unlimited.
func WithTokenLimit(n int) Option {
	return func(c *config) error {
		c.cfg.TokenLimit = n
		return nil
	}
}

// WithTimeout bounds the wall-clock time a single parse may take,
// surfacing ParseLimitExceeded once exceeded. Zero (the default) means
// unlimited. The deadline is checked between token fetches, so it
// cannot interrupt a single pathologically long token scan, only the
// overall parse loop.
func WithTimeout(d time.Duration) Option {
	return func(c *config) error {
		c.timeout = d
		return nil
	}
}

func buildConfig(opts []Option) (config, error) {
	var c config
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return config{}, err
		}
	}
	return c, nil
}
