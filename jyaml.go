// Package jyaml implements JYAML (JSON-YAML Adaptive Markup Language):
// a strict superset of JSON and a strict subset of YAML. The package
// is a pure, synchronous source-to-value transform: it never logs,
// never touches the filesystem, and never returns a partial tree on
// error (spec.md §5, §7).
package jyaml

import (
	"time"

	"github.com/masinc/jyaml-go/parser"
	"github.com/masinc/jyaml-go/value"
)

// Document is the result of ParseDocument: the root value plus the
// comments and source spans that ParseValue/Validate discard.
type Document = value.Document

// Comment is a captured '#'/'//' line comment (marker stripped).
type Comment = value.Comment

// Span is the source extent of a node.
type Span = value.Span

// ParseValue parses src as JYAML and returns its value tree. Parsing
// stops at the first error; no partial tree is ever returned.
func ParseValue(src []byte, opts ...Option) (value.Value, error) {
	c, err := buildConfig(opts)
	if err != nil {
		return value.Value{}, err
	}
	if c.timeout > 0 {
		c.cfg.Deadline = time.Now().Add(c.timeout)
	}
	p, err := parser.New(src, false, c.cfg)
	if err != nil {
		return value.Value{}, err
	}
	return p.ParseValue()
}

// ParseDocument parses src as JYAML and returns the value tree
// together with the comments and spans collected along the way.
func ParseDocument(src []byte, opts ...Option) (*Document, error) {
	c, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	if c.timeout > 0 {
		c.cfg.Deadline = time.Now().Add(c.timeout)
	}
	p, err := parser.New(src, true, c.cfg)
	if err != nil {
		return nil, err
	}
	return p.ParseDocument()
}

// Validate parses src and discards the result, returning only whether
// it is well-formed JYAML.
func Validate(src []byte, opts ...Option) error {
	_, err := ParseValue(src, opts...)
	return err
}
