package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masinc/jyaml-go/errors"
	"github.com/masinc/jyaml-go/token"
)

func TestReadInputFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.jyaml")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0o644))

	got, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, string(got))
}

func TestRenderDiagnosticWithoutToken(t *testing.T) {
	jerr := errors.New(errors.EmptyDocument, token.Position{Line: 1, Column: 1}, "document contains no value")
	out := renderDiagnostic(jerr, false)
	assert.Contains(t, out, "EmptyDocument")
	assert.Contains(t, out, "document contains no value")
}

func TestRenderDiagnosticWithToken(t *testing.T) {
	tk := &token.Token{
		Type:     token.NumberType,
		Position: token.Position{Line: 2, Column: 5},
		Raw:      "1 2",
	}
	jerr := errors.NewAt(errors.UnexpectedToken, tk, "expected newline, found Number")
	out := renderDiagnostic(jerr, false)
	assert.Contains(t, out, "UnexpectedToken")
	assert.Contains(t, out, "^")
}

func TestRenderDiagnosticPlainNonJyamlError(t *testing.T) {
	out := renderDiagnostic(assertError{"boom"}, false)
	assert.Contains(t, out, "boom")
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }
