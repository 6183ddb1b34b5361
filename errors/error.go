// Package errors defines the JYAML error model: a closed taxonomy of
// error kinds, each carrying the exact source position of the failure.
// Parsing stops at the first error; no partial tree is ever returned.
package errors

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/masinc/jyaml-go/token"
)

// Kind is the closed set of JYAML error kinds. No two kinds collapse
// into each other.
type Kind int

const (
	InvalidEncoding Kind = iota
	TabInIndentation
	UnterminatedString
	InvalidEscape
	UnescapedControl
	InvalidNumber
	InvalidLiteral
	NonStringKey
	DuplicateKey
	InconsistentIndent
	BlockInFlow
	InvalidColonSpacing
	MissingValue
	UnexpectedToken
	UnexpectedContent
	EmptyDocument
	UnsupportedFeature
	DepthExceeded
	ParseLimitExceeded
)

func (k Kind) String() string {
	switch k {
	case InvalidEncoding:
		return "InvalidEncoding"
	case TabInIndentation:
		return "TabInIndentation"
	case UnterminatedString:
		return "UnterminatedString"
	case InvalidEscape:
		return "InvalidEscape"
	case UnescapedControl:
		return "UnescapedControl"
	case InvalidNumber:
		return "InvalidNumber"
	case InvalidLiteral:
		return "InvalidLiteral"
	case NonStringKey:
		return "NonStringKey"
	case DuplicateKey:
		return "DuplicateKey"
	case InconsistentIndent:
		return "InconsistentIndent"
	case BlockInFlow:
		return "BlockInFlow"
	case InvalidColonSpacing:
		return "InvalidColonSpacing"
	case MissingValue:
		return "MissingValue"
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedContent:
		return "UnexpectedContent"
	case EmptyDocument:
		return "EmptyDocument"
	case UnsupportedFeature:
		return "UnsupportedFeature"
	case DepthExceeded:
		return "DepthExceeded"
	case ParseLimitExceeded:
		return "ParseLimitExceeded"
	}
	return "Unknown"
}

// Error is the single error type returned by this module. It always
// carries a position and a kind; Expected/Found are populated when the
// parser was looking for a specific token class.
type Error struct {
	Kind     Kind
	Position token.Position
	Message  string
	Expected string
	Found    string

	// Token, when non-nil, lets printer render a source snippet.
	Token *token.Token

	frame xerrors.Frame
}

func (e *Error) Error() string {
	pos := fmt.Sprintf("%d:%d", e.Position.Line, e.Position.Column)
	if e.Expected != "" || e.Found != "" {
		return fmt.Sprintf("%s: %s: %s (expected %s, found %s)", pos, e.Kind, e.Message, e.Expected, e.Found)
	}
	return fmt.Sprintf("%s: %s: %s", pos, e.Kind, e.Message)
}

// FormatError implements xerrors.Formatter so that callers requesting
// %+v get a stack frame for the site that raised the error.
func (e *Error) FormatError(p xerrors.Printer) error {
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
	}
	return nil
}

func (e *Error) Format(f fmt.State, c rune) {
	xerrors.FormatError(e, f, c)
}

// New builds an *Error for kind at pos with the given message.
func New(kind Kind, pos token.Position, msg string, args ...interface{}) *Error {
	return &Error{
		Kind:     kind,
		Position: pos,
		Message:  fmt.Sprintf(msg, args...),
		frame:    xerrors.Caller(1),
	}
}

// NewAt builds an *Error anchored to tk's position, retaining tk so
// that printer can render a source snippet around the failure.
func NewAt(kind Kind, tk *token.Token, msg string, args ...interface{}) *Error {
	err := New(kind, tk.Position, msg, args...)
	err.Token = tk
	return err
}

// Expect builds an UnexpectedToken error describing what was expected
// versus what was found.
func Expect(tk *token.Token, expected, found string) *Error {
	err := NewAt(UnexpectedToken, tk, "expected %s, found %s", expected, found)
	err.Expected = expected
	err.Found = found
	return err
}

// Wrapf wraps err with additional context, preserving the xerrors
// caller frame the way the teacher's errors.Wrapf does.
func Wrapf(err error, msg string, args ...interface{}) error {
	return xerrors.Errorf(msg+": %w", append(args, err)...)
}

// As reports whether err is (or wraps) an *Error, mirroring the
// standard library's errors.As without importing it under a name that
// would collide with this package.
func As(err error) (*Error, bool) {
	var target *Error
	if xerrors.As(err, &target) {
		return target, true
	}
	return nil, false
}
