// Package value implements the JYAML Value Model: a tagged variant
// with exactly six shapes, plus an insertion-ordered Object and the
// Document wrapper carrying comments and source spans.
package value

import "fmt"

// Kind tags the variant held by a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "Null"
	case BoolKind:
		return "Bool"
	case NumberKind:
		return "Number"
	case StringKind:
		return "String"
	case ArrayKind:
		return "Array"
	case ObjectKind:
		return "Object"
	}
	return "Unknown"
}

// Number carries both the decoded numeric value and whether it is an
// integer: IsInt is set when the literal has no '.'/'e'/'E' and fits in
// int64; an integer-shaped literal outside int64 is held as a float.
type Number struct {
	IsInt   bool
	Int     int64
	Float   float64
	Literal string // original lexeme, preserved for diagnostics
}

func (n Number) String() string {
	if n.IsInt {
		return fmt.Sprintf("%d", n.Int)
	}
	return fmt.Sprintf("%g", n.Float)
}

// Value is an immutable node of the parsed tree. Exactly one of the
// Bool/Number/Str/Elems/Obj fields is meaningful, selected by Kind.
type Value struct {
	Kind  Kind
	Bool  bool
	Num   Number
	Str   string
	Elems []Value
	Obj   *Object

	// ID indexes this node into Document.Spans. It is only assigned in
	// document mode (see parser.Parser.docMode); zero otherwise, and
	// ignored by Equal.
	ID NodeID
}

// Null is the singleton null value.
func Null() Value { return Value{Kind: NullKind} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: BoolKind, Bool: b} }

// Int wraps an integer number.
func Int(i int64, literal string) Value {
	return Value{Kind: NumberKind, Num: Number{IsInt: true, Int: i, Literal: literal}}
}

// Float wraps a floating-point number.
func Float(f float64, literal string) Value {
	return Value{Kind: NumberKind, Num: Number{IsInt: false, Float: f, Literal: literal}}
}

// String wraps a decoded string.
func String(s string) Value { return Value{Kind: StringKind, Str: s} }

// Array wraps an ordered sequence of values.
func Array(elems []Value) Value { return Value{Kind: ArrayKind, Elems: elems} }

// MakeObject wraps an *Object.
func MakeObject(o *Object) Value { return Value{Kind: ObjectKind, Obj: o} }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Kind == NullKind }

// Equal reports deep structural equality, used by tests and callers
// comparing parsed trees. Object comparison requires identical
// insertion order, per the spec's order-is-observable invariant. ID is
// document-mode bookkeeping, not part of a value's identity, and is
// never compared.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case NullKind:
		return true
	case BoolKind:
		return v.Bool == other.Bool
	case NumberKind:
		return v.Num.IsInt == other.Num.IsInt && v.Num.Int == other.Num.Int && v.Num.Float == other.Num.Float
	case StringKind:
		return v.Str == other.Str
	case ArrayKind:
		if len(v.Elems) != len(other.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(other.Elems[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		return v.Obj.Equal(other.Obj)
	}
	return false
}
