package token

import "testing"

func TestTypeStringCoversAllTypes(t *testing.T) {
	types := []Type{
		LBraceType, RBraceType, LBracketType, RBracketType, CommaType,
		ColonType, DashType, StringType, NumberType, BoolType, NullType,
		BlockScalarType, CommentType, NewlineType, EOFType,
	}
	for _, ty := range types {
		if s := ty.String(); s == "" || s == "Unknown" {
			t.Errorf("Type(%d).String() = %q, want a named type", ty, s)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 4, Column: 9, Offset: 30}
	if got, want := p.String(), "4:9"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}

func TestTokensAddLinksPrevNext(t *testing.T) {
	var toks Tokens
	a := &Token{Type: NumberType, Value: "1"}
	b := &Token{Type: NumberType, Value: "2"}
	toks.Add(a)
	toks.Add(b)

	if a.Next != b || b.Prev != a {
		t.Fatalf("Add() did not link a<->b: a.Next=%v b.Prev=%v", a.Next, b.Prev)
	}
	if a.Prev != nil || b.Next != nil {
		t.Fatalf("Add() set unexpected links: a.Prev=%v b.Next=%v", a.Prev, b.Next)
	}
}
