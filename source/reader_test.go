package source

import "testing"

func TestNewRejectsBOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("null")...)
	if _, err := New(src); err == nil {
		t.Fatal("expected error for BOM-prefixed input")
	}
}

func TestNewRejectsInvalidUTF8(t *testing.T) {
	if _, err := New([]byte{0xff, 0xfe}); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestAdvanceTracksLineAndColumn(t *testing.T) {
	r, err := New([]byte("ab\ncd"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := []struct {
		r          rune
		line, col int
	}{
		{'a', 1, 1},
		{'b', 1, 2},
		{'\n', 1, 3},
		{'c', 2, 1},
		{'d', 2, 2},
	}
	for i, w := range want {
		pos := r.Position()
		if pos.Line != w.line || pos.Column != w.col {
			t.Fatalf("step %d: position = %d:%d, want %d:%d", i, pos.Line, pos.Column, w.line, w.col)
		}
		got := r.Advance()
		if got != w.r {
			t.Fatalf("step %d: advance = %q, want %q", i, got, w.r)
		}
	}
	if !r.AtEOF() {
		t.Fatal("expected EOF after consuming all input")
	}
}

func TestAdvanceFoldsCRLF(t *testing.T) {
	r, err := New([]byte("a\r\nb"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Advance() // a
	if got := r.Advance(); got != '\r' {
		t.Fatalf("CRLF advance = %q, want '\\r' (LF absorbed into the same step)", got)
	}
	pos := r.Position()
	if pos.Line != 2 || pos.Column != 1 {
		t.Fatalf("position after CRLF = %d:%d, want 2:1", pos.Line, pos.Column)
	}
}

func TestPeekAtLookahead(t *testing.T) {
	r, err := New([]byte("xyz"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := r.PeekAt(2); got != 'z' {
		t.Fatalf("PeekAt(2) = %q, want 'z'", got)
	}
}

func TestEmptySource(t *testing.T) {
	r, err := New([]byte(""))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !r.Empty() || !r.AtEOF() {
		t.Fatal("expected empty reader to report Empty and AtEOF")
	}
}
