package value

import "testing"

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null equals null", Null(), Null(), true},
		{"bool true vs false", Bool(true), Bool(false), false},
		{"int vs int", Int(3, "3"), Int(3, "3"), true},
		{"int vs float same magnitude differ", Int(3, "3"), Float(3, "3.0"), false},
		{"string equal", String("a"), String("a"), true},
		{"string differ", String("a"), String("b"), false},
		{"array equal", Array([]Value{Int(1, "1"), Int(2, "2")}), Array([]Value{Int(1, "1"), Int(2, "2")}), true},
		{"array order matters", Array([]Value{Int(1, "1"), Int(2, "2")}), Array([]Value{Int(2, "2"), Int(1, "1")}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObjectOrderPreservedAndEqual(t *testing.T) {
	a := NewObject()
	a.Set("b", Int(2, "2"))
	a.Set("a", Int(1, "1"))

	if got := a.Keys(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("Keys() = %v, want [b a]", got)
	}

	b := NewObject()
	b.Set("a", Int(1, "1"))
	b.Set("b", Int(2, "2"))

	if a.Equal(b) {
		t.Fatal("objects with different key order must not be Equal")
	}

	c := NewObject()
	c.Set("b", Int(2, "2"))
	c.Set("a", Int(1, "1"))
	if !a.Equal(c) {
		t.Fatal("objects with identical key order and values must be Equal")
	}
}

func TestObjectSetOverwritesWithoutReordering(t *testing.T) {
	o := NewObject()
	o.Set("a", Int(1, "1"))
	o.Set("b", Int(2, "2"))
	o.Set("a", Int(99, "99"))

	if o.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", o.Len())
	}
	if got := o.Keys(); got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b]", got)
	}
	v, ok := o.Get("a")
	if !ok || v.Num.Int != 99 {
		t.Fatalf("Get(a) = %v, %v, want overwritten value 99", v, ok)
	}
}

func TestObjectRangeStopsEarly(t *testing.T) {
	o := NewObject()
	o.Set("a", Int(1, "1"))
	o.Set("b", Int(2, "2"))
	o.Set("c", Int(3, "3"))

	var seen []string
	o.Range(func(key string, _ Value) bool {
		seen = append(seen, key)
		return key != "b"
	})
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Fatalf("Range visited %v, want [a b]", seen)
	}
}
