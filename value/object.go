package value

// Object is an insertion-ordered mapping from string keys to Values.
// Keys are unique: inserting a duplicate is rejected by the parser
// before it ever reaches Set (see errors.DuplicateKey), so Object
// itself simply preserves whatever order Set calls arrive in.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty, ready-to-use Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Has reports whether key is already present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Set inserts key/val. Callers must check Has first if duplicate keys
// must be rejected; Set itself silently overwrites like a normal map
// assignment to keep the type usable standalone (the parser is the
// layer that enforces DuplicateKey).
func (o *Object) Set(key string, val Value) {
	if o.values == nil {
		o.values = make(map[string]Value)
	}
	if !o.Has(key) {
		o.keys = append(o.keys, key)
	}
	o.values[key] = val
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the keys in insertion order. Callers must not mutate
// the returned slice.
func (o *Object) Keys() []string { return o.keys }

// Range calls fn for each key/value pair in insertion order, stopping
// early if fn returns false.
func (o *Object) Range(fn func(key string, val Value) bool) {
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// Equal reports deep structural equality including key order.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.keys) != len(other.keys) {
		return false
	}
	for i, k := range o.keys {
		if other.keys[i] != k {
			return false
		}
		ov, _ := other.values[k]
		if !o.values[k].Equal(ov) {
			return false
		}
	}
	return true
}
