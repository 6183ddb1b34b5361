package value

import "github.com/masinc/jyaml-go/token"

// Comment is a line comment captured in document mode, marker stripped
// per the recommendation in spec.md §9 (strip '#' or '//' plus one
// optional following space).
type Comment struct {
	Text     string
	Position token.Position
}

// Span is the source extent of a node, start inclusive, end exclusive.
type Span struct {
	Start token.Position
	End   token.Position
}

// NodeID identifies a node within a parsed tree for the Spans map. The
// parser assigns IDs in the order nodes are constructed; bare Value
// mode never allocates them.
type NodeID int

// Document is the result of parsing in document mode: the root value
// plus the comments and spans the bare Value mode discards.
type Document struct {
	Root     Value
	Comments []Comment
	Spans    map[NodeID]Span
}
