package ast

import "github.com/foursquare/fsltool/token"

// TextNode is every identifier or string literal in the tree: the unit
// of in-place reference rewriting the linker relies on. Rewriting a
// TextNode's text changes what symbol it names without touching its
// parent structure.
type TextNode struct {
	Text string
	Pos  token.Position
	owner *Allocator
}

// Owner returns the allocator this node was obtained from.
func (t *TextNode) Owner() *Allocator {
	if t == nil {
		return nil
	}
	return t.owner
}

// SetText rewrites the node's text in place. Used by the linker to turn
// an original UDF name into its mangled form, and by tree ops.
func (t *TextNode) SetText(s string) {
	t.Text = s
}

// ExprBlob is an FQL expression captured as text, exactly as it appeared
// in the source, together with its span. The core never parses the
// expression grammar; it only scans it well enough to find identifiers
// (ast.WalkIdentifiers) and balanced braces (lexer.FindMatchingBrace).
type ExprBlob struct {
	Text string
	Pos  token.Position
	owner *Allocator
}

// Owner returns the allocator this blob was obtained from.
func (b *ExprBlob) Owner() *Allocator {
	if b == nil {
		return nil
	}
	return b.owner
}
