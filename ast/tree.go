package ast

import "github.com/foursquare/fsltool/token"

// SchemaTree is the root of a parsed (or merged/filtered/cloned) FSL
// document: an allocator identity, an ordered declaration list, and the
// extras anchored to positions within it.
type SchemaTree struct {
	Allocator    *Allocator
	Declarations []*Declaration
	Extras       []*Extra
	// EOFPos is the position of the file's EOF token, the anchor used
	// for any comment or blank line trailing the last declaration.
	EOFPos token.Position
}

// NewTree creates an empty tree. If a is nil a fresh allocator identity
// is minted.
func NewTree(a *Allocator) *SchemaTree {
	if a == nil {
		a = NewAllocator()
	}
	return &SchemaTree{Allocator: a}
}

// NewDecl allocates a Declaration owned by t's allocator.
func (t *SchemaTree) NewDecl(kind DeclKind, pos token.Position) *Declaration {
	return &Declaration{Kind: kind, Pos: pos, owner: t.Allocator}
}

// NewFQLType allocates an FQLType owned by t's allocator.
func (t *SchemaTree) NewFQLType(kind FQLTypeKind, pos token.Position) *FQLType {
	return &FQLType{Kind: kind, Pos: pos, owner: t.Allocator}
}

// Length returns the number of top-level declarations (FFI getLength).
func (t *SchemaTree) Length() int {
	return len(t.Declarations)
}

// AddExtra appends a newly owned Extra to the tree.
func (t *SchemaTree) AddExtra(e *Extra) {
	t.Extras = append(t.Extras, e)
}

// ExtrasAt returns, in insertion order, every extra anchored exactly at
// pos (same file/line/column). The printer uses this to re-emit
// comments and blank lines at their original position.
func (t *SchemaTree) ExtrasAt(pos token.Position) []*Extra {
	var out []*Extra
	for _, e := range t.Extras {
		a := e.Anchor()
		if a.File == pos.File && a.Line == pos.Line && a.Column == pos.Column {
			out = append(out, e)
		}
	}
	return out
}

// Dispose releases every extra handle owned by the tree and drops its
// declaration list. Safe to call on an already-consumed tree (e.g. one
// passed to Merge) since both fields are simply nil by then.
func (t *SchemaTree) Dispose() {
	for _, e := range t.Extras {
		e.Release()
	}
	t.Extras = nil
	t.Declarations = nil
}
