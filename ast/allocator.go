// Package ast defines the FSL typed AST: the SchemaTree root, the
// Declaration and FQLType tagged variants, TextNode leaves, and the
// ownership/allocator discipline spec.md §3 requires of any operation
// that moves nodes between trees.
package ast

import "github.com/foursquare/fsltool/token"

// Allocator models a tree's ownership domain. Go's runtime already
// manages the underlying memory, so Allocator does not itself allocate;
// its job is the one thing the runtime does not give us for free: a
// stable identity that lets multi-tree operations (merge, filter,
// clone) assert the allocator-equality invariant before touching nodes
// that cross a tree boundary, and a single place duplication goes
// through when they don't match.
type Allocator struct {
	id uint64
}

var nextAllocatorID uint64

// NewAllocator returns a fresh allocator identity for a new tree.
func NewAllocator() *Allocator {
	nextAllocatorID++
	return &Allocator{id: nextAllocatorID}
}

// Same reports whether a and other are the same allocator identity.
func (a *Allocator) Same(other *Allocator) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.id == other.id
}

// NewText allocates a TextNode owned by a.
func (a *Allocator) NewText(text string, pos token.Position) *TextNode {
	return &TextNode{Text: text, Pos: pos, owner: a}
}

// DuplicateText returns a copy of n re-owned by a. Required whenever a
// node crosses from one tree's allocator into another's (filter, clone,
// merge of mismatched allocators).
func (a *Allocator) DuplicateText(n *TextNode) *TextNode {
	if n == nil {
		return nil
	}
	return &TextNode{Text: n.Text, Pos: n.Pos, owner: a}
}

// OwnFQLType tags an already-constructed FQLType literal as owned by a
// and returns it. Used by the parser, which builds FQLType variants as
// struct literals (tag plus whichever fields that variant uses) and
// then hands them to the tree's allocator to stamp ownership, rather
// than duplicating every field through a constructor per kind.
func (a *Allocator) OwnFQLType(t *FQLType) *FQLType {
	t.owner = a
	return t
}

// NewExprBlob allocates an ExprBlob owned by a.
func (a *Allocator) NewExprBlob(text string, pos token.Position) *ExprBlob {
	return &ExprBlob{Text: text, Pos: pos, owner: a}
}

// DuplicateExprBlob returns a copy of b re-owned by a.
func (a *Allocator) DuplicateExprBlob(b *ExprBlob) *ExprBlob {
	if b == nil {
		return nil
	}
	return &ExprBlob{Text: b.Text, Pos: b.Pos, owner: a}
}
