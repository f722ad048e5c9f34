package ast

import "github.com/foursquare/fsltool/token"

// ExtraKind distinguishes the two kinds of raw text the parser keeps
// verbatim instead of discarding.
type ExtraKind int

const (
	ExtraComment ExtraKind = iota
	ExtraBlankLine
)

type extraData struct {
	kind     ExtraKind
	text     string
	anchor   token.Position
	refcount int
}

// Extra is a shared-owned handle onto a comment or blank line, anchored
// to the position of the token that followed it in the source. Extras
// are the one place ownership genuinely crosses trees: merging two
// trees clones the handle (Clone) rather than duplicating the text, and
// Dispose/Release only frees the underlying data once every clone has
// released it. No atomics are needed: a tree, and therefore its
// extras, is never shared across threads (spec.md §5).
type Extra struct {
	data *extraData
}

// NewExtra creates a fresh, singly-owned Extra handle.
func NewExtra(kind ExtraKind, text string, anchor token.Position) *Extra {
	return &Extra{data: &extraData{kind: kind, text: text, anchor: anchor, refcount: 1}}
}

func (e *Extra) Kind() ExtraKind         { return e.data.kind }
func (e *Extra) Text() string            { return e.data.text }
func (e *Extra) Anchor() token.Position  { return e.data.anchor }
func (e *Extra) Refcount() int           { return e.data.refcount }

// Clone increments the shared refcount and returns a new handle to the
// same underlying data. Used when merging or cloning a tree so both
// copies can independently Release without a double free.
func (e *Extra) Clone() *Extra {
	e.data.refcount++
	return &Extra{data: e.data}
}

// Release decrements the refcount on dispose. The data itself needs no
// explicit free in Go; the refcount exists so double-dispose of a
// shared extra is detectable rather than silently wrong.
func (e *Extra) Release() {
	if e.data.refcount > 0 {
		e.data.refcount--
	}
}
