// Package printer implements the canonical FSL printer (spec.md §4.2):
// a stable textual rendering used both as the public output format and
// as the linker's hash input. Declarations are emitted in source order
// unless Sort is requested; each declaration kind emits its members in
// a fixed canonical order; indentation is two spaces.
package printer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/foursquare/fsltool/ast"
	"github.com/foursquare/fsltool/token"
)

// Options controls canonical printing.
type Options struct {
	// Sort requests declarations be sorted by (kind tag, name) instead
	// of emitted in source order.
	Sort bool
	// SourceMapFile, if non-empty, causes the printer to record
	// generated<->original position mappings and append an inline
	// base64 source map comment naming this destination file.
	SourceMapFile string
	// MangledNames maps an original UDF name to its mangled form. An
	// identifier write whose text equals a mangled form records the
	// original name as the mapping's symbol.
	MangledNames map[string]string
	// Sources maps a top-level declaration's name to the source file it
	// should be attributed to in the source map, overriding the
	// filename recorded on its tokens at parse time. This lets a host
	// that has merged declarations parsed from several files (spec.md
	// §1's multi-file merge) re-attribute each declaration's mappings
	// to its true origin file after the merge.
	Sources map[string]string
}

// Printer renders a SchemaTree to canonical text, optionally building a
// source map alongside it.
type Printer struct {
	opts  Options
	b     strings.Builder
	ln    int
	cl    int
	depth int

	sm            *sourceMap
	mangledToOrig map[string]string
	curDeclName   string
}

// Print renders tree to canonical text per opts, returning the text and
// (if opts.SourceMapFile is set) the inline base64 map appended as a
// trailing comment per spec.md §4.2/§6.3.
func Print(tree *ast.SchemaTree, opts Options) (string, error) {
	p := &Printer{opts: opts, ln: 1, cl: 1}
	if opts.SourceMapFile != "" {
		p.sm = newSourceMap(opts.SourceMapFile)
		p.mangledToOrig = make(map[string]string, len(opts.MangledNames))
		for orig, mangled := range opts.MangledNames {
			p.mangledToOrig[mangled] = orig
		}
	}

	decls := tree.Declarations
	if opts.Sort {
		decls = append([]*ast.Declaration(nil), decls...)
		sort.SliceStable(decls, func(i, j int) bool {
			return declSortKey(decls[i]) < declSortKey(decls[j])
		})
	}

	for i, d := range decls {
		if i > 0 {
			p.blankLineUnlessSuppressed(tree, d)
		}
		p.emitExtrasAt(tree, d.Pos)
		p.curDeclName = ""
		if n := d.Name(); n != nil {
			p.curDeclName = n.Text
		}
		if err := p.printDeclaration(d); err != nil {
			return "", err
		}
	}
	p.emitExtrasAt(tree, tree.EOFPos)

	out := p.b.String()
	if p.sm != nil {
		out += "\n" + p.sm.InlineComment()
	}
	return out, nil
}

func declSortKey(d *ast.Declaration) string {
	name := ""
	if n := d.Name(); n != nil {
		name = n.Text
	}
	return fmt.Sprintf("%d\x00%s", d.Kind, name)
}

// write appends s to the output, updating line/column tracking.
func (p *Printer) write(s string) {
	for _, r := range s {
		if r == '\n' {
			p.ln++
			p.cl = 1
		} else {
			p.cl++
		}
	}
	p.b.WriteString(s)
}

func (p *Printer) indentStr() string { return strings.Repeat("  ", p.depth) }

func (p *Printer) writeIndent() { p.write(p.indentStr()) }

// text writes a TextNode's text, recording a source-map mapping at the
// write's starting position when source mapping is enabled.
func (p *Printer) text(n *ast.TextNode) {
	if n == nil {
		return
	}
	p.mapIdent(n.Text, n.Pos)
	p.write(n.Text)
}

// raw writes literal syntax (keywords, punctuation) with no source
// mapping.
func (p *Printer) raw(s string) { p.write(s) }

func (p *Printer) mapIdent(text string, pos token.Position) {
	if p.sm == nil || !pos.IsValid() {
		return
	}
	symbol := ""
	if orig, ok := p.mangledToOrig[text]; ok {
		symbol = orig
	}
	file := pos.File
	if override, ok := p.opts.Sources[p.curDeclName]; ok {
		file = override
	}
	p.sm.Record(p.ln, p.cl, file, pos.Line, pos.Column, symbol)
}

// blankLineUnlessSuppressed emits the blank line spec.md §6.3 requires
// between top-level declarations, unless a blank-line extra is already
// anchored at the upcoming declaration (it already provides separation).
func (p *Printer) blankLineUnlessSuppressed(tree *ast.SchemaTree, next *ast.Declaration) {
	for _, e := range tree.ExtrasAt(next.Pos) {
		if e.Kind() == ast.ExtraBlankLine {
			return
		}
	}
	p.write("\n")
}

func (p *Printer) emitExtrasAt(tree *ast.SchemaTree, pos token.Position) {
	for _, e := range tree.ExtrasAt(pos) {
		switch e.Kind() {
		case ast.ExtraComment:
			p.writeIndent()
			p.write(e.Text())
			p.write("\n")
		case ast.ExtraBlankLine:
			p.write("\n")
		}
	}
}

func (p *Printer) printDeclaration(d *ast.Declaration) error {
	switch d.Kind {
	case ast.DeclAccessProvider:
		return p.printAccessProvider(d.AccessProvider)
	case ast.DeclCollection:
		return p.printCollection(d.Collection)
	case ast.DeclFunction:
		return p.printFunction(d.Function)
	case ast.DeclRole:
		return p.printRole(d.Role)
	default:
		return fmt.Errorf("printer: unknown declaration kind %v", d.Kind)
	}
}
