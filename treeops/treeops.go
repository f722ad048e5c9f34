// Package treeops implements the FSL tree operations of spec.md §4.5:
// filter-by-kind, remove-declaration, strip-role-resource, sort, the
// declarations JSON listing, length, and clone.
package treeops

import (
	"encoding/json"
	"sort"

	"github.com/foursquare/fsltool/ast"
)

// Filter returns a new tree containing deep duplicates of every
// declaration of kind, owned by a fresh allocator; shared extras are
// refcount-cloned rather than duplicated.
func Filter(tree *ast.SchemaTree, kind ast.DeclKind) *ast.SchemaTree {
	out := ast.NewTree(nil)
	for _, d := range tree.Declarations {
		if d.Kind == kind {
			out.Declarations = append(out.Declarations, ast.DuplicateDeclaration(out.Allocator, d))
		}
	}
	for _, e := range tree.Extras {
		out.Extras = append(out.Extras, e.Clone())
	}
	return out
}

// Remove deletes, in place, the first declaration matching kind and
// name, shifting later declarations left. Reports whether a match was
// found.
func Remove(tree *ast.SchemaTree, kind ast.DeclKind, name string) bool {
	for i, d := range tree.Declarations {
		if d.Kind != kind {
			continue
		}
		if n := d.Name(); n == nil || n.Text != name {
			continue
		}
		tree.Declarations = append(tree.Declarations[:i], tree.Declarations[i+1:]...)
		return true
	}
	return false
}

// StripRolesResource deletes, within every role declaration, every
// privilege member whose resource text equals name, compacting each
// role's member slice in place.
func StripRolesResource(tree *ast.SchemaTree, name string) {
	for _, d := range tree.Declarations {
		if d.Kind != ast.DeclRole {
			continue
		}
		kept := d.Role.Members[:0]
		for _, m := range d.Role.Members {
			if m.Kind == ast.RoleMemberPrivilege && m.Privilege.Resource.Text == name {
				continue
			}
			kept = append(kept, m)
		}
		d.Role.Members = kept
	}
}

// Sort stably reorders tree's declarations by (kind tag, name).
func Sort(tree *ast.SchemaTree) {
	sort.SliceStable(tree.Declarations, func(i, j int) bool {
		a, b := tree.Declarations[i], tree.Declarations[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return declName(a) < declName(b)
	})
}

func declName(d *ast.Declaration) string {
	if n := d.Name(); n != nil {
		return n.Text
	}
	return ""
}

// declEntry is one entry of the declarations JSON (spec.md §6.4); only
// role entries carry Resources.
type declEntry struct {
	Type      string   `json:"type"`
	Name      string   `json:"name"`
	Resources []string `json:"resources,omitempty"`
}

// ListDeclarations renders tree's declarations as the spec.md §6.4 JSON
// array.
func ListDeclarations(tree *ast.SchemaTree) ([]byte, error) {
	entries := make([]declEntry, 0, len(tree.Declarations))
	for _, d := range tree.Declarations {
		entry := declEntry{Type: d.Kind.Tag(), Name: declName(d)}
		if d.Kind == ast.DeclRole {
			for _, m := range d.Role.Members {
				if m.Kind == ast.RoleMemberPrivilege {
					entry.Resources = append(entry.Resources, m.Privilege.Resource.Text)
				}
			}
		}
		entries = append(entries, entry)
	}
	return json.Marshal(entries)
}

// GetLength returns tree's declaration count.
func GetLength(tree *ast.SchemaTree) int {
	return tree.Length()
}

// Clone deep-duplicates tree into a fresh allocator (or dest, if given).
func Clone(tree *ast.SchemaTree, dest *ast.Allocator) *ast.SchemaTree {
	return tree.Clone(dest)
}
